package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/amterp/boardkit/internal/config"
	"github.com/amterp/boardkit/internal/id"
	"github.com/amterp/boardkit/internal/logging"
	"github.com/amterp/boardkit/internal/prompt"
	"github.com/amterp/boardkit/internal/resolver"
	"github.com/amterp/boardkit/internal/service"
	"github.com/amterp/boardkit/internal/store"
)

// appOptions carries the global flags every command needs to build an App.
type appOptions struct {
	configPath  string
	interactive bool
}

func (o appOptions) resolvedConfigPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.GlobalConfigPath()
}

// App holds all the dependencies for the CLI.
type App struct {
	Config        *config.Config
	Store         store.Store
	Document      *service.Document
	Prompter      prompt.Prompter
	BoardService  *service.BoardService
	ListService   *service.ListService
	CardService   *service.CardService
	BoardResolver *resolver.BoardResolver
	ListResolver  *resolver.ListResolver
	Interactive   bool
}

// NewApp loads configuration, opens the configured store and wires the
// services on top of it. If interactive is false, uses NoopPrompter that
// fails on prompts.
func NewApp(ctx context.Context, opts appOptions) (*App, error) {
	cfg, err := config.Load(opts.resolvedConfigPath())
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Log)

	s, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}
	log.Debug().Str("backend", cfg.Storage.Backend).Msg("store opened")

	var prompter prompt.Prompter
	if opts.interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	return newAppWithStore(cfg, s, prompter, opts.interactive), nil
}

// newApp is what commands call to build their App. Tests replace it to run
// commands over an in-memory store.
var newApp = NewApp

func newAppWithStore(cfg *config.Config, s store.Store, prompter prompt.Prompter, interactive bool) *App {
	doc := service.NewDocument(s, store.CollectionKey)
	ids := id.Default()

	boardService := service.NewBoardService(doc, ids)
	listService := service.NewListService(doc, ids)
	cardService := service.NewCardService(listService, ids)

	return &App{
		Config:        cfg,
		Store:         s,
		Document:      doc,
		Prompter:      prompter,
		BoardService:  boardService,
		ListService:   listService,
		CardService:   cardService,
		BoardResolver: resolver.NewBoardResolver(boardService, prompter),
		ListResolver:  resolver.NewListResolver(prompter),
		Interactive:   interactive,
	}
}

// Close releases the store.
func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close store")
	}
}

// Fatal prints an error and exits.
func Fatal(err error) {
	PrintError("Error: %v", err)
	os.Exit(1)
}
