package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/amterp/boardkit/internal/config"
	"github.com/amterp/boardkit/internal/model"
	"github.com/amterp/boardkit/internal/service"
	"github.com/amterp/boardkit/internal/store"
	"github.com/amterp/ra"
)

// completionCtx provides lightweight store access for shell completion.
// Completion functions run during ParseOrExit, before NewApp() is called,
// so we can't use the full App. This loads just enough to list boards.
type completionCtx struct {
	once   sync.Once
	boards []model.Board
	err    error
}

var compCtx completionCtx

func initCompletionCtx() {
	compCtx.once.Do(func() {
		cfg, err := config.Load(configFromArgs(os.Args))
		if err != nil {
			// Graceful degradation: no completions if config is broken
			compCtx.err = err
			return
		}

		ctx := context.Background()
		s, err := store.Open(ctx, cfg)
		if err != nil {
			compCtx.err = fmt.Errorf("no store available: %w", err)
			return
		}
		defer s.Close()

		c, err := service.NewDocument(s, store.CollectionKey).Load(ctx)
		if err != nil {
			compCtx.err = err
			return
		}
		compCtx.boards = c.Boards
	})
}

// completeBoards returns board ids and titles matching the given prefix.
func completeBoards(toComplete string) ([]string, ra.CompletionDirective) {
	initCompletionCtx()
	if compCtx.err != nil {
		return nil, ra.CompletionDirectiveNoFileComp
	}
	return matchBoards(compCtx.boards, toComplete), ra.CompletionDirectiveNoFileComp
}

func matchBoards(boards []model.Board, prefix string) []string {
	var result []string
	for _, b := range boards {
		if strings.HasPrefix(b.ID, prefix) {
			result = append(result, b.ID)
		}
		if strings.HasPrefix(b.Title, prefix) {
			result = append(result, b.Title)
		}
	}
	return result
}

// configFromArgs scans the argument list for an explicit --config flag value.
func configFromArgs(args []string) string {
	for i, arg := range args {
		// --config=value (skip empty values so the default applies)
		if strings.HasPrefix(arg, "--config=") {
			if v := strings.TrimPrefix(arg, "--config="); v != "" {
				return v
			}
		}
		// --config value
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// registerCompletion adds the "boardkit completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) error {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell)
	}
	if err != nil {
		return fmt.Errorf("failed to generate completion script: %w", err)
	}
	return nil
}
