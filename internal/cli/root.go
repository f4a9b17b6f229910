package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	ConfigPath     *string
	JSON           *bool

	// init command
	InitUsed    *bool
	InitBackend *string
	InitDataDir *string
	InitForce   *bool

	// reset command
	ResetUsed  *bool
	ResetForce *bool

	// board command
	BoardUsed        *bool
	BoardListUsed    *bool
	BoardAddUsed     *bool
	BoardAddTitle    *string
	BoardRemoveUsed  *bool
	BoardRemoveRef   *string
	BoardRenameUsed  *bool
	BoardRenameRef   *string
	BoardRenameTitle *string

	// list command
	ListUsed        *bool
	ListAddUsed     *bool
	ListAddTitle    *string
	ListAddBoard    *string
	ListRenameUsed  *bool
	ListRenameRef   *string
	ListRenameTitle *string
	ListRenameBoard *string
	ListDeleteUsed  *bool
	ListDeleteRef   *string
	ListDeleteBoard *string

	// card command
	CardUsed        *bool
	CardAddUsed     *bool
	CardAddTitle    *string
	CardAddBoard    *string
	CardAddList     *string
	CardRenameUsed  *bool
	CardRenameRef   *string
	CardRenameTitle *string
	CardRenameBoard *string
	CardRenameList  *string
	CardDeleteUsed  *bool
	CardDeleteRef   *string
	CardDeleteBoard *string
	CardDeleteList  *string

	// edit command
	EditUsed *bool

	// show command
	ShowUsed  *bool
	ShowBoard *string

	// serve command
	ServeUsed   *bool
	ServePort   *int
	ServeNoOpen *bool

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("boardkit")
	cmd.SetDescription("Boards, lists and cards kept in one synchronized document")

	// Global flag for non-interactive mode
	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.ConfigPath, _ = ra.NewString("config").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Path to config file (default: ~/.config/boardkit/config.toml)").
		Register(cmd, ra.WithGlobal(true))

	ctx.JSON, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Print machine-readable JSON").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerInit(cmd, ctx)
	registerReset(cmd, ctx)
	registerBoard(cmd, ctx)
	registerListCmd(cmd, ctx)
	registerCard(cmd, ctx)
	registerShow(cmd, ctx)
	registerEdit(cmd, ctx)
	registerServe(cmd, ctx)
	registerCompletion(cmd, ctx)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	executeCommand(ctx, cmd)
}

func executeCommand(ctx *CommandContext, rootCmd *ra.Cmd) {
	opts := appOptions{
		configPath:  *ctx.ConfigPath,
		interactive: !*ctx.NonInteractive,
	}
	jsonOutput := *ctx.JSON

	// Commands return instead of exiting so their deferred cleanup runs.
	var err error
	switch {
	case *ctx.InitUsed:
		err = runInit(opts, *ctx.InitBackend, *ctx.InitDataDir, *ctx.InitForce)

	case *ctx.ResetUsed:
		err = runReset(opts, *ctx.ResetForce)

	case *ctx.BoardListUsed:
		err = runBoardList(opts, jsonOutput)

	case *ctx.BoardAddUsed:
		err = runBoardAdd(opts, *ctx.BoardAddTitle, jsonOutput)

	case *ctx.BoardRemoveUsed:
		err = runBoardRemove(opts, *ctx.BoardRemoveRef)

	case *ctx.BoardRenameUsed:
		err = runBoardRename(opts, *ctx.BoardRenameRef, *ctx.BoardRenameTitle, jsonOutput)

	case *ctx.ListAddUsed:
		err = runListAdd(opts, *ctx.ListAddBoard, *ctx.ListAddTitle, jsonOutput)

	case *ctx.ListRenameUsed:
		err = runListRename(opts, *ctx.ListRenameBoard, *ctx.ListRenameRef, *ctx.ListRenameTitle, jsonOutput)

	case *ctx.ListDeleteUsed:
		err = runListDelete(opts, *ctx.ListDeleteBoard, *ctx.ListDeleteRef, jsonOutput)

	case *ctx.CardAddUsed:
		err = runCardAdd(opts, *ctx.CardAddBoard, *ctx.CardAddList, *ctx.CardAddTitle, jsonOutput)

	case *ctx.CardRenameUsed:
		err = runCardRename(opts, *ctx.CardRenameBoard, *ctx.CardRenameList, *ctx.CardRenameRef, *ctx.CardRenameTitle, jsonOutput)

	case *ctx.CardDeleteUsed:
		err = runCardDelete(opts, *ctx.CardDeleteBoard, *ctx.CardDeleteList, *ctx.CardDeleteRef, jsonOutput)

	case *ctx.ShowUsed:
		err = runShow(opts, *ctx.ShowBoard, jsonOutput)

	case *ctx.EditUsed:
		err = runEdit(opts)

	case *ctx.ServeUsed:
		err = runServe(opts, *ctx.ServePort, *ctx.ServeNoOpen)

	case *ctx.CompletionUsed:
		err = runCompletion(*ctx.CompletionShell, rootCmd)
	}

	if err != nil {
		Fatal(err)
	}
}
