package cli

import (
	"context"
	"fmt"

	"github.com/amterp/ra"
)

func registerBoard(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("board")
	cmd.SetDescription("Manage boards")

	// board list
	listCmd := ra.NewCmd("list")
	listCmd.SetDescription("List all boards")

	ctx.BoardListUsed, _ = cmd.RegisterCmd(listCmd)

	// board add
	addCmd := ra.NewCmd("add")
	addCmd.SetDescription("Create a new board")

	ctx.BoardAddTitle, _ = ra.NewString("title").
		SetUsage("Title of the board").
		Register(addCmd)

	ctx.BoardAddUsed, _ = cmd.RegisterCmd(addCmd)

	// board remove
	removeCmd := ra.NewCmd("remove")
	removeCmd.SetDescription("Remove a board with all of its lists and cards")

	ctx.BoardRemoveRef, _ = ra.NewString("board").
		SetUsage("Board id or title").
		SetCompletionFunc(completeBoards).
		Register(removeCmd)

	ctx.BoardRemoveUsed, _ = cmd.RegisterCmd(removeCmd)

	// board rename
	renameCmd := ra.NewCmd("rename")
	renameCmd.SetDescription("Change a board's title")

	ctx.BoardRenameRef, _ = ra.NewString("board").
		SetUsage("Board id or title").
		SetCompletionFunc(completeBoards).
		Register(renameCmd)

	ctx.BoardRenameTitle, _ = ra.NewString("title").
		SetUsage("New title").
		Register(renameCmd)

	ctx.BoardRenameUsed, _ = cmd.RegisterCmd(renameCmd)

	ctx.BoardUsed, _ = parent.RegisterCmd(cmd)
}

func runBoardList(opts appOptions, jsonOutput bool) error {
	ctx := context.Background()
	app, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	boards, err := app.BoardService.List(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJson(NewBoardsOutput(boards))
	}

	if len(boards) == 0 {
		PrintInfo("No boards found")
		return nil
	}

	for _, board := range boards {
		counts := RenderMuted(fmt.Sprintf("(%d lists, %d cards)", len(board.Lists), board.CardCount()))
		fmt.Printf("  %s  %s %s\n", RenderID(board.ID), board.Title, counts)
	}
	return nil
}

func runBoardAdd(opts appOptions, title string, jsonOutput bool) error {
	ctx := context.Background()
	app, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	board, err := app.BoardService.Add(ctx, title)
	if err != nil {
		return err
	}
	if board == nil {
		PrintWarning("Blank title, no board created")
		return nil
	}

	if jsonOutput {
		return printJson(NewBoardOutput(*board))
	}
	PrintSuccess("Created board %q %s", board.Title, RenderID(board.ID))
	return nil
}

func runBoardRemove(opts appOptions, ref string) error {
	ctx := context.Background()
	app, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	board, err := app.BoardResolver.Resolve(ctx, ref, app.Interactive)
	if err != nil {
		return err
	}

	if err := app.BoardService.Remove(ctx, board.ID); err != nil {
		return err
	}
	PrintSuccess("Removed board %q", board.Title)
	return nil
}

func runBoardRename(opts appOptions, ref, title string, jsonOutput bool) error {
	ctx := context.Background()
	app, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	board, err := app.BoardResolver.Resolve(ctx, ref, app.Interactive)
	if err != nil {
		return err
	}

	renamed, err := app.BoardService.Rename(ctx, board.ID, title)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJson(NewBoardOutput(renamed))
	}
	PrintSuccess("Renamed board %s to %q", RenderID(renamed.ID), renamed.Title)
	return nil
}
