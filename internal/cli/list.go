package cli

import (
	"context"

	"github.com/amterp/ra"
)

func registerListCmd(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("list")
	cmd.SetDescription("Manage the lists of a board")

	// list add
	addCmd := ra.NewCmd("add")
	addCmd.SetDescription("Append a list to a board")

	ctx.ListAddTitle, _ = ra.NewString("title").
		SetUsage("Title of the list").
		Register(addCmd)

	ctx.ListAddBoard = registerBoardFlag(addCmd)
	ctx.ListAddUsed, _ = cmd.RegisterCmd(addCmd)

	// list rename
	renameCmd := ra.NewCmd("rename")
	renameCmd.SetDescription("Change a list's title")

	ctx.ListRenameRef, _ = ra.NewString("list").
		SetUsage("List id or title").
		Register(renameCmd)

	ctx.ListRenameTitle, _ = ra.NewString("title").
		SetUsage("New title").
		Register(renameCmd)

	ctx.ListRenameBoard = registerBoardFlag(renameCmd)
	ctx.ListRenameUsed, _ = cmd.RegisterCmd(renameCmd)

	// list delete
	deleteCmd := ra.NewCmd("delete")
	deleteCmd.SetDescription("Delete a list and all of its cards")

	ctx.ListDeleteRef, _ = ra.NewString("list").
		SetUsage("List id or title").
		Register(deleteCmd)

	ctx.ListDeleteBoard = registerBoardFlag(deleteCmd)
	ctx.ListDeleteUsed, _ = cmd.RegisterCmd(deleteCmd)

	ctx.ListUsed, _ = parent.RegisterCmd(cmd)
}

// registerBoardFlag adds the -b/--board flag shared by list and card commands.
func registerBoardFlag(cmd *ra.Cmd) *string {
	board, _ := ra.NewString("board").
		SetShort("b").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Board id or title").
		SetCompletionFunc(completeBoards).
		Register(cmd)
	return board
}

func runListAdd(opts appOptions, boardRef, title string, jsonOutput bool) error {
	ctx := context.Background()
	app, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	board, err := app.BoardResolver.Resolve(ctx, boardRef, app.Interactive)
	if err != nil {
		return err
	}

	updated, err := app.ListService.AddList(ctx, board.ID, title)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJson(NewBoardOutput(updated))
	}
	if len(updated.Lists) == len(board.Lists) {
		PrintWarning("Blank title, no list created")
		return nil
	}
	added := updated.Lists[len(updated.Lists)-1]
	PrintSuccess("Added list %q %s to %q", added.Title, RenderID(added.ID), updated.Title)
	return nil
}

func runListRename(opts appOptions, boardRef, listRef, title string, jsonOutput bool) error {
	ctx := context.Background()
	app, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	board, err := app.BoardResolver.Resolve(ctx, boardRef, app.Interactive)
	if err != nil {
		return err
	}
	list, err := app.ListResolver.Resolve(board, listRef, app.Interactive)
	if err != nil {
		return err
	}

	updated, err := app.ListService.RenameList(ctx, board.ID, list.ID, title)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJson(NewBoardOutput(updated))
	}
	renamed, _ := updated.FindList(list.ID)
	PrintSuccess("Renamed list %s to %q", RenderID(renamed.ID), renamed.Title)
	return nil
}

func runListDelete(opts appOptions, boardRef, listRef string, jsonOutput bool) error {
	ctx := context.Background()
	app, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	board, err := app.BoardResolver.Resolve(ctx, boardRef, app.Interactive)
	if err != nil {
		return err
	}
	list, err := app.ListResolver.Resolve(board, listRef, app.Interactive)
	if err != nil {
		return err
	}

	updated, err := app.ListService.DeleteList(ctx, board.ID, list.ID)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJson(NewBoardOutput(updated))
	}
	PrintSuccess("Deleted list %q and %d card(s)", list.Title, len(list.Cards))
	return nil
}
