package cli

import (
	"context"

	"github.com/amterp/boardkit/internal/model"
	"github.com/amterp/boardkit/internal/resolver"
	"github.com/amterp/ra"
)

func registerCard(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("card")
	cmd.SetDescription("Manage the cards of a list")

	// card add
	addCmd := ra.NewCmd("add")
	addCmd.SetDescription("Append a card to a list")

	ctx.CardAddTitle, _ = ra.NewString("title").
		SetUsage("Title of the card").
		Register(addCmd)

	ctx.CardAddBoard = registerBoardFlag(addCmd)
	ctx.CardAddList = registerListFlag(addCmd)
	ctx.CardAddUsed, _ = cmd.RegisterCmd(addCmd)

	// card rename
	renameCmd := ra.NewCmd("rename")
	renameCmd.SetDescription("Change a card's title")

	ctx.CardRenameRef, _ = ra.NewString("card").
		SetUsage("Card id or title").
		Register(renameCmd)

	ctx.CardRenameTitle, _ = ra.NewString("title").
		SetUsage("New title").
		Register(renameCmd)

	ctx.CardRenameBoard = registerBoardFlag(renameCmd)
	ctx.CardRenameList = registerListFlag(renameCmd)
	ctx.CardRenameUsed, _ = cmd.RegisterCmd(renameCmd)

	// card delete
	deleteCmd := ra.NewCmd("delete")
	deleteCmd.SetDescription("Delete a card")

	ctx.CardDeleteRef, _ = ra.NewString("card").
		SetUsage("Card id or title").
		Register(deleteCmd)

	ctx.CardDeleteBoard = registerBoardFlag(deleteCmd)
	ctx.CardDeleteList = registerListFlag(deleteCmd)
	ctx.CardDeleteUsed, _ = cmd.RegisterCmd(deleteCmd)

	ctx.CardUsed, _ = parent.RegisterCmd(cmd)
}

func registerListFlag(cmd *ra.Cmd) *string {
	list, _ := ra.NewString("list").
		SetShort("l").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("List id or title").
		Register(cmd)
	return list
}

// resolveList resolves the board and list a card command operates on.
func (a *App) resolveList(ctx context.Context, boardRef, listRef string) (model.Board, model.List, error) {
	board, err := a.BoardResolver.Resolve(ctx, boardRef, a.Interactive)
	if err != nil {
		return model.Board{}, model.List{}, err
	}
	list, err := a.ListResolver.Resolve(board, listRef, a.Interactive)
	if err != nil {
		return model.Board{}, model.List{}, err
	}
	return board, list, nil
}

func runCardAdd(opts appOptions, boardRef, listRef, title string, jsonOutput bool) error {
	ctx := context.Background()
	app, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	board, list, err := app.resolveList(ctx, boardRef, listRef)
	if err != nil {
		return err
	}

	updated, err := app.CardService.AddCardTo(ctx, board.ID, list.ID, title)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJson(NewListOutput(updated))
	}
	if len(updated.Cards) == len(list.Cards) {
		PrintWarning("Blank title, no card created")
		return nil
	}
	added := updated.Cards[len(updated.Cards)-1]
	PrintSuccess("Added card %q %s to %q", added.Title, RenderID(added.ID), updated.Title)
	return nil
}

func runCardRename(opts appOptions, boardRef, listRef, cardRef, title string, jsonOutput bool) error {
	ctx := context.Background()
	app, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	board, list, err := app.resolveList(ctx, boardRef, listRef)
	if err != nil {
		return err
	}
	card, err := resolver.ResolveCard(list, cardRef)
	if err != nil {
		return err
	}

	updated, err := app.CardService.RenameCardIn(ctx, board.ID, list.ID, card.ID, title)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJson(NewListOutput(updated))
	}
	renamed, _ := updated.FindCard(card.ID)
	PrintSuccess("Renamed card %s to %q", RenderID(renamed.ID), renamed.Title)
	return nil
}

func runCardDelete(opts appOptions, boardRef, listRef, cardRef string, jsonOutput bool) error {
	ctx := context.Background()
	app, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	board, list, err := app.resolveList(ctx, boardRef, listRef)
	if err != nil {
		return err
	}
	card, err := resolver.ResolveCard(list, cardRef)
	if err != nil {
		return err
	}

	updated, err := app.CardService.DeleteCardFrom(ctx, board.ID, list.ID, card.ID)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJson(NewListOutput(updated))
	}
	PrintSuccess("Deleted card %q", card.Title)
	return nil
}
