package cli

import (
	"context"
	"fmt"

	"github.com/amterp/boardkit/internal/model"
	"github.com/amterp/ra"
)

func registerShow(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("show")
	cmd.SetDescription("Display a board with its lists and cards")

	ctx.ShowBoard, _ = ra.NewString("board").
		SetOptional(true).
		SetUsage("Board id or title").
		SetCompletionFunc(completeBoards).
		Register(cmd)

	ctx.ShowUsed, _ = parent.RegisterCmd(cmd)
}

func runShow(opts appOptions, boardRef string, jsonOutput bool) error {
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

	if jsonOutput {
		return printJson(NewBoardOutput(board))
	}
	printBoard(board)
	return nil
}

func printBoard(board model.Board) {
	fmt.Println(TitleBox(board.Title))
	fmt.Println(LabelValue("ID", RenderID(board.ID), 4))

	if len(board.Lists) == 0 {
		fmt.Println()
		PrintInfo("No lists yet")
		return
	}

	for _, list := range board.Lists {
		header := RenderBold(list.Title)
		countStr := RenderMuted(fmt.Sprintf("(%d)", len(list.Cards)))
		fmt.Printf("\n%s %s %s\n", header, countStr, RenderMuted(list.ID))
		for _, card := range list.Cards {
			fmt.Printf("  %s  %s\n", RenderID(card.ID), card.Title)
		}
	}
}
