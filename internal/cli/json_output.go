package cli

import (
	"encoding/json"
	"fmt"

	"github.com/amterp/boardkit/internal/model"
)

// BoardsOutput wraps every board for JSON output.
type BoardsOutput struct {
	Boards []model.Board `json:"boards"`
}

// NewBoardsOutput creates a BoardsOutput.
// Always returns an empty array (not null) when there are no boards.
func NewBoardsOutput(boards []model.Board) BoardsOutput {
	return BoardsOutput{Boards: model.Collection{Boards: boards}.Normalize().Boards}
}

// BoardOutput wraps a single board for JSON output.
type BoardOutput struct {
	Board model.Board `json:"board"`
}

// NewBoardOutput creates a BoardOutput with nil slices rendered as [].
func NewBoardOutput(board model.Board) BoardOutput {
	normalized := model.Collection{Boards: []model.Board{board}}.Normalize()
	return BoardOutput{Board: normalized.Boards[0]}
}

// ListOutput wraps a single list for JSON output.
type ListOutput struct {
	List model.List `json:"list"`
}

// NewListOutput creates a ListOutput.
// Always returns an empty cards array (not null).
func NewListOutput(list model.List) ListOutput {
	if list.Cards == nil {
		list = list.WithCards([]model.Card{})
	}
	return ListOutput{List: list}
}

// printJson marshals the value as indented JSON and prints it to stdout.
func printJson(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}
