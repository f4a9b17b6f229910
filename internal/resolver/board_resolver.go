package resolver

import (
	"context"
	"fmt"

	kanerr "github.com/amterp/boardkit/internal/errors"
	"github.com/amterp/boardkit/internal/model"
	"github.com/amterp/boardkit/internal/prompt"
	"github.com/amterp/boardkit/internal/service"
)

// BoardResolver turns a user-supplied board reference into a board.
type BoardResolver struct {
	boards   *service.BoardService
	prompter prompt.Prompter
}

// NewBoardResolver creates a new board resolver.
func NewBoardResolver(boards *service.BoardService, prompter prompt.Prompter) *BoardResolver {
	return &BoardResolver{boards: boards, prompter: prompter}
}

// Resolve determines which board to use:
// 1. If ref matches a board id, use it
// 2. If ref matches exactly one board title, use it
// 3. If ref is empty and only one board exists, use it
// 4. If interactive, prompt among the candidates
// 5. Otherwise, fail with error
func (r *BoardResolver) Resolve(ctx context.Context, ref string, interactive bool) (model.Board, error) {
	boards, err := r.boards.List(ctx)
	if err != nil {
		return model.Board{}, err
	}

	if len(boards) == 0 {
		return model.Board{}, fmt.Errorf("no boards found; run 'boardkit board add <title>' first")
	}

	candidates := boards
	if ref != "" {
		candidates = matchRef(boards, ref)
		if len(candidates) == 0 {
			return model.Board{}, kanerr.BoardNotFound(ref)
		}
	}

	if len(candidates) == 1 {
		return candidates[0], nil
	}

	if !interactive {
		if ref != "" {
			return model.Board{}, fmt.Errorf("multiple boards titled %q; specify the board id", ref)
		}
		return model.Board{}, fmt.Errorf("multiple boards exist; specify one with -b")
	}

	chosen, err := r.prompter.Select("Select board", options(candidates))
	if err != nil {
		return model.Board{}, err
	}
	board, _ := model.FindChild(candidates, chosen)
	return board, nil
}
