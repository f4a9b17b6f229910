package service

import (
	"context"

	kanerr "github.com/amterp/boardkit/internal/errors"
	"github.com/amterp/boardkit/internal/id"
	"github.com/amterp/boardkit/internal/model"
	"github.com/amterp/boardkit/internal/util"
)

// BoardService handles whole-collection board operations.
type BoardService struct {
	doc *Document
	ids id.Generator
}

// NewBoardService creates a new board service.
func NewBoardService(doc *Document, ids id.Generator) *BoardService {
	return &BoardService{doc: doc, ids: ids}
}

// List returns all boards in display order.
func (s *BoardService) List(ctx context.Context) ([]model.Board, error) {
	c, err := s.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Boards, nil
}

// Get returns the board with the given id.
func (s *BoardService) Get(ctx context.Context, boardID string) (model.Board, error) {
	c, err := s.doc.Load(ctx)
	if err != nil {
		return model.Board{}, err
	}
	board, ok := c.FindBoard(boardID)
	if !ok {
		return model.Board{}, kanerr.BoardNotFound(boardID)
	}
	return board, nil
}

// Add appends a new empty board.
// A blank title is ignored: nothing is written and nil is returned.
func (s *BoardService) Add(ctx context.Context, title string) (*model.Board, error) {
	if util.IsBlank(title) {
		return nil, nil
	}
	title = util.NormalizeTitle(title)

	var created model.Board
	_, err := s.doc.Update(ctx, func(c model.Collection) (model.Collection, error) {
		boardID := id.UniqueAmong(s.ids, func(candidate string) bool {
			return model.HasChild(c.Boards, candidate)
		})
		created = model.NewBoard(boardID, title)
		return c.WithBoards(model.AppendChild(c.Boards, created)), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Remove deletes a board along with its lists and cards.
// Removing an unknown board is a no-op.
func (s *BoardService) Remove(ctx context.Context, boardID string) error {
	_, err := s.doc.Update(ctx, func(c model.Collection) (model.Collection, error) {
		boards, ok := model.RemoveChild(c.Boards, boardID)
		if !ok {
			return c, errUnchanged
		}
		return c.WithBoards(boards), nil
	})
	return err
}

// Rename changes a board's title. A blank title leaves the board unchanged.
func (s *BoardService) Rename(ctx context.Context, boardID, title string) (model.Board, error) {
	return s.doc.UpdateBoard(ctx, boardID, func(b model.Board) (model.Board, error) {
		if util.IsBlank(title) {
			return b, errUnchanged
		}
		b.Title = util.NormalizeTitle(title)
		return b, nil
	})
}
