package service

import (
	"context"

	kanerr "github.com/amterp/boardkit/internal/errors"
	"github.com/amterp/boardkit/internal/id"
	"github.com/amterp/boardkit/internal/model"
	"github.com/amterp/boardkit/internal/util"
)

// ListService handles the lists of one board. Every operation rewrites the
// owning board and, through it, the whole collection.
type ListService struct {
	doc *Document
	ids id.Generator
}

// NewListService creates a new list service.
func NewListService(doc *Document, ids id.Generator) *ListService {
	return &ListService{doc: doc, ids: ids}
}

// AddList appends a new empty list to the board and returns the updated board.
// A blank title returns the board unchanged.
func (s *ListService) AddList(ctx context.Context, boardID, title string) (model.Board, error) {
	return s.doc.UpdateBoard(ctx, boardID, func(b model.Board) (model.Board, error) {
		if util.IsBlank(title) {
			return b, errUnchanged
		}
		listID := id.UniqueAmong(s.ids, func(candidate string) bool {
			return model.HasChild(b.Lists, candidate)
		})
		list := model.NewList(listID, util.NormalizeTitle(title))
		return b.WithLists(model.AppendChild(b.Lists, list)), nil
	})
}

// UpdateList replaces the list with listID by newList.
// newList must carry the same id; anything else would orphan the original.
func (s *ListService) UpdateList(ctx context.Context, boardID, listID string, newList model.List) (model.Board, error) {
	if newList.ID != listID {
		return model.Board{}, kanerr.IDMismatch("list", listID, newList.ID)
	}
	return s.ModifyList(ctx, boardID, listID, func(model.List) (model.List, error) {
		return newList, nil
	})
}

// ModifyList replaces the list with listID by fn's result inside a single
// serialized read-modify-write.
func (s *ListService) ModifyList(ctx context.Context, boardID, listID string, fn func(model.List) (model.List, error)) (model.Board, error) {
	return s.doc.UpdateBoard(ctx, boardID, func(b model.Board) (model.Board, error) {
		list, ok := b.FindList(listID)
		if !ok {
			return b, kanerr.ListNotFound(listID, boardID)
		}

		next, err := fn(list)
		if err != nil {
			return b, err
		}
		if next.ID != listID {
			return b, kanerr.IDMismatch("list", listID, next.ID)
		}
		next, err = normalizeList(next)
		if err != nil {
			return b, err
		}

		lists, _ := model.ReplaceChild(b.Lists, listID, next)
		return b.WithLists(lists), nil
	})
}

// DeleteList removes the list and all of its cards. Deleting an unknown
// list returns the board unchanged.
func (s *ListService) DeleteList(ctx context.Context, boardID, listID string) (model.Board, error) {
	return s.doc.UpdateBoard(ctx, boardID, func(b model.Board) (model.Board, error) {
		lists, ok := model.RemoveChild(b.Lists, listID)
		if !ok {
			return b, errUnchanged
		}
		return b.WithLists(lists), nil
	})
}

// RenameList changes a list's title, keeping its cards.
func (s *ListService) RenameList(ctx context.Context, boardID, listID, title string) (model.Board, error) {
	return s.ModifyList(ctx, boardID, listID, func(l model.List) (model.List, error) {
		if util.IsBlank(title) {
			return l, errUnchanged
		}
		l.Title = util.NormalizeTitle(title)
		return l, nil
	})
}

// normalizeList returns a copy of l stored the way AddList and AddCard
// would have stored it: titles normalized and a non-nil card slice. Lists or
// cards that would persist without a title, and card sequences the codec
// couldn't read back, are rejected.
func normalizeList(l model.List) (model.List, error) {
	if util.IsBlank(l.Title) {
		return l, kanerr.InvalidField("list title", "must not be blank")
	}
	l.Title = util.NormalizeTitle(l.Title)

	cards := make([]model.Card, 0, len(l.Cards))
	seen := make(map[string]bool, len(l.Cards))
	for _, c := range l.Cards {
		if c.ID == "" {
			return l, kanerr.InvalidField("card id", "must not be empty")
		}
		if seen[c.ID] {
			return l, kanerr.InvalidField("card id", "duplicate id "+c.ID)
		}
		if util.IsBlank(c.Title) {
			return l, kanerr.InvalidField("card title", "must not be blank ("+c.ID+")")
		}
		seen[c.ID] = true
		cards = append(cards, model.NewCard(c.ID, util.NormalizeTitle(c.Title)))
	}
	return l.WithCards(cards), nil
}
