package service

import (
	"context"

	kanerr "github.com/amterp/boardkit/internal/errors"
	"github.com/amterp/boardkit/internal/id"
	"github.com/amterp/boardkit/internal/model"
	"github.com/amterp/boardkit/internal/util"
)

// CardService handles cards. Cards are never persisted on their own: every
// change produces a new list value which is written through
// ListService.ModifyList.
type CardService struct {
	lists *ListService
	ids   id.Generator
}

// NewCardService creates a new card service.
func NewCardService(lists *ListService, ids id.Generator) *CardService {
	return &CardService{lists: lists, ids: ids}
}

// AddCard returns a copy of list with a new card appended.
// A blank title returns list unchanged.
func (s *CardService) AddCard(list model.List, title string) model.List {
	if util.IsBlank(title) {
		return list
	}
	cardID := id.UniqueAmong(s.ids, func(candidate string) bool {
		return model.HasChild(list.Cards, candidate)
	})
	card := model.NewCard(cardID, util.NormalizeTitle(title))
	return list.WithCards(model.AppendChild(list.Cards, card))
}

// DeleteCard returns a copy of list without the given card.
func (s *CardService) DeleteCard(list model.List, cardID string) model.List {
	cards, ok := model.RemoveChild(list.Cards, cardID)
	if !ok {
		return list
	}
	return list.WithCards(cards)
}

// RenameCard returns a copy of list with the card's title changed.
func (s *CardService) RenameCard(list model.List, cardID, title string) (model.List, error) {
	card, ok := list.FindCard(cardID)
	if !ok {
		return list, kanerr.CardNotFound(cardID, list.ID)
	}
	if util.IsBlank(title) {
		return list, nil
	}
	card.Title = util.NormalizeTitle(title)
	cards, _ := model.ReplaceChild(list.Cards, cardID, card)
	return list.WithCards(cards), nil
}

// AddCardTo adds a card to a stored list and returns the updated list.
func (s *CardService) AddCardTo(ctx context.Context, boardID, listID, title string) (model.List, error) {
	return s.modify(ctx, boardID, listID, func(l model.List) (model.List, error) {
		next := s.AddCard(l, title)
		if len(next.Cards) == len(l.Cards) {
			return l, errUnchanged
		}
		return next, nil
	})
}

// DeleteCardFrom removes a card from a stored list. Unknown cards are a no-op.
func (s *CardService) DeleteCardFrom(ctx context.Context, boardID, listID, cardID string) (model.List, error) {
	return s.modify(ctx, boardID, listID, func(l model.List) (model.List, error) {
		if !model.HasChild(l.Cards, cardID) {
			return l, errUnchanged
		}
		return s.DeleteCard(l, cardID), nil
	})
}

// RenameCardIn changes the title of a card in a stored list.
func (s *CardService) RenameCardIn(ctx context.Context, boardID, listID, cardID, title string) (model.List, error) {
	return s.modify(ctx, boardID, listID, func(l model.List) (model.List, error) {
		if util.IsBlank(title) {
			if !model.HasChild(l.Cards, cardID) {
				return l, kanerr.CardNotFound(cardID, listID)
			}
			return l, errUnchanged
		}
		return s.RenameCard(l, cardID, title)
	})
}

func (s *CardService) modify(ctx context.Context, boardID, listID string, fn func(model.List) (model.List, error)) (model.List, error) {
	board, err := s.lists.ModifyList(ctx, boardID, listID, fn)
	if err != nil {
		return model.List{}, err
	}
	list, _ := board.FindList(listID)
	return list, nil
}
