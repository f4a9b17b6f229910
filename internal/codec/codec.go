// Package codec converts the board collection to and from its stored form:
// a UTF-8 JSON array of boards, each embedding its lists and cards.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	kanerr "github.com/amterp/boardkit/internal/errors"
	"github.com/amterp/boardkit/internal/model"
)

// Encode serializes the collection. Nil child sequences are written as [].
func Encode(c model.Collection) ([]byte, error) {
	data, err := json.Marshal(c.Normalize().Boards)
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return data, nil
}

// Decode parses stored bytes into a collection.
// Absent-equivalent input (nil, blank or null) yields an empty collection.
// Anything else that doesn't match the expected shape is a CorruptDataError.
func Decode(data []byte) (model.Collection, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return model.NewCollection(), nil
	}

	var records []boardRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return model.Collection{}, kanerr.Corrupt("", err)
	}

	boards := make([]model.Board, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		board, err := rec.toBoard()
		if err != nil {
			return model.Collection{}, kanerr.Corrupt("", fmt.Errorf("board %d: %w", i, err))
		}
		if seen[board.ID] {
			return model.Collection{}, kanerr.Corrupt("", fmt.Errorf("duplicate board id %q", board.ID))
		}
		seen[board.ID] = true
		boards = append(boards, board)
	}

	return model.NewCollection().WithBoards(boards), nil
}

// Records use pointers so missing keys can be told apart from empty values.

type cardRecord struct {
	ID    *string `json:"id"`
	Title *string `json:"title"`
}

type listRecord struct {
	ID    *string      `json:"id"`
	Title *string      `json:"title"`
	Cards []cardRecord `json:"cards"`
}

type boardRecord struct {
	ID    *string      `json:"id"`
	Title *string      `json:"title"`
	Lists []listRecord `json:"lists"`
}

var errMissingID = errors.New("missing id")

func checkHeader(id, title *string) error {
	if id == nil || *id == "" {
		return errMissingID
	}
	if title == nil {
		return fmt.Errorf("entity %q has no title", *id)
	}
	return nil
}

func (r boardRecord) toBoard() (model.Board, error) {
	if err := checkHeader(r.ID, r.Title); err != nil {
		return model.Board{}, err
	}

	lists := make([]model.List, 0, len(r.Lists))
	for i, lr := range r.Lists {
		list, err := lr.toList()
		if err != nil {
			return model.Board{}, fmt.Errorf("list %d: %w", i, err)
		}
		if model.HasChild(lists, list.ID) {
			return model.Board{}, fmt.Errorf("duplicate list id %q", list.ID)
		}
		lists = append(lists, list)
	}

	return model.NewBoard(*r.ID, *r.Title).WithLists(lists), nil
}

func (r listRecord) toList() (model.List, error) {
	if err := checkHeader(r.ID, r.Title); err != nil {
		return model.List{}, err
	}

	cards := make([]model.Card, 0, len(r.Cards))
	for i, cr := range r.Cards {
		if err := checkHeader(cr.ID, cr.Title); err != nil {
			return model.List{}, fmt.Errorf("card %d: %w", i, err)
		}
		if model.HasChild(cards, *cr.ID) {
			return model.List{}, fmt.Errorf("duplicate card id %q", *cr.ID)
		}
		cards = append(cards, model.NewCard(*cr.ID, *cr.Title))
	}

	return model.NewList(*r.ID, *r.Title).WithCards(cards), nil
}
