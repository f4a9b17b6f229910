package resolver

import (
	"fmt"

	kanerr "github.com/amterp/boardkit/internal/errors"
	"github.com/amterp/boardkit/internal/model"
	"github.com/amterp/boardkit/internal/prompt"
)

type titled interface {
	model.Identified
	GetTitle() string
}

// ListResolver picks a list inside an already resolved board.
type ListResolver struct {
	prompter prompt.Prompter
}

// NewListResolver creates a new list resolver.
func NewListResolver(prompter prompt.Prompter) *ListResolver {
	return &ListResolver{prompter: prompter}
}

// Resolve follows the same rules as BoardResolver.Resolve, scoped to board.
func (r *ListResolver) Resolve(board model.Board, ref string, interactive bool) (model.List, error) {
	if len(board.Lists) == 0 {
		return model.List{}, fmt.Errorf("board %q has no lists", board.Title)
	}

	candidates := board.Lists
	if ref != "" {
		candidates = matchRef(board.Lists, ref)
		if len(candidates) == 0 {
			return model.List{}, kanerr.ListNotFound(ref, board.ID)
		}
	}

	if len(candidates) == 1 {
		return candidates[0], nil
	}

	if !interactive {
		return model.List{}, fmt.Errorf("ambiguous list in board %q; specify the list id with -l", board.Title)
	}

	chosen, err := r.prompter.Select("Select list", options(candidates))
	if err != nil {
		return model.List{}, err
	}
	list, _ := model.FindChild(candidates, chosen)
	return list, nil
}

// ResolveCard finds a card in list by id or exact title.
func ResolveCard(list model.List, ref string) (model.Card, error) {
	matches := matchRef(list.Cards, ref)
	switch len(matches) {
	case 0:
		return model.Card{}, kanerr.CardNotFound(ref, list.ID)
	case 1:
		return matches[0], nil
	default:
		return model.Card{}, fmt.Errorf("multiple cards titled %q; specify the card id", ref)
	}
}

// matchRef returns the element whose id equals ref, or else every element
// titled ref.
func matchRef[T titled](seq []T, ref string) []T {
	if hit, ok := model.FindChild(seq, ref); ok {
		return []T{hit}
	}
	var out []T
	for _, item := range seq {
		if item.GetTitle() == ref {
			out = append(out, item)
		}
	}
	return out
}

func options[T titled](seq []T) []prompt.Option {
	opts := make([]prompt.Option, len(seq))
	for i, item := range seq {
		opts[i] = prompt.Option{
			Label: fmt.Sprintf("%s (%s)", item.GetTitle(), item.GetID()),
			Value: item.GetID(),
		}
	}
	return opts
}
