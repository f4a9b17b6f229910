package model

// Card is a leaf entry inside a list.
type Card struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// List is an ordered column of cards inside a board.
// Cards are kept in insertion order.
type List struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// Board is the top-level unit a user works in.
type Board struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Lists []List `json:"lists"`
}

// Collection is the single persisted document holding every board.
type Collection struct {
	Boards []Board
}

// NewCard creates a card with the given id and title.
func NewCard(id, title string) Card {
	return Card{ID: id, Title: title}
}

// NewList creates a list with no cards.
func NewList(id, title string) List {
	return List{ID: id, Title: title, Cards: []Card{}}
}

// NewBoard creates a board with no lists.
func NewBoard(id, title string) Board {
	return Board{ID: id, Title: title, Lists: []List{}}
}

// NewCollection creates an empty collection.
func NewCollection() Collection {
	return Collection{Boards: []Board{}}
}

func (c Card) GetID() string  { return c.ID }
func (l List) GetID() string  { return l.ID }
func (b Board) GetID() string { return b.ID }

func (c Card) GetTitle() string  { return c.Title }
func (l List) GetTitle() string  { return l.Title }
func (b Board) GetTitle() string { return b.Title }

// FindCard returns the card with the given id.
func (l List) FindCard(cardID string) (Card, bool) {
	return FindChild(l.Cards, cardID)
}

// WithCards returns a copy of the list holding the given cards.
// ID and title are preserved.
func (l List) WithCards(cards []Card) List {
	l.Cards = cards
	return l
}

// FindList returns the list with the given id.
func (b Board) FindList(listID string) (List, bool) {
	return FindChild(b.Lists, listID)
}

// WithLists returns a copy of the board holding the given lists.
func (b Board) WithLists(lists []List) Board {
	b.Lists = lists
	return b
}

// FindBoard returns the board with the given id.
func (c Collection) FindBoard(boardID string) (Board, bool) {
	return FindChild(c.Boards, boardID)
}

// WithBoards returns a collection holding the given boards.
func (c Collection) WithBoards(boards []Board) Collection {
	return Collection{Boards: boards}
}

// Normalize replaces nil child slices with empty ones at every level.
// The returned collection shares no slices with c.
func (c Collection) Normalize() Collection {
	boards := make([]Board, len(c.Boards))
	for i, b := range c.Boards {
		lists := make([]List, len(b.Lists))
		for j, l := range b.Lists {
			cards := make([]Card, len(l.Cards))
			copy(cards, l.Cards)
			lists[j] = l.WithCards(cards)
		}
		boards[i] = b.WithLists(lists)
	}
	return Collection{Boards: boards}
}

// CardCount returns the number of cards across all lists of the board.
func (b Board) CardCount() int {
	n := 0
	for _, l := range b.Lists {
		n += len(l.Cards)
	}
	return n
}
