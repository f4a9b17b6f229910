package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/amterp/boardkit/internal/codec"
	"github.com/amterp/boardkit/internal/id"
	"github.com/amterp/boardkit/internal/model"
	"github.com/amterp/boardkit/internal/service"
	"github.com/amterp/boardkit/internal/store"
)

// ErrInjected is returned by FailingStore when a failure is armed.
var ErrInjected = errors.New("injected store failure")

// Card returns a card fixture.
func Card(id, title string) model.Card {
	return model.NewCard(id, title)
}

// List returns a list fixture holding cards.
func List(id, title string, cards ...model.Card) model.List {
	return model.NewList(id, title).WithCards(append([]model.Card{}, cards...))
}

// Board returns a board fixture holding lists.
func Board(id, title string, lists ...model.List) model.Board {
	return model.NewBoard(id, title).WithLists(append([]model.List{}, lists...))
}

// Services bundles the services sharing one Document.
type Services struct {
	Store  *FailingStore
	Doc    *service.Document
	Boards *service.BoardService
	Lists  *service.ListService
	Cards  *service.CardService
}

// NewServices wires services over an in-memory store with deterministic ids
// (id-1, id-2, ...).
func NewServices(t *testing.T) *Services {
	t.Helper()

	s := NewFailingStore(store.NewMemoryStore())
	doc := service.NewDocument(s, store.CollectionKey)
	ids := id.NewSequence("id")
	lists := service.NewListService(doc, ids)

	return &Services{
		Store:  s,
		Doc:    doc,
		Boards: service.NewBoardService(doc, ids),
		Lists:  lists,
		Cards:  service.NewCardService(lists, ids),
	}
}

// Seed writes c directly to the store, bypassing the services.
func Seed(t *testing.T, s store.Store, c model.Collection) {
	t.Helper()

	data, err := codec.Encode(c)
	if err != nil {
		t.Fatalf("failed to encode seed: %v", err)
	}
	if err := s.Write(context.Background(), store.CollectionKey, data); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
}

// FailingStore wraps a store and fails reads or writes on demand.
type FailingStore struct {
	store.Store

	mu        sync.Mutex
	failRead  bool
	failWrite bool
	writes    int
}

// NewFailingStore wraps inner with no failures armed.
func NewFailingStore(inner store.Store) *FailingStore {
	return &FailingStore{Store: inner}
}

// FailReads arms or disarms read failures.
func (s *FailingStore) FailReads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRead = fail
}

// FailWrites arms or disarms write failures.
func (s *FailingStore) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrite = fail
}

// Writes returns how many writes reached the inner store.
func (s *FailingStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *FailingStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	fail := s.failRead
	s.mu.Unlock()
	if fail {
		return nil, false, ErrInjected
	}
	return s.Store.Read(ctx, key)
}

func (s *FailingStore) Write(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	if s.failWrite {
		s.mu.Unlock()
		return ErrInjected
	}
	s.writes++
	s.mu.Unlock()
	return s.Store.Write(ctx, key, data)
}
