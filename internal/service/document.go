package service

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/amterp/boardkit/internal/codec"
	kanerr "github.com/amterp/boardkit/internal/errors"
	"github.com/amterp/boardkit/internal/model"
	"github.com/amterp/boardkit/internal/store"
)

// errUnchanged is returned by a mutation to report that the collection needs
// no write. Update treats it as success.
var errUnchanged = errors.New("collection unchanged")

// Mutation produces the next collection from the current one.
type Mutation func(current model.Collection) (model.Collection, error)

// ChangeListener is notified after a mutation has been persisted.
type ChangeListener interface {
	OnCollectionChange(c model.Collection)
}

// Document is the single persisted collection under one store key.
//
// All reads and read-modify-write cycles are serialized: a write always
// completes before the next cycle reads, so back-to-back mutations never
// overwrite each other. Every service sharing a Document shares this
// guarantee.
type Document struct {
	store store.Store
	key   string
	mu    sync.Mutex

	listenersMu sync.RWMutex
	listeners   []ChangeListener
}

// NewDocument creates a document stored under key in s.
func NewDocument(s store.Store, key string) *Document {
	return &Document{store: s, key: key}
}

// Key returns the store key holding the collection.
func (d *Document) Key() string {
	return d.key
}

// Subscribe registers a listener for persisted changes.
func (d *Document) Subscribe(l ChangeListener) {
	d.listenersMu.Lock()
	defer d.listenersMu.Unlock()
	d.listeners = append(d.listeners, l)
}

// Load reads and decodes the current collection. A never-written key is an
// empty collection.
func (d *Document) Load(ctx context.Context) (model.Collection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(ctx)
}

func (d *Document) load(ctx context.Context) (model.Collection, error) {
	data, ok, err := d.store.Read(ctx, d.key)
	if err != nil {
		return model.Collection{}, kanerr.ReadFailed(d.key, err)
	}
	if !ok {
		return model.NewCollection(), nil
	}

	c, err := codec.Decode(data)
	if err != nil {
		var corrupt *kanerr.CorruptDataError
		if errors.As(err, &corrupt) {
			return model.Collection{}, kanerr.Corrupt(d.key, corrupt.Err)
		}
		return model.Collection{}, err
	}
	return c, nil
}

// Update runs fn against the current collection and persists the result.
// If fn fails nothing is written and the stored collection stays intact.
func (d *Document) Update(ctx context.Context, fn Mutation) (model.Collection, error) {
	next, changed, err := d.update(ctx, fn)
	if err != nil {
		return model.Collection{}, err
	}
	if changed {
		d.notify(next)
	}
	return next, nil
}

func (d *Document) update(ctx context.Context, fn Mutation) (model.Collection, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	current, err := d.load(ctx)
	if err != nil {
		return model.Collection{}, false, err
	}

	next, err := fn(current)
	if errors.Is(err, errUnchanged) {
		return current, false, nil
	}
	if err != nil {
		return model.Collection{}, false, err
	}

	if err := d.write(ctx, next); err != nil {
		return model.Collection{}, false, err
	}
	return next.Normalize(), true, nil
}

func (d *Document) write(ctx context.Context, c model.Collection) error {
	data, err := codec.Encode(c)
	if err != nil {
		return err
	}
	if err := d.store.Write(ctx, d.key, data); err != nil {
		return kanerr.WriteFailed(d.key, err)
	}

	log.Debug().
		Str("key", d.key).
		Int("bytes", len(data)).
		Int("boards", len(c.Boards)).
		Msg("collection persisted")
	return nil
}

// Reset overwrites whatever is stored, including corrupt data, with an
// empty collection.
func (d *Document) Reset(ctx context.Context) error {
	d.mu.Lock()
	err := d.write(ctx, model.NewCollection())
	d.mu.Unlock()
	if err != nil {
		return err
	}

	log.Warn().Str("key", d.key).Msg("collection reset")
	d.notify(model.NewCollection())
	return nil
}

// Replace swaps the whole stored collection for next. It reports false and
// writes nothing when next encodes identically to what is stored.
func (d *Document) Replace(ctx context.Context, next model.Collection) (bool, error) {
	want, err := codec.Encode(next)
	if err != nil {
		return false, err
	}

	changed := false
	_, err = d.Update(ctx, func(current model.Collection) (model.Collection, error) {
		have, err := codec.Encode(current)
		if err != nil {
			return current, err
		}
		if bytes.Equal(have, want) {
			return current, errUnchanged
		}
		changed = true
		return next, nil
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

// UpdateBoard runs fn against the board with boardID and persists the
// collection with that board replaced in place.
func (d *Document) UpdateBoard(ctx context.Context, boardID string, fn func(model.Board) (model.Board, error)) (model.Board, error) {
	saved, err := d.Update(ctx, func(c model.Collection) (model.Collection, error) {
		board, ok := c.FindBoard(boardID)
		if !ok {
			return c, kanerr.BoardNotFound(boardID)
		}

		next, err := fn(board)
		if err != nil {
			return c, err
		}
		if next.ID != boardID {
			return c, kanerr.IDMismatch("board", boardID, next.ID)
		}

		boards, _ := model.ReplaceChild(c.Boards, boardID, next)
		return c.WithBoards(boards), nil
	})
	if err != nil {
		return model.Board{}, err
	}

	// Read back from the saved value so callers see what was persisted.
	result, _ := saved.FindBoard(boardID)
	return result, nil
}

func (d *Document) notify(c model.Collection) {
	d.listenersMu.RLock()
	listeners := make([]ChangeListener, len(d.listeners))
	copy(listeners, d.listeners)
	d.listenersMu.RUnlock()

	for _, l := range listeners {
		l.OnCollectionChange(c)
	}
}
