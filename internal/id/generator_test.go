package id

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlexGenerator_Unique(t *testing.T) {
	gen := NewGenerator()
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		next := gen.Generate()
		assert.NotEmpty(t, next)
		assert.False(t, seen[next], "duplicate id %s", next)
		seen[next] = true
	}
}

func TestFlexGenerator_ConcurrentUnique(t *testing.T) {
	gen := NewGenerator()

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				next := gen.Generate()
				mu.Lock()
				assert.False(t, seen[next], "duplicate id %s", next)
				seen[next] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 800)
}

func TestSequence(t *testing.T) {
	seq := NewSequence("card")
	assert.Equal(t, "card-1", seq.Generate())
	assert.Equal(t, "card-2", seq.Generate())
}

func TestUniqueAmong_SkipsTaken(t *testing.T) {
	taken := map[string]bool{"x-1": true, "x-2": true}

	got := UniqueAmong(NewSequence("x"), func(candidate string) bool {
		return taken[candidate]
	})
	assert.Equal(t, "x-3", got)
}

func TestDefault_IsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.NotEmpty(t, Generate())
}
