package id

import (
	"strconv"
	"sync"
	"time"

	fid "github.com/amterp/flexid"
)

// Generator produces entity ids.
type Generator interface {
	Generate() string
}

// FlexGenerator issues time-ordered ids with a short random suffix and never
// hands out the same id twice within a process.
type FlexGenerator struct {
	mu     sync.Mutex
	gen    *fid.Generator
	issued map[string]struct{}
}

// NewGenerator creates a generator with the default boardkit id layout.
func NewGenerator() *FlexGenerator {
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	config := fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(10 * time.Millisecond).
		WithNumRandomChars(3)

	return &FlexGenerator{
		gen:    fid.MustNewGenerator(config),
		issued: make(map[string]struct{}),
	}
}

// Generate returns an id not previously returned by this generator.
func (g *FlexGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	for {
		next := g.gen.MustGenerate()
		if _, seen := g.issued[next]; seen {
			continue
		}
		g.issued[next] = struct{}{}
		return next
	}
}

var defaultGenerator = NewGenerator()

// Default returns the process-wide generator.
func Default() Generator {
	return defaultGenerator
}

// Generate returns a new unique ID from the process-wide generator.
func Generate() string {
	return defaultGenerator.Generate()
}

// UniqueAmong draws ids from gen until one isn't taken.
// taken covers ids that exist in storage from earlier processes.
func UniqueAmong(gen Generator, taken func(string) bool) string {
	for {
		next := gen.Generate()
		if !taken(next) {
			return next
		}
	}
}

// Sequence is a deterministic Generator for tests: it yields prefix-1,
// prefix-2, and so on.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequence creates a deterministic generator with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.prefix + "-" + strconv.Itoa(s.n)
}
