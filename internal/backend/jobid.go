package backend

import (
	"sync"

	"github.com/google/uuid"
)

// IDGenerator mints job IDs for targets that assign them locally.
// Remote targets use the endpoint's IDs instead.
type IDGenerator interface {
	NewID() string
}

// UUIDv7Generator generates time-ordered UUIDs, so locally minted job
// IDs sort by submission time.
type UUIDv7Generator struct{}

// NewID returns a new UUIDv7 string.
func (UUIDv7Generator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedIDGenerator returns predetermined job IDs for testing. The same
// run with the same generator produces byte-identical output.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDGenerator creates a generator that returns ids in order.
// NewID panics once all ids are consumed, so a test that submits more
// jobs than it scripted fails loudly.
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

// NewID returns the next predetermined id.
func (g *FixedIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("FixedIDGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
