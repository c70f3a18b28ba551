package claim

import (
	"context"
	"fmt"
	"sync"
)

// DefaultNumberPrefix prefixes generated claim numbers.
const DefaultNumberPrefix = "CLM"

// NumberGenerator issues claim numbers of the form <prefix>-<sequence>.
type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// FormatNumber renders a claim number with a zero-padded sequence.
func FormatNumber(prefix string, seq int64) string {
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	return fmt.Sprintf("%s-%06d", prefix, seq)
}

// MemoryNumberGenerator is a process-local sequence, used by tests and the
// CLI when no database is configured.
type MemoryNumberGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int64
}

func NewMemoryNumberGenerator(prefix string, start int64) *MemoryNumberGenerator {
	if start < 1 {
		start = 1
	}
	return &MemoryNumberGenerator{prefix: prefix, next: start}
}

func (g *MemoryNumberGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := FormatNumber(g.prefix, g.next)
	g.next++
	return n, nil
}
