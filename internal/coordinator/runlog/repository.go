package runlog

import (
	"context"
	"errors"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrNotFound is returned by GetLatest when a run id has no entries.
var ErrNotFound = errors.New("runlog: run not found")

// Repository persists run log entries. Save always appends; the log is never
// updated in place.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	GetLatest(ctx context.Context, runID string) (*Entry, error)
}

// DefaultMemoryRuns is how many runs a MemoryRepository keeps by default.
const DefaultMemoryRuns = 1000

// MemoryOption configures a MemoryRepository.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	maxRuns int
}

// WithMaxRuns bounds the repository to the n most recently written runs.
// n <= 0 keeps DefaultMemoryRuns.
func WithMaxRuns(n int) MemoryOption {
	return func(c *memoryConfig) {
		if n > 0 {
			c.maxRuns = n
		}
	}
}

// MemoryRepository keeps the entries of the most recently written runs in
// process memory, evicting whole runs once the bound is reached. It backs the
// service when no database path is configured, and serves as a fake in tests.
type MemoryRepository struct {
	mu   sync.Mutex
	runs *lru.Cache[string, []Entry]
}

func NewMemoryRepository(opts ...MemoryOption) *MemoryRepository {
	cfg := memoryConfig{maxRuns: DefaultMemoryRuns}
	for _, opt := range opts {
		opt(&cfg)
	}
	runs, err := lru.New[string, []Entry](cfg.maxRuns)
	if err != nil {
		// maxRuns is always positive here.
		panic(err)
	}
	return &MemoryRepository{runs: runs}
}

func (r *MemoryRepository) Save(_ context.Context, entry *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, _ := r.runs.Get(entry.RunID)
	r.runs.Add(entry.RunID, append(entries[:len(entries):len(entries)], *entry))
	return nil
}

func (r *MemoryRepository) GetLatest(_ context.Context, runID string) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, ok := r.runs.Peek(runID)
	if !ok || len(entries) == 0 {
		return nil, ErrNotFound
	}
	e := entries[len(entries)-1]
	return &e, nil
}

// Entries returns a copy of every entry for runID in insertion order.
func (r *MemoryRepository) Entries(runID string) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, _ := r.runs.Peek(runID)
	if len(entries) == 0 {
		return nil
	}
	return append([]Entry(nil), entries...)
}

// Len reports how many runs are held.
func (r *MemoryRepository) Len() int {
	return r.runs.Len()
}
