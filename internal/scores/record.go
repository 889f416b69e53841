// Package scores holds the high-score board shared by the score server and
// the game client: the record type, the top-N board, submission tokens and
// an HTTP client.
package scores

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// MaxEntries is how many records the board keeps
const MaxEntries = 10

var (
	ErrInvalidRecord = errors.New("invalid score record")
	ErrUnauthorized  = errors.New("unauthorized score submission")
)

// Record is one finished session: its score and how long it lasted
type Record struct {
	Score int     `json:"score" msgpack:"score"`
	Time  float64 `json:"time" msgpack:"time"` // seconds
}

// Validate rejects records no real session could produce
func (r Record) Validate() error {
	if r.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidRecord, r.Score)
	}
	if r.Time < 0 || math.IsNaN(r.Time) || math.IsInf(r.Time, 0) {
		return fmt.Errorf("%w: bad time %v", ErrInvalidRecord, r.Time)
	}
	return nil
}

// Board is the in-memory top list, kept sorted by descending score
type Board struct {
	mu      sync.RWMutex
	records []Record
	limit   int
}

// NewBoard creates a board seeded with records, normalized to the top limit
func NewBoard(limit int, seed []Record) *Board {
	if limit <= 0 {
		limit = MaxEntries
	}
	b := &Board{limit: limit}
	b.records = rank(append([]Record(nil), seed...), limit)
	return b
}

// Insert adds a record and returns a snapshot of the resulting list
func (b *Board) Insert(r Record) []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = rank(append(b.records, r), b.limit)
	return b.snapshot()
}

// List returns a copy of the current list
func (b *Board) List() []Record {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot()
}

// Len returns the number of records held
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}

func (b *Board) snapshot() []Record {
	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out
}

// rank sorts descending by score, ties keeping arrival order, and truncates
func rank(records []Record, limit int) []Record {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
	if len(records) > limit {
		records = records[:limit]
	}
	return records
}
