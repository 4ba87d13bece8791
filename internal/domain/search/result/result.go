// Package result holds the normalized, ordered outcome of a search.
package result

import "github.com/google/uuid"

// Item is a single hit: a record identifier with its relevance score.
type Item struct {
	recordID uuid.UUID
	score    float64
}

// NewItem creates a result item.
func NewItem(recordID uuid.UUID, score float64) Item {
	return Item{recordID: recordID, score: score}
}

// RecordID returns the hit record identifier.
func (i Item) RecordID() uuid.UUID { return i.recordID }

// Score returns the relevance score.
func (i Item) Score() float64 { return i.score }

// Set is an ordered result set. Items preserve engine retrieval order;
// Total reflects the engine's tracked total, not a capped estimate.
type Set struct {
	total int64
	items []Item
}

// NewSet creates a result set.
func NewSet(total int64, items []Item) Set {
	return Set{total: total, items: items}
}

// Total returns the tracked total hit count.
func (s Set) Total() int64 { return s.total }

// Items returns the hits in retrieval order.
func (s Set) Items() []Item { return s.items }
