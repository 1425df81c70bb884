// Package dedup decides whether a candidate event is already stored.
// Two events are equivalent when their folded titles and cities match, optionally also their dates.
package dedup

import (
	"context"
	"fmt"
	"strings"

	"github.com/umputun/corteo/pkg/domain"
	"github.com/umputun/corteo/pkg/extract"
)

// SimilarFinder returns stored events that may be equivalent to the given title, city and date.
// An empty date means the date is not part of the lookup.
type SimilarFinder interface {
	FindSimilar(ctx context.Context, title, city, date string) ([]domain.Event, error)
}

// Deduplicator checks candidates against stored events
type Deduplicator struct {
	withDate bool
}

// Option configures Deduplicator
type Option func(*Deduplicator)

// WithDate makes the event date part of the equivalence key
func WithDate(enabled bool) Option {
	return func(d *Deduplicator) { d.withDate = enabled }
}

// New makes a Deduplicator
func New(opts ...Option) *Deduplicator {
	res := &Deduplicator{}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Key returns the equivalence key of an event
func (d *Deduplicator) Key(ev domain.Event) string {
	parts := []string{extract.FoldKey(ev.Title), extract.FoldKey(ev.City)}
	if d.withDate {
		parts = append(parts, ev.Date)
	}
	return strings.Join(parts, "|")
}

// IsDuplicate reports whether lookup knows an event equivalent to candidate.
// Any lookup error is returned as is, the caller decides how to count it.
func (d *Deduplicator) IsDuplicate(ctx context.Context, candidate domain.Event, lookup SimilarFinder) (bool, error) {
	date := ""
	if d.withDate {
		date = candidate.Date
	}
	found, err := lookup.FindSimilar(ctx, candidate.Title, candidate.City, date)
	if err != nil {
		return false, fmt.Errorf("find similar to %q: %w", candidate.Title, err)
	}
	key := d.Key(candidate)
	for _, ev := range found {
		if d.Key(ev) == key {
			return true, nil
		}
	}
	return false, nil
}
