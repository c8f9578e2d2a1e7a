// Package history persists solved problems so they can be listed and
// compared later. The solvers never touch it; the Manager appends to it.
package history

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/transport/core/model"
)

// Record captures one solved problem.
type Record struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Problem   model.Problem  `json:"problem"`
	Solution  model.Solution `json:"solution"`
}

// NewRecord stamps a solution with a fresh id and the current time.
func NewRecord(p model.Problem, s model.Solution) Record {
	return Record{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Problem:   p,
		Solution:  s,
	}
}

// Query defines filters for retrieving records. Zero values disable a filter.
type Query struct {
	Start       time.Time
	End         time.Time
	Method      *model.Method
	Limit       int
	NewestFirst bool
}

// ForMethod returns q restricted to m.
func (q Query) ForMethod(m model.Method) Query {
	q.Method = &m
	return q
}

// Match reports whether r passes the time and method filters.
func (q Query) Match(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Method != nil && r.Solution.Method != *q.Method {
		return false
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Clear(ctx context.Context) error
	Close() error
}

// finish orders matching records chronologically (or newest first) and
// applies the limit.
func finish(q Query, recs []Record) []Record {
	sort.SliceStable(recs, func(i, j int) bool {
		if q.NewestFirst {
			return recs[i].Timestamp.After(recs[j].Timestamp)
		}
		return recs[i].Timestamp.Before(recs[j].Timestamp)
	})
	if q.Limit > 0 && len(recs) > q.Limit {
		recs = recs[:q.Limit]
	}
	return recs
}
