// Package cache provides the keyed query cache the client serves list
// reads from. Keys are "<collection>|<encoded filters>" and every
// mutation invalidates its whole collection prefix, so stale filtered
// views can never survive a write.
package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const sep = "|"

type Query struct {
	c *gocache.Cache
}

// New creates a query cache whose entries expire after ttl. A zero ttl
// disables caching entirely: Get never hits and Set is a no-op, which
// keeps call sites free of conditionals.
func New(ttl time.Duration) *Query {
	if ttl <= 0 {
		return &Query{}
	}
	return &Query{c: gocache.New(ttl, 2*ttl)}
}

// Key builds a cache key from a collection name and filter fragments.
func Key(collection string, parts ...string) string {
	if len(parts) == 0 {
		return collection
	}
	return collection + sep + strings.Join(parts, "&")
}

func (q *Query) Get(key string) (any, bool) {
	if q.c == nil {
		return nil, false
	}
	return q.c.Get(key)
}

func (q *Query) Set(key string, v any) {
	if q.c == nil {
		return
	}
	q.c.SetDefault(key, v)
}

// Invalidate drops every entry belonging to a collection, filtered or
// not.
func (q *Query) Invalidate(collection string) {
	if q.c == nil {
		return
	}
	for key := range q.c.Items() {
		if key == collection || strings.HasPrefix(key, collection+sep) {
			q.c.Delete(key)
		}
	}
}

// Flush drops everything, e.g. after login when the user changes.
func (q *Query) Flush() {
	if q.c == nil {
		return
	}
	q.c.Flush()
}

// Len reports the number of live entries.
func (q *Query) Len() int {
	if q.c == nil {
		return 0
	}
	return q.c.ItemCount()
}
