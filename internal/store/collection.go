// Package store holds the normalized application state, the pure reducer
// that advances it, and the container that applies intents to it strictly
// one at a time.
package store

import (
	"slices"
)

// Collection is a normalized entity set: every entity stored once under its
// id, plus an id slice that fixes the iteration order.
//
// Invariant: IDs is exactly the key set of Entities — no duplicates, no
// dangling ids — and is re-sorted by the owning adapter's comparator on
// every mutation.
type Collection[T any] struct {
	IDs      []int64
	Entities map[int64]T
}

// All returns the entities in collection order.
func (c Collection[T]) All() []T {
	out := make([]T, 0, len(c.IDs))
	for _, id := range c.IDs {
		out = append(out, c.Entities[id])
	}
	return out
}

// Len returns the number of entities in the collection.
func (c Collection[T]) Len() int {
	return len(c.IDs)
}

// adapter bundles the two per-collection decisions: how to read an entity's
// id and how to order two entities. The mutation methods never touch the
// input collection; they build a fresh map and id slice so an old snapshot
// stays valid for whoever is still reading it.
type adapter[T any] struct {
	id   func(T) int64
	less func(a, b T) bool
}

func (a adapter[T]) empty() Collection[T] {
	return Collection[T]{IDs: []int64{}, Entities: map[int64]T{}}
}

func (a adapter[T]) sortedIDs(entities map[int64]T) []int64 {
	ids := make([]int64, 0, len(entities))
	for id := range entities {
		ids = append(ids, id)
	}
	slices.SortStableFunc(ids, func(x, y int64) int {
		switch {
		case a.less(entities[x], entities[y]):
			return -1
		case a.less(entities[y], entities[x]):
			return 1
		default:
			return 0
		}
	})
	return ids
}

// setAll replaces the whole collection with the given entities (full resync,
// not a merge). Later duplicates of an id win.
func (a adapter[T]) setAll(items []T) Collection[T] {
	entities := make(map[int64]T, len(items))
	for _, item := range items {
		entities[a.id(item)] = item
	}
	return Collection[T]{IDs: a.sortedIDs(entities), Entities: entities}
}

// addOne inserts (or replaces) a single entity.
func (a adapter[T]) addOne(c Collection[T], item T) Collection[T] {
	entities := make(map[int64]T, len(c.Entities)+1)
	for id, e := range c.Entities {
		entities[id] = e
	}
	entities[a.id(item)] = item
	return Collection[T]{IDs: a.sortedIDs(entities), Entities: entities}
}

// updateOne replaces the entity with a matching id; a no-op if the id is
// absent.
func (a adapter[T]) updateOne(c Collection[T], item T) Collection[T] {
	id := a.id(item)
	if _, ok := c.Entities[id]; !ok {
		return c
	}
	return a.addOne(c, item)
}

// removeOne drops the entity with the given id; a no-op if absent.
func (a adapter[T]) removeOne(c Collection[T], id int64) Collection[T] {
	return a.removeMany(c, func(item T) bool { return a.id(item) == id })
}

// removeMany drops every entity the predicate matches.
func (a adapter[T]) removeMany(c Collection[T], match func(T) bool) Collection[T] {
	entities := make(map[int64]T, len(c.Entities))
	for id, e := range c.Entities {
		if !match(e) {
			entities[id] = e
		}
	}
	if len(entities) == len(c.Entities) {
		return c
	}
	return Collection[T]{IDs: a.sortedIDs(entities), Entities: entities}
}
