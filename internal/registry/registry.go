// Package registry keeps the user's polygons, in the order they were drawn.
package registry

import (
	"fmt"
	"iter"

	"github.com/paulmach/orb"

	"polymap/internal/surface"
)

// Record is one named polygon. Records are identified by Handle.
type Record struct {
	Name     string
	Geometry orb.Ring
	Handle   surface.Handle
}

// Registry is an ordered set of records with change subscribers.
// It is not safe for concurrent use; all calls come from the UI loop.
type Registry struct {
	records []Record
	subs    map[int]func()
	nextSub int
}

func New() *Registry {
	return &Registry{subs: map[int]func(){}}
}

// Subscribe registers fn to run after every change. The returned func cancels it.
func (r *Registry) Subscribe(fn func()) (cancel func()) {
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	return func() { delete(r.subs, id) }
}

func (r *Registry) notify() {
	for id := 0; id < r.nextSub; id++ {
		if fn, ok := r.subs[id]; ok {
			fn()
		}
	}
}

// NextName is the name a record added now with no name would get.
func (r *Registry) NextName() string {
	return fmt.Sprintf("Polygon %d", len(r.records)+1)
}

// Add appends a record for h. An empty name becomes NextName().
// A handle that is already tracked is left as is.
func (r *Registry) Add(h surface.Handle, name string, geometry orb.Ring) {
	if r.index(h) >= 0 {
		return
	}
	if name == "" {
		name = r.NextName()
	}
	r.records = append(r.records, Record{Name: name, Geometry: clone(geometry), Handle: h})
	r.notify()
}

// UpdateGeometry replaces the ring of h's record; untracked handles are ignored.
func (r *Registry) UpdateGeometry(h surface.Handle, ring orb.Ring) {
	i := r.index(h)
	if i < 0 {
		return
	}
	r.records[i].Geometry = clone(ring)
	r.notify()
}

// Remove deletes h's record; untracked handles are ignored.
func (r *Registry) Remove(h surface.Handle) {
	i := r.index(h)
	if i < 0 {
		return
	}
	r.records = append(r.records[:i], r.records[i+1:]...)
	r.notify()
}

// Get returns the record for h.
func (r *Registry) Get(h surface.Handle) (Record, bool) {
	i := r.index(h)
	if i < 0 {
		return Record{}, false
	}
	return r.records[i], true
}

func (r *Registry) Len() int { return len(r.records) }

// All yields the records in order. The sequence reads the registry each
// time it is ranged over.
func (r *Registry) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, rec := range r.records {
			if !yield(rec) {
				return
			}
		}
	}
}

func (r *Registry) index(h surface.Handle) int {
	if h == nil {
		return -1
	}
	for i, rec := range r.records {
		if rec.Handle == h {
			return i
		}
	}
	return -1
}

func clone(ring orb.Ring) orb.Ring {
	if ring == nil {
		return nil
	}
	out := make(orb.Ring, len(ring))
	copy(out, ring)
	return out
}
