package scenery

import (
	"fmt"
	"sort"
)

// Pads is the level's pad registry. Actors keep PadIDs and resolve them here.
type Pads struct {
	list []*Pad
	byID map[PadID]*Pad
}

// NewPads indexes pads by number. Numbers must be unique.
func NewPads(pads ...*Pad) (*Pads, error) {
	r := &Pads{byID: make(map[PadID]*Pad, len(pads))}
	for _, p := range pads {
		if _, dup := r.byID[p.id]; dup {
			return nil, fmt.Errorf("duplicate pad number %d", p.id)
		}
		r.byID[p.id] = p
		r.list = append(r.list, p)
	}
	sort.Slice(r.list, func(i, j int) bool { return r.list[i].id < r.list[j].id })
	return r, nil
}

// Get returns pad id. Up and unknown numbers return false.
func (r *Pads) Get(id PadID) (*Pad, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// All returns the pads ordered by number.
func (r *Pads) All() []*Pad {
	return r.list
}

// Len returns the number of pads.
func (r *Pads) Len() int {
	return len(r.list)
}
