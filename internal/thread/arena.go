// Package thread owns the reply tree of a booking's messages: linking
// messages without ever forming a cycle, deleting whole subtrees, and
// materializing the nested tree at whatever depth the data has.
package thread

import (
	"github.com/gdg-garage/trip-booking-api/internal/store"
)

// Arena is the parent relation of one booking's messages, indexed by id.
type Arena struct {
	parent   map[uint]*uint
	children map[uint][]uint
}

func NewArena(links []store.Link) *Arena {
	a := &Arena{
		parent:   make(map[uint]*uint, len(links)),
		children: make(map[uint][]uint),
	}
	for _, l := range links {
		a.parent[l.ID] = l.ParentMessageID
		if l.ParentMessageID != nil {
			a.children[*l.ParentMessageID] = append(a.children[*l.ParentMessageID], l.ID)
		}
	}
	return a
}

func (a *Arena) Contains(id uint) bool {
	_, ok := a.parent[id]
	return ok
}

// IsAncestor walks upward from message's parent one link at a time and
// reports whether candidate is met before a root. The walk is capped at the
// arena size; a chain longer than that is already cyclic and is reported as
// an ancestor so no new edge is added to it.
func (a *Arena) IsAncestor(candidate, message uint) bool {
	current := a.parent[message]
	for steps := 0; current != nil; steps++ {
		if *current == candidate {
			return true
		}
		if steps > len(a.parent) {
			return true
		}
		current = a.parent[*current]
	}
	return false
}

// WouldCycle reports whether making parent the parent of message closes a loop.
func (a *Arena) WouldCycle(message, parent uint) bool {
	return message == parent || a.IsAncestor(message, parent)
}

// Subtree returns id followed by all of its descendants, breadth first.
func (a *Arena) Subtree(id uint) []uint {
	out := []uint{id}
	for i := 0; i < len(out); i++ {
		out = append(out, a.children[out[i]]...)
	}
	return out
}
