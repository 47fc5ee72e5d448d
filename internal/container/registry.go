package container

import (
	"github.com/mvoloskov/loom/internal/typekey"
)

// Registry is the immutable mapping from keys to bindings, finalized by a
// Builder. Exact bindings keep their registration order for diagnostics and
// for the eager pass; subtype-factory entries form a separate ordered list
// consulted only when no exact binding matches.
type Registry struct {
	exact    map[typekey.Key]*Binding
	order    []typekey.Key
	subtypes []*subtypeEntry
}

func (r *Registry) Lookup(key typekey.Key) (*Binding, bool) {
	b, ok := r.exact[key]
	return b, ok
}

func (r *Registry) Size() int {
	return len(r.exact)
}

// Entry pairs a key with its binding, in registration order.
type Entry struct {
	Key     typekey.Key
	Binding *Binding
}

func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, len(r.order))
	for _, key := range r.order {
		entries = append(entries, Entry{Key: key, Binding: r.exact[key]})
	}
	return entries
}

func (r *Registry) SubtypeBounds() []typekey.Type {
	bounds := make([]typekey.Type, 0, len(r.subtypes))
	for _, e := range r.subtypes {
		bounds = append(bounds, e.bound)
	}
	return bounds
}

// Builder accumulates declarations and composition inputs into a Registry.
type Builder struct {
	exact     map[typekey.Key]*Binding
	order     []typekey.Key
	inherited map[typekey.Key]bool

	subtypes          []*subtypeEntry
	inheritedSubtypes []*subtypeEntry
}

func NewBuilder() *Builder {
	return &Builder{
		exact:     make(map[typekey.Key]*Binding),
		inherited: make(map[typekey.Key]bool),
	}
}

// Bind inserts a binding at key. An occupied key is replaced when the
// declaration carries the override flag or when the slot was inherited from
// an extended parent; otherwise the declaration fails with a ConflictError.
// Replacement keeps the key's original position in the order journal.
func (b *Builder) Bind(key typekey.Key, binding *Binding, override bool) error {
	_, occupied := b.exact[key]
	if occupied && !override && !b.inherited[key] {
		return &ConflictError{Key: key}
	}

	if !occupied {
		b.order = append(b.order, key)
	}
	b.exact[key] = binding
	delete(b.inherited, key)
	return nil
}

func (b *Builder) BindSubtype(bound typekey.Type, dispatch DispatchFunc) {
	b.subtypes = append(b.subtypes, &subtypeEntry{bound: bound, dispatch: dispatch})
}

// Absorb merges an already-built parent registry into the builder, for
// container extension. Parent entries land in unoccupied slots marked
// inherited, so later declarations shadow them silently. A parent entry
// hitting a slot the builder already declared requires force, otherwise the
// composition fails. Parent subtype entries are consulted after the
// builder's own (child-first).
func (b *Builder) Absorb(parent *Registry, force bool) error {
	for _, key := range parent.order {
		_, occupied := b.exact[key]
		if occupied {
			if !force {
				return &ConflictError{Key: key}
			}
			b.exact[key] = parent.exact[key]
			continue
		}
		b.exact[key] = parent.exact[key]
		b.order = append(b.order, key)
		b.inherited[key] = true
	}

	b.inheritedSubtypes = append(b.inheritedSubtypes, parent.subtypes...)
	return nil
}

func (b *Builder) Build() *Registry {
	subtypes := make([]*subtypeEntry, 0, len(b.subtypes)+len(b.inheritedSubtypes))
	subtypes = append(subtypes, b.subtypes...)
	subtypes = append(subtypes, b.inheritedSubtypes...)

	return &Registry{
		exact:    b.exact,
		order:    b.order,
		subtypes: subtypes,
	}
}
