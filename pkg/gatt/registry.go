package gatt

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/wire"
)

// Registry errors.
var (
	// ErrDuplicateUUID indicates two definitions share a UUID.
	ErrDuplicateUUID = errors.New("gatt: duplicate UUID")

	// ErrDuplicateName indicates two definitions share a name.
	ErrDuplicateName = errors.New("gatt: duplicate name")

	// ErrInvalidDefinition indicates a definition without a name, UUID or decoder.
	ErrInvalidDefinition = errors.New("gatt: invalid definition")
)

// Registry maps UUIDs to characteristic definitions.
//
// A Registry is immutable once built and safe for concurrent use.
type Registry struct {
	byUUID map[UUID]Definition
	byName map[string]Definition
	sorted []Definition
}

// NewRegistry builds a registry from defs.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		byUUID: make(map[UUID]Definition, len(defs)),
		byName: make(map[string]Definition, len(defs)),
	}
	for _, d := range defs {
		if d.Name == "" || d.UUID == (UUID{}) || d.Decode == nil {
			return nil, fmt.Errorf("%w: %q (%s)", ErrInvalidDefinition, d.Name, d.UUID)
		}
		if _, ok := r.byUUID[d.UUID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUUID, d.UUID)
		}
		if _, ok := r.byName[d.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, d.Name)
		}
		r.byUUID[d.UUID] = d
		r.byName[d.Name] = d
		r.sorted = append(r.sorted, d)
	}
	slices.SortFunc(r.sorted, func(a, b Definition) int {
		return a.UUID.Compare(b.UUID)
	})
	return r, nil
}

// Lookup returns the definition registered for u.
func (r *Registry) Lookup(u UUID) (Definition, bool) {
	d, ok := r.byUUID[u]
	return d, ok
}

// LookupName returns the definition registered under name.
func (r *Registry) LookupName(name string) (Definition, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Decode decodes data with the decoder registered for u.
// An unknown UUID yields a decode error matching wire.ErrInvalidTag.
func (r *Registry) Decode(u UUID, data []byte) (Characteristic, error) {
	d, ok := r.byUUID[u]
	if !ok {
		return nil, wire.InvalidTag(u.String())
	}
	return d.Decode(data)
}

// Definitions returns every definition ordered by UUID.
func (r *Registry) Definitions() []Definition {
	return slices.Clone(r.sorted)
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int { return len(r.sorted) }
