// SPDX-License-Identifier: MIT

package element

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/katalvlaran/pipenet/friction"
	"github.com/katalvlaran/pipenet/pipedata"
	"github.com/katalvlaran/pipenet/units"
)

// Built-in kinds.
const (
	KindPipe    = "pipe"
	KindFitting = "fitting"
)

// Params is the union of construction parameters across kinds. Each
// constructor reads the fields it needs.
type Params struct {
	Length    units.Quantity
	Nominal   string
	Schedule  string
	Diameter  units.Quantity // explicit internal diameter; overrides Nominal/Schedule
	Roughness units.Quantity // zero → DefaultRoughness
	K         float64

	// Correlation is handed to pipes; the zero value uses friction defaults.
	Correlation friction.Correlation
}

// Constructor builds an element from params.
type Constructor func(p Params, lookup pipedata.Lookup) (Element, error)

var (
	registryMu   sync.RWMutex
	constructors = map[string]Constructor{
		KindPipe:    newPipe,
		KindFitting: newFitting,
	}
)

// Register adds or replaces the constructor for kind.
// It panics on an empty kind or nil constructor.
func Register(kind string, c Constructor) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" || c == nil {
		panic("element: Register: kind and constructor are required")
	}
	registryMu.Lock()
	defer registryMu.Unlock()

	constructors[kind] = c
}

// New builds an element of the named kind (case-insensitive).
//
// Errors:
//   - ErrUnknownKind if nothing is registered under kind.
//   - ErrInvalidParams, pipedata and units errors from the constructor.
func New(kind string, p Params, lookup pipedata.Lookup) (Element, error) {
	registryMu.RLock()
	c, ok := constructors[strings.ToLower(strings.TrimSpace(kind))]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	return c(p, lookup)
}

// Kinds lists registered kinds, sorted.
func Kinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]string, 0, len(constructors))
	for k := range constructors {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

func newPipe(p Params, lookup pipedata.Lookup) (Element, error) {
	var pipe *Pipe
	if p.Diameter.IsSet() {
		pipe = &Pipe{Diameter: p.Diameter, Length: p.Length, Roughness: DefaultRoughness}
		if err := pipe.Validate(); err != nil {
			return nil, err
		}
	} else {
		if p.Nominal == "" || p.Schedule == "" {
			return nil, fmt.Errorf("%w: pipe needs a diameter or a nominal size and schedule", ErrInvalidParams)
		}
		var err error
		if pipe, err = NewPipe(p.Length, p.Nominal, p.Schedule, lookup); err != nil {
			return nil, err
		}
	}
	if p.Roughness.IsSet() {
		pipe.Roughness = p.Roughness
		if err := pipe.Validate(); err != nil {
			return nil, err
		}
	}
	pipe.Correlation = p.Correlation

	return pipe, nil
}

func newFitting(p Params, lookup pipedata.Lookup) (Element, error) {
	d := p.Diameter
	if !d.IsSet() {
		if p.Nominal == "" || p.Schedule == "" {
			return nil, fmt.Errorf("%w: fitting needs a diameter or a nominal size and schedule", ErrInvalidParams)
		}
		if lookup == nil {
			lookup = pipedata.Default()
		}
		var err error
		if d, err = lookup.InternalDiameter(p.Nominal, p.Schedule); err != nil {
			return nil, fmt.Errorf("element: fitting %s sch %s: %w", p.Nominal, p.Schedule, err)
		}
	}

	return NewFitting(p.K, d)
}
