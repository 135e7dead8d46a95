// SPDX-License-Identifier: MIT

package pipedata

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pipenet/units"
)

// Sentinel errors.
var (
	ErrUnknownSize     = errors.New("pipedata: unknown nominal size")
	ErrUnknownSchedule = errors.New("pipedata: unknown schedule")
	ErrInvalidTable    = errors.New("pipedata: invalid table")
)

// Lookup resolves the internal diameter of a nominal size and schedule.
type Lookup interface {
	InternalDiameter(nominal, schedule string) (units.Quantity, error)
}

//go:embed schedules.yaml
var schedulesYAML []byte

// tableFile is the on-disk layout.
type tableFile struct {
	Unit  string     `yaml:"unit"`
	Sizes []sizeFile `yaml:"sizes"`
}

type sizeFile struct {
	Nominal string             `yaml:"nominal"`
	OD      float64            `yaml:"od"`
	Wall    map[string]float64 `yaml:"wall"`
}

// size is one decoded row.
type size struct {
	nominal string
	od      float64
	wall    map[string]float64 // keyed by normalized schedule
}

// Table is an immutable size × schedule table. Safe for concurrent use.
type Table struct {
	unit  units.Unit
	rows  map[float64]*size // keyed by numeric nominal size
	order []string
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded ASME B36.10M table.
// It panics if the embedded file is corrupt, which is a build defect.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(schedulesYAML)
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})

	return defaultTable
}

// Load decodes a table from r.
func Load(r io.Reader) (*Table, error) {
	var tf tableFile
	if err := yaml.NewDecoder(r).Decode(&tf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	return build(tf)
}

// Parse decodes a table from data.
func Parse(data []byte) (*Table, error) { return Load(bytes.NewReader(data)) }

// build validates the decoded file and indexes it.
func build(tf tableFile) (*Table, error) {
	u, err := units.Parse(tf.Unit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}
	if !u.Compatible(units.Metre) {
		return nil, fmt.Errorf("%w: %w: table unit %s is not a length", ErrInvalidTable, units.ErrDimensionality, u)
	}
	if len(tf.Sizes) == 0 {
		return nil, fmt.Errorf("%w: no sizes", ErrInvalidTable)
	}

	t := &Table{unit: u, rows: make(map[float64]*size, len(tf.Sizes))}
	for _, sf := range tf.Sizes {
		key, err := nominalKey(sf.Nominal)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
		}
		if _, dup := t.rows[key]; dup {
			return nil, fmt.Errorf("%w: duplicate size %q", ErrInvalidTable, sf.Nominal)
		}
		if !(sf.OD > 0) {
			return nil, fmt.Errorf("%w: size %q: od must be > 0", ErrInvalidTable, sf.Nominal)
		}
		row := &size{nominal: sf.Nominal, od: sf.OD, wall: make(map[string]float64, len(sf.Wall))}
		for sched, w := range sf.Wall {
			if !(w > 0) || 2*w >= sf.OD {
				return nil, fmt.Errorf("%w: size %q schedule %q: wall %g", ErrInvalidTable, sf.Nominal, sched, w)
			}
			row.wall[scheduleKey(sched)] = w
		}
		t.rows[key] = row
		t.order = append(t.order, sf.Nominal)
	}

	return t, nil
}

// InternalDiameter returns od − 2·wall in the table's unit.
//
// Errors:
//   - ErrUnknownSize, ErrUnknownSchedule.
func (t *Table) InternalDiameter(nominal, schedule string) (units.Quantity, error) {
	row, err := t.row(nominal)
	if err != nil {
		return units.Quantity{}, err
	}
	w, ok := row.wall[scheduleKey(schedule)]
	if !ok {
		return units.Quantity{}, fmt.Errorf("%w: %q for size %q", ErrUnknownSchedule, schedule, row.nominal)
	}

	return units.New(row.od-2*w, t.unit), nil
}

// OutsideDiameter returns the outside diameter of a nominal size.
func (t *Table) OutsideDiameter(nominal string) (units.Quantity, error) {
	row, err := t.row(nominal)
	if err != nil {
		return units.Quantity{}, err
	}

	return units.New(row.od, t.unit), nil
}

// Sizes lists nominal sizes in table order.
func (t *Table) Sizes() []string { return append([]string(nil), t.order...) }

// Schedules lists the normalized schedules available for a size, sorted.
func (t *Table) Schedules(nominal string) ([]string, error) {
	row, err := t.row(nominal)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(row.wall))
	for k := range row.wall {
		out = append(out, k)
	}
	sort.Strings(out)

	return out, nil
}

func (t *Table) row(nominal string) (*size, error) {
	key, err := nominalKey(nominal)
	if err != nil {
		return nil, err
	}
	row, ok := t.rows[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSize, nominal)
	}

	return row, nil
}

// nominalKey turns "1-1/2", "1 1/2", "1.5" and "3/4" into a number,
// rounded so that equal sizes written differently share a key.
func nominalKey(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "\""))
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrUnknownSize)
	}

	var whole, frac string
	switch {
	case strings.Contains(s, "/"):
		if i := strings.IndexAny(s, "- "); i > 0 {
			whole, frac = s[:i], strings.TrimSpace(s[i+1:])
		} else {
			frac = s
		}
	default:
		whole = s
	}

	v := 0.0
	if whole != "" {
		w, err := strconv.ParseFloat(whole, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnknownSize, s)
		}
		v = w
	}
	if frac != "" {
		num, den, ok := strings.Cut(frac, "/")
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if !ok || errN != nil || errD != nil || d == 0 {
			return 0, fmt.Errorf("%w: %q", ErrUnknownSize, s)
		}
		v += n / d
	}
	if !(v > 0) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSize, s)
	}

	return math.Round(v*1e6) / 1e6, nil
}

// scheduleKey normalizes "Sch 40", "schedule40", "std" to "40", "40", "STD".
func scheduleKey(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, p := range []string{"SCHEDULE", "SCH.", "SCH"} {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(s[len(p):])
			break
		}
	}

	return s
}
