package tracking

import "fmt"

// Updates is a column -> value mapping that remembers the order in which
// columns were first set. Setting a column again overwrites its value but
// keeps its original position.
type Updates struct {
	order  []Column
	values map[Column]float64
}

func NewUpdates() *Updates {
	return &Updates{values: map[Column]float64{}}
}

func (u *Updates) Set(col Column, value float64) {
	if u.values == nil {
		u.values = map[Column]float64{}
	}
	if _, ok := u.values[col]; !ok {
		u.order = append(u.order, col)
	}
	u.values[col] = value
}

func (u *Updates) Get(col Column) (float64, bool) {
	if u == nil {
		return 0, false
	}
	v, ok := u.values[col]
	return v, ok
}

func (u *Updates) Len() int {
	if u == nil {
		return 0
	}
	return len(u.order)
}

func (u *Updates) Empty() bool { return u.Len() == 0 }

// Columns returns the set columns in insertion order.
func (u *Updates) Columns() []Column {
	if u == nil {
		return nil
	}
	out := make([]Column, len(u.order))
	copy(out, u.order)
	return out
}

// Each visits every column in insertion order.
func (u *Updates) Each(fn func(col Column, value float64)) {
	if u == nil {
		return
	}
	for _, c := range u.order {
		fn(c, u.values[c])
	}
}

// Map returns an unordered copy keyed by column name.
func (u *Updates) Map() map[string]float64 {
	out := make(map[string]float64, u.Len())
	u.Each(func(col Column, value float64) {
		out[string(col)] = value
	})
	return out
}

// Validate rejects columns that are not part of the record schema.
func (u *Updates) Validate() error {
	if u.Empty() {
		return ErrEmptyUpdate
	}
	for _, c := range u.order {
		if !c.Known() {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, string(c))
		}
	}
	return nil
}
