package selection

import (
	"errors"
	"fmt"

	"github.com/obentoo/vapt/internal/common/apt"
)

// ErrIndexOutOfRange is returned when a row index does not exist
var ErrIndexOutOfRange = errors.New("row index out of range")

// Row is one toggleable package entry of a list
type Row struct {
	Selected         bool
	Name             string
	CandidateVersion string // empty when unknown
	InstalledVersion string // empty when not installed
	Architecture     string
}

// Key identifies a row within a list
type Key struct {
	Name         string
	Architecture string
}

// Key returns the (name, architecture) identity of the row
func (r Row) Key() Key {
	return Key{Name: r.Name, Architecture: r.Architecture}
}

// List is an ordered collection of rows.
// It is not safe for concurrent use; one owner mutates it.
type List struct {
	rows []Row
}

// New returns an empty list
func New() *List {
	return &List{}
}

// AddOrUpdate appends row unless a row with the same name and architecture
// is already present. It reports whether the row was added.
func (l *List) AddOrUpdate(row Row) bool {
	if l.indexOf(row.Key()) >= 0 {
		return false
	}
	l.rows = append(l.rows, row)
	return true
}

// Toggle flips the selected flag of the row at index and returns the new value
func (l *List) Toggle(index int) (bool, error) {
	if err := l.check(index); err != nil {
		return false, err
	}
	l.rows[index].Selected = !l.rows[index].Selected
	return l.rows[index].Selected, nil
}

// Remove deletes the row at index, keeping the order of the others
func (l *List) Remove(index int) error {
	if err := l.check(index); err != nil {
		return err
	}
	l.rows = append(l.rows[:index], l.rows[index+1:]...)
	return nil
}

// RefreshFrom replaces the whole list with one row per entry, each selected
// according to defaultSelected
func (l *List) RefreshFrom(entries []apt.ListEntry, defaultSelected bool) {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{
			Selected:         defaultSelected,
			Name:             e.Name,
			CandidateVersion: e.CandidateVersion,
			InstalledVersion: e.InstalledVersion,
			Architecture:     e.Architecture,
		})
	}
	l.rows = rows
}

// SetAll sets the selected flag of every row
func (l *List) SetAll(selected bool) {
	for i := range l.rows {
		l.rows[i].Selected = selected
	}
}

// Clear removes every row
func (l *List) Clear() {
	l.rows = nil
}

// Rows returns a copy of the rows in display order
func (l *List) Rows() []Row {
	out := make([]Row, len(l.rows))
	copy(out, l.rows)
	return out
}

// Row returns the row at index
func (l *List) Row(index int) (Row, error) {
	if err := l.check(index); err != nil {
		return Row{}, err
	}
	return l.rows[index], nil
}

// Selected returns the selected rows in display order
func (l *List) Selected() []Row {
	var out []Row
	for _, r := range l.rows {
		if r.Selected {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of rows
func (l *List) Len() int {
	return len(l.rows)
}

func (l *List) indexOf(key Key) int {
	for i, r := range l.rows {
		if r.Key() == key {
			return i
		}
	}
	return -1
}

func (l *List) check(index int) error {
	if index < 0 || index >= len(l.rows) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(l.rows))
	}
	return nil
}

// RowsFromPolicy flattens a policy query into one row per architecture.
// A package without a candidate version yields no rows.
func RowsFromPolicy(name string, policy apt.Policy, selected bool) []Row {
	if policy.Candidate == "" {
		return nil
	}

	rows := make([]Row, 0, len(policy.Architectures))
	for _, arch := range policy.Architectures {
		rows = append(rows, Row{
			Selected:         selected,
			Name:             name,
			CandidateVersion: policy.Candidate,
			InstalledVersion: policy.Installed,
			Architecture:     arch,
		})
	}
	return rows
}
