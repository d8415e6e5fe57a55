package selection

import (
	"errors"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/obentoo/vapt/internal/common/apt"
)

// genRow generates rows drawn from a small name/arch space so duplicates occur
func genRow() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("bash", "curl", "libcurl4", "vim"),
		gen.OneConstOf("amd64", "i386", "all"),
		gen.Bool(),
	).Map(func(values []interface{}) Row {
		return Row{
			Name:             values[0].(string),
			Architecture:     values[1].(string),
			Selected:         values[2].(bool),
			CandidateVersion: "1.0",
		}
	})
}

// TestAddOrUpdateKeepsRowsUnique tests that no two rows share name and
// architecture whatever the insertion sequence
func TestAddOrUpdateKeepsRowsUnique(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("rows are unique on (name, architecture)", prop.ForAll(
		func(rows []Row) bool {
			l := New()
			for _, r := range rows {
				l.AddOrUpdate(r)
			}

			seen := make(map[Key]bool)
			for _, r := range l.Rows() {
				if seen[r.Key()] {
					return false
				}
				seen[r.Key()] = true
			}
			return true
		},
		gen.SliceOf(genRow()),
	))

	properties.Property("toggling never reorders rows", prop.ForAll(
		func(rows []Row, toggles []int) bool {
			l := New()
			for _, r := range rows {
				l.AddOrUpdate(r)
			}
			before := keys(l.Rows())

			for _, i := range toggles {
				if l.Len() == 0 {
					break
				}
				if _, err := l.Toggle(i % l.Len()); err != nil {
					return false
				}
			}

			return reflect.DeepEqual(before, keys(l.Rows()))
		},
		gen.SliceOf(genRow()),
		gen.SliceOf(gen.IntRange(0, 50)),
	))

	properties.TestingRun(t)
}

func keys(rows []Row) []Key {
	out := make([]Key, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Key())
	}
	return out
}

func TestAddOrUpdate(t *testing.T) {
	l := New()

	if !l.AddOrUpdate(Row{Name: "bash", Architecture: "amd64", Selected: true}) {
		t.Error("expected first insert to succeed")
	}
	if l.AddOrUpdate(Row{Name: "bash", Architecture: "amd64", Selected: false}) {
		t.Error("expected duplicate insert to be rejected")
	}
	if !l.AddOrUpdate(Row{Name: "bash", Architecture: "i386"}) {
		t.Error("expected other architecture to be accepted")
	}

	if l.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", l.Len())
	}
	row, err := l.Row(0)
	if err != nil {
		t.Fatalf("Row(0) failed: %v", err)
	}
	if !row.Selected {
		t.Error("duplicate insert must not overwrite the existing row")
	}
}

func TestToggleAndRemove(t *testing.T) {
	l := New()
	l.AddOrUpdate(Row{Name: "a", Architecture: "amd64", Selected: true})
	l.AddOrUpdate(Row{Name: "b", Architecture: "amd64", Selected: true})
	l.AddOrUpdate(Row{Name: "c", Architecture: "amd64", Selected: true})

	selected, err := l.Toggle(1)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if selected {
		t.Error("expected row to be deselected")
	}

	got := l.Selected()
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Errorf("unexpected selection: %+v", got)
	}

	if err := l.Remove(0); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if names := keys(l.Rows()); names[0].Name != "b" || names[1].Name != "c" {
		t.Errorf("unexpected order after remove: %v", names)
	}

	if _, err := l.Toggle(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := l.Remove(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestRefreshFrom(t *testing.T) {
	l := New()
	l.AddOrUpdate(Row{Name: "stale", Architecture: "amd64"})

	entries := []apt.ListEntry{
		{Name: "bash", CandidateVersion: "5.1-6", InstalledVersion: "5.0-1", Architecture: "amd64"},
		{Name: "curl", CandidateVersion: "7.88", InstalledVersion: "7.74", Architecture: "amd64"},
	}

	tests := []struct {
		name            string
		defaultSelected bool
	}{
		{"selected by default", true},
		{"unselected by default", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l.RefreshFrom(entries, tt.defaultSelected)

			rows := l.Rows()
			if len(rows) != 2 {
				t.Fatalf("expected 2 rows, got %d", len(rows))
			}
			for _, r := range rows {
				if r.Selected != tt.defaultSelected {
					t.Errorf("row %s selected = %v", r.Name, r.Selected)
				}
			}
			if rows[0].InstalledVersion != "5.0-1" || rows[0].CandidateVersion != "5.1-6" {
				t.Errorf("versions not carried: %+v", rows[0])
			}
		})
	}
}

func TestSetAllAndClear(t *testing.T) {
	l := New()
	l.AddOrUpdate(Row{Name: "a", Architecture: "amd64"})
	l.AddOrUpdate(Row{Name: "b", Architecture: "amd64"})

	l.SetAll(true)
	if len(l.Selected()) != 2 {
		t.Error("expected every row selected")
	}

	l.Clear()
	if l.Len() != 0 || len(l.Selected()) != 0 {
		t.Error("expected empty list after Clear")
	}
}

func TestRowsReturnsCopy(t *testing.T) {
	l := New()
	l.AddOrUpdate(Row{Name: "a", Architecture: "amd64"})

	rows := l.Rows()
	rows[0].Selected = true

	if len(l.Selected()) != 0 {
		t.Error("mutating the returned slice must not change the list")
	}
}

func TestRowsFromPolicy(t *testing.T) {
	policy := apt.Policy{
		Name:          "libc6",
		Installed:     "2.36-9",
		Candidate:     "2.36-9+deb12u4",
		Architectures: []string{"amd64", "i386"},
	}

	rows := RowsFromPolicy("libc6", policy, true)
	expected := []Row{
		{Selected: true, Name: "libc6", CandidateVersion: "2.36-9+deb12u4", InstalledVersion: "2.36-9", Architecture: "amd64"},
		{Selected: true, Name: "libc6", CandidateVersion: "2.36-9+deb12u4", InstalledVersion: "2.36-9", Architecture: "i386"},
	}
	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("RowsFromPolicy() = %+v, expected %+v", rows, expected)
	}

	if rows := RowsFromPolicy("ghost", apt.Policy{Architectures: []string{"amd64"}}, true); len(rows) != 0 {
		t.Errorf("expected no rows without a candidate, got %+v", rows)
	}
}
