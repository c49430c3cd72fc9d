package grid

import (
	"reflect"
	"testing"
)

func sampleGrid() *GridData {
	return &GridData{
		Table: Table{ID: "t1", Name: "users"},
		Columns: []GridColumn{
			{ID: "c1", Key: "name", Header: "Name", Type: "text"},
			{ID: "c2", Key: "age", Header: "Age", Type: "number"},
		},
		Rows: []GridRow{
			{RowID: "r1", Values: map[string]any{"name": "Jane", "age": 30}},
			{RowID: "r2", Values: map[string]any{"name": "Bob"}},
		},
		ColumnKeyToID: map[string]string{"name": "c1", "age": "c2"},
		ColumnIDToKey: map[string]string{"c1": "name", "c2": "age"},
	}
}

func TestApplyCellPatch_ReplacesSingleEntry(t *testing.T) {
	g := sampleGrid()
	out := ApplyCellPatch(g, "r1", "name", "Janet")

	if got := out.Rows[0].Values["name"]; got != "Janet" {
		t.Errorf("patched value = %v, want Janet", got)
	}
	if got := out.Rows[0].Values["age"]; got != 30 {
		t.Errorf("sibling value = %v, want 30", got)
	}
	// The input grid is untouched.
	if got := g.Rows[0].Values["name"]; got != "Jane" {
		t.Errorf("input grid mutated: name = %v", got)
	}
}

func TestApplyCellPatch_SharesUntouchedRows(t *testing.T) {
	g := sampleGrid()
	before := map[string]any{}
	for k, v := range g.Rows[1].Values {
		before[k] = v
	}

	out := ApplyCellPatch(g, "r1", "age", 31)

	if !reflect.DeepEqual(out.Rows[1].Values, before) {
		t.Errorf("untouched row changed: %v", out.Rows[1].Values)
	}
	// Structural sharing: the untouched row's map is the same map.
	if reflect.ValueOf(out.Rows[1].Values).Pointer() != reflect.ValueOf(g.Rows[1].Values).Pointer() {
		t.Error("untouched row's values map was rebuilt")
	}
}

func TestApplyCellPatch_AddsMissingKey(t *testing.T) {
	g := sampleGrid()
	out := ApplyCellPatch(g, "r2", "age", 44)
	if got := out.Rows[1].Values["age"]; got != 44 {
		t.Errorf("added value = %v, want 44", got)
	}
	if _, ok := g.Rows[1].Values["age"]; ok {
		t.Error("input grid gained a key")
	}
}

func TestApplyCellPatch_UnknownRowIsNoop(t *testing.T) {
	g := sampleGrid()
	out := ApplyCellPatch(g, "missing", "name", "X")
	if !reflect.DeepEqual(out.Rows, g.Rows) {
		t.Error("grid changed for unknown row id")
	}
}
