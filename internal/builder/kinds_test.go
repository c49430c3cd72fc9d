package builder

import (
	"reflect"
	"testing"
)

func TestTSType_AllKinds(t *testing.T) {
	want := map[ColumnKind]string{
		KindText:    "string",
		KindNumber:  "number",
		KindBoolean: "boolean",
		KindDate:    "string",
		KindSelect:  "string",
		KindTags:    "string[]",
		KindObject:  "Record<string, unknown>",
	}
	for _, kind := range Kinds {
		got, err := TSType(kind)
		if err != nil {
			t.Fatalf("TSType(%s): %v", kind, err)
		}
		if got != want[kind] {
			t.Errorf("TSType(%s) = %q, want %q", kind, got, want[kind])
		}
	}
}

func TestTSType_UnknownKind(t *testing.T) {
	if _, err := TSType("sheet"); err == nil {
		t.Fatal("TSType accepted an unknown kind")
	}
}

func TestDefaultValue_Total(t *testing.T) {
	want := map[ColumnKind]any{
		KindText:    "",
		KindNumber:  float64(0),
		KindBoolean: false,
		KindDate:    "",
		KindSelect:  "",
		KindTags:    []string{},
		KindObject:  map[string]any{},
	}
	for _, kind := range Kinds {
		got, err := DefaultValue(kind)
		if err != nil {
			t.Fatalf("DefaultValue(%s): %v", kind, err)
		}
		if !reflect.DeepEqual(got, want[kind]) {
			t.Errorf("DefaultValue(%s) = %#v, want %#v", kind, got, want[kind])
		}
	}
}

func TestDefaultValue_UnknownKind(t *testing.T) {
	if _, err := DefaultValue("json"); err == nil {
		t.Fatal("DefaultValue accepted an unknown kind")
	}
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds {
		got, err := ParseKind(string(kind))
		if err != nil {
			t.Fatalf("ParseKind(%s): %v", kind, err)
		}
		if got != kind {
			t.Errorf("ParseKind(%s) = %s", kind, got)
		}
	}
	if _, err := ParseKind("decimal"); err == nil {
		t.Error("ParseKind accepted an unknown kind")
	}
}
