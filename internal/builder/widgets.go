package builder

import (
	"fmt"

	"github.com/spf13/cast"
)

// WidgetDef describes the behavior attached to a widget kind: metadata
// validation plus serialization hooks for cell values. Dispatch is a
// closed table over the widget kinds — there is no runtime registration.
type WidgetDef struct {
	Kind  ColumnKind
	Label string

	// ValidateMeta checks a column's open metadata map. Nil means the
	// widget accepts anything.
	ValidateMeta func(meta map[string]any) error

	// Serialize normalizes a cell value for storage; Deserialize is the
	// inverse applied on read. Nil means identity.
	Serialize   func(value any) (any, error)
	Deserialize func(raw any) (any, error)
}

var widgetDefs = map[ColumnKind]WidgetDef{
	KindSelect: {
		Kind:  KindSelect,
		Label: "Select",
		Serialize: func(value any) (any, error) {
			return cast.ToStringE(value)
		},
	},
	KindTags: {
		Kind:  KindTags,
		Label: "Tags",
		Serialize: func(value any) (any, error) {
			if value == nil {
				return []string{}, nil
			}
			return cast.ToStringSliceE(value)
		},
	},
	KindObject: {
		Kind:  KindObject,
		Label: "Object",
		ValidateMeta: func(meta map[string]any) error {
			if schema, ok := meta["schema"]; ok {
				if _, ok := schema.(map[string]any); !ok {
					return fmt.Errorf("object widget meta.schema must be a map")
				}
			}
			return nil
		},
		Serialize: func(value any) (any, error) {
			if value == nil {
				return map[string]any{}, nil
			}
			m, err := cast.ToStringMapE(value)
			if err != nil {
				return nil, fmt.Errorf("object cell value must be a map: %w", err)
			}
			return m, nil
		},
	},
}

// WidgetFor returns the widget definition for kind, if kind is a widget
// kind. Primitive kinds (text, number, boolean, date) have no widget.
func WidgetFor(kind ColumnKind) (WidgetDef, bool) {
	w, ok := widgetDefs[kind]
	return w, ok
}
