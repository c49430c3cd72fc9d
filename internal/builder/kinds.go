package builder

import "github.com/buildy/tablemaker/internal/grid"

// TSType maps a column kind to the TypeScript primitive the generators
// emit. Total over the seven kinds; anything else is an error rather than
// a silent fall-through to string.
func TSType(kind ColumnKind) (string, error) {
	switch kind {
	case KindNumber:
		return "number", nil
	case KindBoolean:
		return "boolean", nil
	case KindTags:
		return "string[]", nil
	case KindObject:
		return "Record<string, unknown>", nil
	case KindText, KindDate, KindSelect:
		return "string", nil
	}
	return "", grid.Validationf("unknown column kind %q", kind)
}

// DefaultValue returns the zero value a freshly created cell of the given
// kind starts with. Total over the seven kinds.
func DefaultValue(kind ColumnKind) (any, error) {
	switch kind {
	case KindNumber:
		return float64(0), nil
	case KindBoolean:
		return false, nil
	case KindTags:
		return []string{}, nil
	case KindObject:
		return map[string]any{}, nil
	case KindText, KindDate, KindSelect:
		return "", nil
	}
	return nil, grid.Validationf("unknown column kind %q", kind)
}
