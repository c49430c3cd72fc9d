package codegen

import (
	"strings"
	"unicode"
)

// Pascal converts a table name to a type name: split on underscore,
// hyphen and any other non-word boundary, uppercase each segment's first
// letter, concatenate. "user_profiles" → "UserProfiles".
func Pascal(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RowTypeName is the generated row type for a table: Pascal(name) + "Row".
func RowTypeName(tableName string) string {
	return Pascal(tableName) + "Row"
}
