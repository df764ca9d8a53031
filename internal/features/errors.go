package features

import "fmt"

// MappingError reports a raw value, or a manifest field, that has no encoding.
// A submission that fails with a MappingError must not be scored.
type MappingError struct {
	Field  string
	Value  string
	Reason string
}

func (e *MappingError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("feature %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("feature %q: %s: %q", e.Field, e.Reason, e.Value)
}

func unknownOption(field, value string) *MappingError {
	return &MappingError{Field: field, Value: value, Reason: "value not in option set"}
}
