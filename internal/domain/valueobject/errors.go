package valueobject

import "fmt"

// InvalidCategoryError reports a categorical field whose value is outside the
// canonical category set. The offending field and value are carried so callers
// can surface them verbatim.
type InvalidCategoryError struct {
	Field string
	Value string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid value %q for field %q", e.Value, e.Field)
}

// MissingRequiredFieldError reports a required input field that was absent.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}
