package valueobject

import "strings"

// WorkType is an immutable value object for a patient's employment category.
type WorkType struct {
	value string
}

var (
	WorkTypeGovernment   = WorkType{value: "government"}
	WorkTypePrivate      = WorkType{value: "private"}
	WorkTypeSelfEmployed = WorkType{value: "self_employed"}
	WorkTypeChildren     = WorkType{value: "children"}
	WorkTypeNeverWorked  = WorkType{value: "never_worked"}
)

// WorkTypeFromString reconstructs a WorkType from its string representation.
// Parsing is case-insensitive and accepts the labels used by the intake form
// ("Govt Job", "Self-employed") alongside the canonical names.
func WorkTypeFromString(s string) (WorkType, error) {
	switch normalizeCategory(s) {
	case "government", "govt_job":
		return WorkTypeGovernment, nil
	case "private":
		return WorkTypePrivate, nil
	case "self_employed":
		return WorkTypeSelfEmployed, nil
	case "children":
		return WorkTypeChildren, nil
	case "never_worked":
		return WorkTypeNeverWorked, nil
	default:
		return WorkType{}, &InvalidCategoryError{Field: "work_type", Value: s}
	}
}

// String returns the string representation.
func (w WorkType) String() string {
	return w.value
}

// IsZero returns true if the WorkType has not been set.
func (w WorkType) IsZero() bool {
	return w.value == ""
}

// Equal checks equality with another WorkType.
func (w WorkType) Equal(other WorkType) bool {
	return w.value == other.value
}

// normalizeCategory lowercases a label and folds spaces and hyphens to
// underscores so form labels and canonical names compare equal.
func normalizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
