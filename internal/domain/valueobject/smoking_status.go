package valueobject

// SmokingStatus is an immutable value object for a patient's smoking history.
type SmokingStatus struct {
	value string
}

var (
	SmokingUnknown = SmokingStatus{value: "unknown"}
	SmokingFormer  = SmokingStatus{value: "former"}
	SmokingNever   = SmokingStatus{value: "never"}
	SmokingCurrent = SmokingStatus{value: "current"}
)

// SmokingStatusFromString reconstructs a SmokingStatus from its string
// representation. Parsing is case-insensitive and accepts the intake form
// labels ("Formerly Smoked", "Never Smoked", "Smokes") alongside the
// canonical names.
func SmokingStatusFromString(s string) (SmokingStatus, error) {
	switch normalizeCategory(s) {
	case "unknown":
		return SmokingUnknown, nil
	case "former", "formerly_smoked":
		return SmokingFormer, nil
	case "never", "never_smoked":
		return SmokingNever, nil
	case "current", "smokes":
		return SmokingCurrent, nil
	default:
		return SmokingStatus{}, &InvalidCategoryError{Field: "smoking_status", Value: s}
	}
}

// String returns the string representation.
func (s SmokingStatus) String() string {
	return s.value
}

// IsCurrent reports whether the patient currently smokes.
func (s SmokingStatus) IsCurrent() bool {
	return s.value == "current"
}

// IsZero returns true if the SmokingStatus has not been set.
func (s SmokingStatus) IsZero() bool {
	return s.value == ""
}

// Equal checks equality with another SmokingStatus.
func (s SmokingStatus) Equal(other SmokingStatus) bool {
	return s.value == other.value
}
