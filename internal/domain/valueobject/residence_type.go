package valueobject

// ResidenceType is an immutable value object for a patient's residence setting.
type ResidenceType struct {
	value string
}

var (
	ResidenceRural = ResidenceType{value: "rural"}
	ResidenceUrban = ResidenceType{value: "urban"}
)

// ResidenceTypeFromString reconstructs a ResidenceType from its string
// representation. Parsing is case-insensitive.
func ResidenceTypeFromString(s string) (ResidenceType, error) {
	switch normalizeCategory(s) {
	case "rural":
		return ResidenceRural, nil
	case "urban":
		return ResidenceUrban, nil
	default:
		return ResidenceType{}, &InvalidCategoryError{Field: "residence_type", Value: s}
	}
}

// String returns the string representation.
func (r ResidenceType) String() string {
	return r.value
}

// IsZero returns true if the ResidenceType has not been set.
func (r ResidenceType) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another ResidenceType.
func (r ResidenceType) Equal(other ResidenceType) bool {
	return r.value == other.value
}
