package valueobject

import "strings"

// Gender is an immutable value object for a patient's recorded gender.
type Gender struct {
	value string
}

var (
	GenderFemale = Gender{value: "female"}
	GenderMale   = Gender{value: "male"}
	GenderOther  = Gender{value: "other"}
)

// GenderFromString reconstructs a Gender from its string representation.
// Parsing is case-insensitive.
func GenderFromString(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "female":
		return GenderFemale, nil
	case "male":
		return GenderMale, nil
	case "other":
		return GenderOther, nil
	default:
		return Gender{}, &InvalidCategoryError{Field: "gender", Value: s}
	}
}

// String returns the string representation.
func (g Gender) String() string {
	return g.value
}

// IsZero returns true if the Gender has not been set.
func (g Gender) IsZero() bool {
	return g.value == ""
}

// Equal checks equality with another Gender.
func (g Gender) Equal(other Gender) bool {
	return g.value == other.value
}
