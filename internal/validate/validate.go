// Package validate contains the field-presence checks shared by the create
// and update paths of every entity kind.  Each function returns a list of
// human-readable error messages; an empty list means the submission is
// valid.  Validation runs before any external call so that malformed input
// never triggers a network request.
package validate

import "strings"

// Missing reports whether a field value is absent or empty after trimming.
func Missing(v string) bool {
	return strings.TrimSpace(v) == ""
}

// MarkerInput validates a marker submission.  The place text is expected to
// have already been defaulted to the name by the caller when it was left
// blank, so both fields are required here.
func MarkerInput(name, place string) []string {
	var errs []string
	if Missing(name) {
		errs = append(errs, "name is required")
	}
	if Missing(place) {
		errs = append(errs, "place is required")
	}
	return errs
}

// MovieInput validates a movie submission.  The poster is optional.
func MovieInput(title string) []string {
	var errs []string
	if Missing(title) {
		errs = append(errs, "title is required")
	}
	return errs
}

// RoomInput validates a screening room submission.
func RoomInput(name, address string) []string {
	var errs []string
	if Missing(name) {
		errs = append(errs, "name is required")
	}
	if Missing(address) {
		errs = append(errs, "address is required")
	}
	return errs
}
