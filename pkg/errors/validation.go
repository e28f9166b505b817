package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	maxAxisIDLength = 128
	maxLabelLength  = 256
)

var (
	axisIDPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)
	hexColor      = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{4}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)
	namedColor    = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// ValidateAxisID validates an axis identifier.
//
// Axis IDs are referenced from chart files, DSL expressions and query
// strings, so they are restricted to identifier characters:
//   - No empty IDs
//   - Must start with a letter or underscore
//   - Letters, digits, '_', '.', '-' only
//   - Maximum length of 128 characters
func ValidateAxisID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidAxis, "axis id cannot be empty")
	}
	if len(id) > maxAxisIDLength {
		return New(ErrCodeInvalidAxis, "axis id too long (max %d characters)", maxAxisIDLength)
	}
	if !axisIDPattern.MatchString(id) {
		return New(ErrCodeInvalidAxis, "axis id %q contains invalid characters", id)
	}
	return nil
}

// ValidateLabel validates label text. Empty labels are valid and mean
// "no label".
func ValidateLabel(label string) error {
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label contains invalid control characters")
		}
	}
	return nil
}

// ValidateColor validates a CSS color: a hex triplet or quad (#rgb, #rgba,
// #rrggbb, #rrggbbaa) or a plain color keyword such as "red" or "none".
// An empty string is valid and means "unset".
func ValidateColor(c string) error {
	c = strings.TrimSpace(c)
	if c == "" {
		return nil
	}
	if strings.HasPrefix(c, "#") {
		if !hexColor.MatchString(c) {
			return New(ErrCodeInvalidColor, "invalid hex color: %q", c)
		}
		return nil
	}
	if !namedColor.MatchString(c) {
		return New(ErrCodeInvalidColor, "invalid color: %q", c)
	}
	return nil
}
