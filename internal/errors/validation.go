package errors

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ValidationBuilder collects field problems found by a Validate method and
// turns them into a single InvalidArgument error. Field names are whatever the
// caller exposes: env var names for config, struct fields for dependencies.
type ValidationBuilder struct {
	fields map[string][]string
}

// NewValidationBuilder creates a new validation builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{fields: make(map[string][]string)}
}

func (vb *ValidationBuilder) add(field, format string, args ...interface{}) *ValidationBuilder {
	vb.fields[field] = append(vb.fields[field], fmt.Sprintf(format, args...))
	return vb
}

// RequiredField adds a required field error
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.add(field, "is required")
}

// InvalidField adds an invalid field error
func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.add(field, "is invalid: %s", reason)
}

// Build returns nil when nothing was recorded. Otherwise the error message
// lists fields in name order and the per-field messages sit under MetaValidation.
func (vb *ValidationBuilder) Build() error {
	if len(vb.fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(vb.fields))
	for field := range vb.fields {
		names = append(names, field)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, field := range names {
		parts[i] = fmt.Sprintf("%s: %s", field, strings.Join(vb.fields[field], ", "))
	}
	return InvalidArgumentf("validation failed: %s", strings.Join(parts, "; ")).
		WithMeta(MetaValidation, vb.fields)
}

// ValidateRequired checks if a string field is non-blank
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateRange checks if a value is within a range
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.add(field, "must be between %d and %d", minValue, maxValue)
	}
}

// ValidateMin checks a lower bound only, as for tool round limits
func ValidateMin(field string, value, minValue int, vb *ValidationBuilder) {
	if value < minValue {
		vb.add(field, "must be at least %d", minValue)
	}
}

// ValidatePositiveDuration checks timeouts and intervals
func ValidatePositiveDuration(field string, value time.Duration, vb *ValidationBuilder) {
	if value <= 0 {
		vb.add(field, "must be positive")
	}
}

// ValidateEnum checks if a value is in a list of allowed values
func ValidateEnum(field, value string, allowed []string, vb *ValidationBuilder) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	vb.add(field, "must be one of: %s", strings.Join(allowed, ", "))
}
