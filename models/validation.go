package models

import (
	"strings"
)

// ValidationError lists the form fields that failed local validation.
type ValidationError struct {
	Fields []string `json:"fields"`
}

func (v *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(v.Fields, ", ")
}

func (v *ValidationError) add(field string) {
	v.Fields = append(v.Fields, field)
}

func (v *ValidationError) require(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field)
	}
}

func (v *ValidationError) err() error {
	if len(v.Fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.Fields}
}
