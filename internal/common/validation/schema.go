// Package validation checks inbound process variables against JSON schemas
// before they reach the scoring pipeline.
package validation

import (
	"fmt"
	"regexp"

	"github.com/xeipuuv/gojsonschema"
)

// opportunitySchema describes the shape of a single opportunity record
// arriving from the workflow. Unknown fields are tolerated; type errors and
// missing identifiers are not.
var opportunitySchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"id"},
	"properties": map[string]interface{}{
		"id":        map[string]interface{}{"type": "string", "minLength": 1},
		"companyId": map[string]interface{}{"type": "string"},
		"title":     map[string]interface{}{"type": "string"},
		"minSemester": map[string]interface{}{
			"type":    "integer",
			"minimum": 0,
		},
		"minGpa": map[string]interface{}{
			"type":    []interface{}{"number", "null"},
			"minimum": 0,
		},
		"requiredSkills": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"minExperienceYears": map[string]interface{}{
			"type":    "integer",
			"minimum": 0,
		},
	},
}

// studentProfileSchema describes the student profile variables required for
// compatibility scoring.
var studentProfileSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"id"},
	"properties": map[string]interface{}{
		"id":       map[string]interface{}{"type": "string", "minLength": 1},
		"semester": map[string]interface{}{"type": "integer", "minimum": 0},
		"gpa": map[string]interface{}{
			"type":    "number",
			"minimum": 0,
		},
		"technicalSkills": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"experienceCount": map[string]interface{}{"type": "integer", "minimum": 0},
		"projectCount":    map[string]interface{}{"type": "integer", "minimum": 0},
		"available":       map[string]interface{}{"type": "boolean"},
	},
}

// ValidateOpportunityRecord validates a raw opportunity document.
func ValidateOpportunityRecord(record map[string]interface{}) error {
	return validateAgainst(opportunitySchema, record)
}

// ValidateStudentProfile validates raw student profile variables.
func ValidateStudentProfile(profile map[string]interface{}) error {
	return validateAgainst(studentProfileSchema, profile)
}

func validateAgainst(schema, data map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("data validation failed: %v", errs)
	}

	return nil
}

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	emailPattern := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailPattern.MatchString(email)
}

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	phonePattern := regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	return phonePattern.MatchString(phone)
}
