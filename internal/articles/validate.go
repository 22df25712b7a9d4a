package articles

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"newsdesk/internal/models"
)

// requiredFields lists the mandatory article fields in reporting order.
var requiredFields = []string{"title", "content", "author", "category"}

// createSchemaJSON describes a valid create payload. Required strings must
// contain at least one non-whitespace character.
const createSchemaJSON = `{
	"type": "object",
	"required": ["title", "content", "author", "category"],
	"properties": {
		"title":    {"type": "string", "pattern": "\\S"},
		"content":  {"type": "string", "pattern": "\\S"},
		"author":   {"type": "string", "pattern": "\\S"},
		"category": {"type": "string", "pattern": "\\S"},
		"featured": {"type": "boolean"},
		"image":    {"type": "string"}
	}
}`

var createSchema = mustSchema(createSchemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile article schema: %v", err))
	}
	return s
}

// validateCreate checks a create payload against createSchema and reports
// every missing or blank required field.
func validateCreate(in CreateInput) error {
	result, err := createSchema.Validate(gojsonschema.NewGoLoader(in))
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("Invalid article: %v", err)}
	}
	if result.Valid() {
		return nil
	}

	bad := make(map[string]bool)
	var other []string
	for _, re := range result.Errors() {
		// Missing keys are reported on the root with the key in details.
		field := re.Field()
		if field == "(root)" {
			if p, ok := re.Details()["property"].(string); ok {
				field = p
			}
		}
		if isRequired(field) {
			bad[field] = true
			continue
		}
		other = append(other, re.String())
	}

	if len(bad) > 0 {
		return missingFields(orderedFields(bad))
	}
	return &ValidationError{Message: "Invalid article: " + strings.Join(other, "; ")}
}

// validatePatch rejects patches that would blank a required field.
func validatePatch(p models.ArticlePatch) error {
	bad := make(map[string]bool)
	for name, v := range map[string]models.Optional[string]{
		"title": p.Title, "content": p.Content, "author": p.Author, "category": p.Category,
	} {
		if v.Set && strings.TrimSpace(v.Value) == "" {
			bad[name] = true
		}
	}
	if len(bad) > 0 {
		return missingFields(orderedFields(bad))
	}
	return nil
}

func isRequired(field string) bool {
	for _, f := range requiredFields {
		if f == field {
			return true
		}
	}
	return false
}

func orderedFields(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for _, f := range requiredFields {
		if set[f] {
			out = append(out, f)
		}
	}
	return out
}
