// Package schemas validates the reports the CLI writes against their JSON Schemas.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-matcher/internal/types"
	schemafiles "github.com/jonathan/resume-matcher/schemas"
)

// ScoreReportSchemaPath is the repository-relative path of the score report schema
const ScoreReportSchemaPath = "schemas/score_report.schema.json"

// ResolveSchemaPath returns the absolute path of relativePath when it exists in
// the working directory or up to two levels above it, or "" when it does not.
// Tests run from package directories, so the repo root is usually one of these.
func ResolveSchemaPath(relativePath string) string {
	for _, dir := range []string{".", "..", filepath.Join("..", "..")} {
		absPath, err := filepath.Abs(filepath.Join(dir, relativePath))
		if err != nil {
			continue
		}
		if _, err := os.Stat(absPath); err == nil {
			return absPath
		}
	}
	return ""
}

// FieldError is one schema violation at a JSON field path
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, fe := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

// SchemaLoadError means the schema or the document could not be parsed,
// as opposed to a document that parsed but did not conform
type SchemaLoadError struct {
	Source string
	Cause  error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Source, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateJSONString validates JSON content against schema content
func ValidateJSONString(schemaContent, jsonContent string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent),
	)
	if err != nil {
		return &SchemaLoadError{Source: "(string schema)", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}

// ValidateValue validates v, marshaled to JSON, against schema content
func ValidateValue(schemaContent string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return ValidateJSONString(schemaContent, string(data))
}

// ReportSchema returns the score report schema. A copy found on disk takes
// precedence over the one compiled into the binary, so it can be edited
// without rebuilding.
func ReportSchema() string {
	if path := ResolveSchemaPath(ScoreReportSchemaPath); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return string(data)
		}
	}
	return schemafiles.ScoreReport
}

// ValidateReport validates a score report against ReportSchema
func ValidateReport(report *types.Report) error {
	return ValidateValue(ReportSchema(), report)
}
