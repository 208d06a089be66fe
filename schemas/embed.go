// Package schemas bundles the JSON Schemas of the reports the CLI writes.
package schemas

import _ "embed"

// ScoreReport is the JSON Schema of a score report
//
//go:embed score_report.schema.json
var ScoreReport string
