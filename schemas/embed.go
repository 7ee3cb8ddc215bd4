// Package schemas holds the JSON Schemas for artifacts the analyzer writes.
package schemas

import _ "embed"

// AnalysisReport is the JSON Schema for a serialized analysis report.
//
//go:embed analysis_report.schema.json
var AnalysisReport string
