package result

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is the JSON Schema (draft 2020-12) for the analyzer payload.
// It type-checks what is present rather than demanding completeness:
// sparse payloads are legal input, so nothing is required.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://clauselens.dev/schemas/analysis.json",
  "title": "Contract Analysis Result",
  "type": "object",
  "properties": {
    "success": {"type": "boolean"},
    "id": {"type": "string"},
    "document_name": {"type": "string"},
    "language": {"type": "string"},
    "risk_score": {"type": "number"},
    "compliance_score": {"type": "number"},
    "summary": {"type": "string"},
    "created_at": {"type": "string"},
    "clause_analysis": {
      "type": "object",
      "properties": {
        "clauses": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "id": {"type": "integer"},
              "text": {"type": "string"},
              "section_number": {"type": "string"}
            }
          }
        },
        "risks": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "clause_id": {"type": "integer"},
              "risk_type": {"type": "string"},
              "severity": {"enum": ["high", "medium", "low"]},
              "description": {"type": "string"},
              "matched_text": {"type": "string"},
              "clause_text": {"type": "string"},
              "risk_score": {"type": "number"},
              "detection_method": {"type": "string"}
            }
          }
        },
        "compliance": {
          "type": "object",
          "properties": {
            "compliance_score": {"type": "number"},
            "found_clauses": {"type": "array", "items": {"type": "string"}},
            "missing_clauses": {
              "type": "array",
              "items": {
                "type": "object",
                "properties": {
                  "clause_type": {"type": "string"},
                  "description": {"type": "string"},
                  "importance": {"type": "string"}
                }
              }
            },
            "details": {
              "type": "array",
              "items": {
                "type": "object",
                "properties": {
                  "clause_type": {"type": "string"},
                  "description": {"type": "string"},
                  "weight": {"type": "number"},
                  "found": {"type": "boolean"},
                  "matched_keyword": {"type": "string"},
                  "quality_score": {"type": "number"},
                  "quality_checks": {
                    "type": "array",
                    "items": {
                      "type": "object",
                      "properties": {
                        "name": {"type": "string"},
                        "label": {"type": "string"},
                        "passed": {"type": "boolean"}
                      }
                    }
                  }
                }
              }
            },
            "total_checked": {"type": "integer"},
            "total_found": {"type": "integer"},
            "total_missing": {"type": "integer"}
          }
        },
        "responsibility": {
          "type": "object",
          "properties": {
            "passive_voice": {"$ref": "#/$defs/issueList"},
            "vague_terms": {"$ref": "#/$defs/issueList"},
            "missing_subjects": {"$ref": "#/$defs/issueList"},
            "ambiguity_score": {"type": "number"},
            "total_issues": {"type": "integer"}
          }
        }
      }
    }
  },
  "$defs": {
    "issueList": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "clause_id": {"type": "integer"},
          "matched_text": {"type": "string"},
          "term": {"type": "string"},
          "context": {"type": "string"},
          "full_text": {"type": "string"},
          "issue": {"type": "string"},
          "suggestion": {"type": "string"},
          "confidence": {"type": "number"}
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schemaPtr  *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(Schema))
		if err != nil {
			schemaErr = fmt.Errorf("parsing schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("analysis.json", doc); err != nil {
			schemaErr = fmt.Errorf("registering schema: %w", err)
			return
		}
		schemaPtr, schemaErr = compiler.Compile("analysis.json")
	})
	return schemaPtr, schemaErr
}

// Validate checks raw payload bytes against Schema. Intended as an
// advisory pre-flight; the decode path never requires it.
func Validate(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing analysis: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("validating analysis: %w", err)
	}
	return nil
}
