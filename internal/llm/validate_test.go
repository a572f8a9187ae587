package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"name":"Alice","age":10,"grade":"A"}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"name":"Bob","age":8}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"name":"Charlie"}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var violation *ErrSchemaViolation
	if !errors.As(err, &violation) {
		t.Fatalf("expected ErrSchemaViolation, got: %T", err)
	}
	if string(violation.Content) != string(raw) {
		t.Fatal("violation should carry the offending payload")
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"name":"Dave","age":"ten"}`)
	err := validateResponse(testSchema(), raw)
	var violation *ErrSchemaViolation
	if !errors.As(err, &violation) {
		t.Fatalf("expected ErrSchemaViolation, got: %T (%v)", err, err)
	}
}

func TestValidateResponse_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"name":"Eve","age":9,"grade":"D"}`)
	err := validateResponse(testSchema(), raw)
	var violation *ErrSchemaViolation
	if !errors.As(err, &violation) {
		t.Fatalf("expected ErrSchemaViolation, got: %T (%v)", err, err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invalid *ErrInvalidJSON
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidJSON, got: %T", err)
	}
	var violation *ErrSchemaViolation
	if errors.As(err, &violation) {
		t.Fatal("parse failure must not be reported as a schema violation")
	}
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	raw := json.RawMessage(``)
	err := validateResponse(testSchema(), raw)
	var invalid *ErrInvalidJSON
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidJSON, got: %T (%v)", err, err)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name:        "test-nested",
		Description: "Nested test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"video": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{"type": "string"},
						"url":   map[string]any{"type": "string", "pattern": "^https://"},
					},
					"required": []any{"title", "url"},
				},
				"scores": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer"},
				},
			},
			"required": []any{"video", "scores"},
		},
	}

	valid := json.RawMessage(`{"video":{"title":"Intro","url":"https://youtube.com/embed/abc"},"scores":[90,85]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	badURL := json.RawMessage(`{"video":{"title":"Intro","url":"ftp://example.com"},"scores":[1]}`)
	if err := validateResponse(schema, badURL); err == nil {
		t.Fatal("expected error for non-https url")
	}

	badItems := json.RawMessage(`{"video":{"title":"Intro","url":"https://x.test"},"scores":["not","ints"]}`)
	if err := validateResponse(schema, badItems); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}
