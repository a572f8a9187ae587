package content

import "github.com/learnflow/learnflow/internal/llm"

// PackageSchema defines the JSON schema for learning package generation.
// The correctAnswer-must-be-an-option rule cannot be expressed here and is
// checked separately in the service.
var PackageSchema = &llm.Schema{
	Name:        "learning-package",
	Description: "A learning package with explanation, examples, video recommendations, and a quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "Clear explanation of the topic. Markdown and LaTeX allowed.",
			},
			"examples": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"description": "Worked examples illustrating the topic",
			},
			"videos": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Video title",
						},
						"url": map[string]any{
							"type":        "string",
							"pattern":     "^https://",
							"description": "Externally reachable https link",
						},
					},
					"required":             []any{"title", "url"},
					"additionalProperties": false,
				},
				"description": "Recommended videos on the topic",
			},
			"quiz": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    2,
							"description": "Short answer choices",
						},
						"correctAnswer": map[string]any{
							"type":        "string",
							"description": "Must exactly match one of the options",
						},
					},
					"required":             []any{"question", "options", "correctAnswer"},
					"additionalProperties": false,
				},
				"description": "Multiple-choice questions to check understanding",
			},
		},
		"required":             []any{"explanation", "examples", "videos", "quiz"},
		"additionalProperties": false,
	},
}
