package content

import (
	"fmt"
	"strings"
)

const packageSystemPrompt = `You are an expert tutor. Respond only with valid JSON matching the schema.`

func buildPackageUserMessage(query string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Create a learning package about: %s\n", query))

	b.WriteString(`
JSON Schema:
{
  "explanation": "string - clear explanation with examples",
  "examples": ["string", "string"],
  "videos": [{"title": "string", "url": "string (must include https://)"}],
  "quiz": [
    {
      "question": "string",
      "options": ["string", "string", "string"],
      "correctAnswer": "string"
    }
  ]
}

Rules:
- Return only valid JSON, no extra text.
- Ensure all URLs include https://
- correctAnswer must exactly match one of the options.`)

	return b.String()
}
