package roadmap

import (
	"strings"
	"text/template"
)

var promptTmpl = template.Must(template.New("roadmap").Parse(`Create a comprehensive learning roadmap for {{.Topic}}.

Guidelines:
- 4 to 6 main topics, ordered from fundamentals to advanced
- 2 to 4 subtopics per main topic, numbered like "1.1 Subtopic"
- 2 to 3 concrete points per subtopic, including hands-on practice where it fits
- No time estimates

Return ONLY a valid JSON object in the following format, with no additional text or markdown formatting:
{
    "name": {{printf "%q" .Topic}},
    "children": [
        {
            "name": "1. Main Topic",
            "children": [
                {
                    "name": "1.1 Subtopic",
                    "children": [
                        {"name": "Point"},
                        {"name": "Point"}
                    ]
                }
            ]
        }
    ]
}

IMPORTANT: Return ONLY the JSON object, no additional text or explanation.`))

// Prompt renders the generation prompt for topic. Every provider receives
// the same text.
func Prompt(topic string) (string, error) {
	var b strings.Builder
	if err := promptTmpl.Execute(&b, struct{ Topic string }{Topic: topic}); err != nil {
		return "", err
	}
	return b.String(), nil
}
