package resources

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/richinex/waypoint/internal/logger"
	"github.com/richinex/waypoint/llm"
)

// QA is one question with its answer.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// TopicContent is a prose explanation of a topic.
type TopicContent struct {
	Introduction string `json:"introduction"`
	WhyLearn     string `json:"whyLearn"`
	QA           []QA   `json:"qa"`
}

const contentPrompt = `Create a comprehensive explanation for %[1]s in the following format:

Introduction:
[Write 2-3 sentences introducing %[1]s]

Why Learn:
[Explain in 2-3 points why someone should learn %[1]s]

Q&A:
1. What is %[1]s?
[Answer]
2. How can I start learning %[1]s?
[Answer]
3. What are the prerequisites for learning %[1]s?
[Answer]`

var questionNumber = regexp.MustCompile(`^\d+[.)]\s*`)

// ParseTopicContent splits generated text into its sections. Sections are
// separated by blank lines. Each section that comes out empty is filled
// with default text.
func ParseTopicContent(topic, text string) TopicContent {
	var (
		content  TopicContent
		current  string
		question string
		answer   string
		pending  bool
	)

	flush := func() {
		if pending {
			content.QA = append(content.QA, QA{Question: question, Answer: answer})
		}
		question, answer, pending = "", "", false
	}

	for _, section := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}

		switch {
		case strings.HasPrefix(section, "Introduction:"):
			current = "introduction"
			content.Introduction = strings.TrimSpace(strings.TrimPrefix(section, "Introduction:"))
		case strings.HasPrefix(section, "Why Learn:"):
			current = "whyLearn"
			content.WhyLearn = strings.TrimSpace(strings.TrimPrefix(section, "Why Learn:"))
		case strings.HasPrefix(section, "Q&A:"):
			current = "qa"
			rest := strings.TrimSpace(strings.TrimPrefix(section, "Q&A:"))
			if questionNumber.MatchString(rest) {
				flush()
				question, answer = splitQuestion(rest)
				pending = true
			}
		case current == "qa" && questionNumber.MatchString(section):
			flush()
			question, answer = splitQuestion(section)
			pending = true
		case current == "qa" && pending:
			answer = strings.TrimSpace(strings.Join([]string{answer, section}, "\n"))
		}
	}
	flush()

	return withDefaults(topic, content)
}

// splitQuestion separates "1. Question?\nAnswer" into its parts.
func splitQuestion(section string) (string, string) {
	section = questionNumber.ReplaceAllString(section, "")
	q, a, _ := strings.Cut(section, "\n")
	return strings.TrimSpace(q), strings.TrimSpace(a)
}

func withDefaults(topic string, c TopicContent) TopicContent {
	if c.Introduction == "" {
		c.Introduction = topic + " is a fundamental concept in modern development that plays a crucial role in building robust applications."
	}
	if c.WhyLearn == "" {
		c.WhyLearn = "Learning " + topic + " is essential for understanding modern development practices and advancing your career in technology."
	}
	if len(c.QA) == 0 {
		c.QA = []QA{
			{Question: "What is " + topic + "?", Answer: topic + " is a fundamental concept in development."},
			{Question: "How can I start learning " + topic + "?", Answer: "Start with basic tutorials and gradually move to more complex projects."},
			{Question: "What are the prerequisites for learning " + topic + "?", Answer: "Basic programming knowledge and understanding of development concepts."},
		}
	}
	return c
}

// Explainer writes a prose explanation of a topic with a provider.
type Explainer struct {
	provider llm.Provider
	timeout  time.Duration
	logger   *zap.Logger
}

// NewExplainer creates an explainer. A nil provider always returns the
// default content.
func NewExplainer(provider llm.Provider, timeout time.Duration, l *zap.Logger) *Explainer {
	return &Explainer{provider: provider, timeout: timeout, logger: logger.OrNop(l)}
}

// Explain never fails; provider errors produce the default content.
func (e *Explainer) Explain(ctx context.Context, topic string) TopicContent {
	topic = CleanTopic(topic)
	if e.provider == nil {
		return withDefaults(topic, TopicContent{})
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.provider.Chat(ctx, []llm.ChatMessage{
		llm.UserMessage(fmt.Sprintf(contentPrompt, topic)),
	})
	if err != nil {
		e.logger.Warn("topic explanation failed", zap.String("topic", topic), zap.Error(err))
		return withDefaults(topic, TopicContent{})
	}
	return ParseTopicContent(topic, resp.Content)
}
