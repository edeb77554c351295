package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/richinex/waypoint/llm"
)

// Answer is a normalized verifier reply.
type Answer string

const (
	AnswerYes     Answer = "yes"
	AnswerNo      Answer = "no"
	AnswerUnclear Answer = "unclear"
)

// ParseAnswer accepts only an exact yes or no, ignoring case and
// surrounding whitespace.
func ParseAnswer(text string) Answer {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes":
		return AnswerYes
	case "no":
		return AnswerNo
	default:
		return AnswerUnclear
	}
}

const verificationPrompt = `Is '%s' related to technology, computer science, software, IT, or digital skills?
Answer ONLY 'yes' or 'no'. Consider all technical roles, tools, and skills.`

// LLMVerifier asks a provider the yes/no question.
type LLMVerifier struct {
	provider llm.Provider
	timeout  time.Duration
}

// NewLLMVerifier wraps provider. A zero timeout means the caller's
// context alone bounds the call.
func NewLLMVerifier(provider llm.Provider, timeout time.Duration) *LLMVerifier {
	return &LLMVerifier{provider: provider, timeout: timeout}
}

// Verify implements Verifier.
func (v *LLMVerifier) Verify(ctx context.Context, topic string) (Answer, error) {
	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	resp, err := v.provider.Chat(ctx, []llm.ChatMessage{
		llm.UserMessage(fmt.Sprintf(verificationPrompt, topic)),
	})
	if err != nil {
		return AnswerUnclear, fmt.Errorf("%s verification: %w", v.provider.Name(), err)
	}
	return ParseAnswer(resp.Content), nil
}

var _ Verifier = (*LLMVerifier)(nil)
