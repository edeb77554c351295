// Package classifier decides whether a topic belongs to the technology
// domain. Tier 1 matches a curated vocabulary; Tier 2 asks a model.
package classifier

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/richinex/waypoint/internal/dsa"
	"github.com/richinex/waypoint/internal/metrics"
)

// Tier identifies which stage produced a decision.
type Tier int

const (
	// TierCurated is the vocabulary match.
	TierCurated Tier = 1
	// TierVerified is the model verification.
	TierVerified Tier = 2
)

func (t Tier) String() string {
	if t == TierVerified {
		return "verified"
	}
	return "curated"
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Decision is the outcome of classifying one topic.
type Decision struct {
	Related bool   `json:"related"`
	Tier    Tier   `json:"tier"`
	Term    string `json:"term,omitempty"`
	Answer  string `json:"answer,omitempty"`
}

// Verifier answers whether a topic is technology related.
type Verifier interface {
	Verify(ctx context.Context, topic string) (Answer, error)
}

// Classifier is safe for concurrent use. It keeps no state between calls.
type Classifier struct {
	terms    *dsa.Trie
	verifier Verifier
	logger   *zap.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithVerifier enables Tier 2.
func WithVerifier(v Verifier) Option {
	return func(c *Classifier) { c.verifier = v }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds a classifier over the curated vocabulary.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		terms:  dsa.NewTrie(techTerms...),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsTechRelated reports whether topic is in the technology domain.
func (c *Classifier) IsTechRelated(ctx context.Context, topic string) bool {
	return c.Classify(ctx, topic).Related
}

// Classify runs Tier 1 and, when it finds nothing and a verifier is set,
// Tier 2. A verifier error or an unclear answer keeps the Tier 1 result.
func (c *Classifier) Classify(ctx context.Context, topic string) Decision {
	if term, ok := c.match(topic); ok {
		return c.record(Decision{Related: true, Tier: TierCurated, Term: term})
	}
	if c.verifier == nil {
		return c.record(Decision{Related: false, Tier: TierCurated})
	}

	answer, err := c.verifier.Verify(ctx, topic)
	if err != nil {
		c.logger.Warn("tier 2 verification failed, using curated match",
			zap.String("topic", topic), zap.Error(err))
		return c.record(Decision{Related: false, Tier: TierCurated})
	}

	switch answer {
	case AnswerYes:
		return c.record(Decision{Related: true, Tier: TierVerified, Answer: string(answer)})
	case AnswerNo:
		return c.record(Decision{Related: false, Tier: TierVerified, Answer: string(answer)})
	default:
		return c.record(Decision{Related: false, Tier: TierCurated, Answer: string(answer)})
	}
}

// Match runs Tier 1 only.
func (c *Classifier) Match(topic string) (string, bool) {
	return c.match(topic)
}

// match checks each word, each adjacent pair, then any occurrence of a
// term inside the lower-cased topic.
func (c *Classifier) match(topic string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(topic))
	if lower == "" {
		return "", false
	}

	words := tokenize(lower)
	for _, w := range words {
		if c.terms.Has(w) {
			return w, true
		}
	}
	for i := 0; i+1 < len(words); i++ {
		pair := words[i] + " " + words[i+1]
		if c.terms.Has(pair) {
			return pair, true
		}
	}

	return c.terms.FindIn(lower)
}

func (c *Classifier) record(d Decision) Decision {
	metrics.RecordClassification(d.Tier.String(), d.Related)
	return d
}

func tokenize(s string) []string {
	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, `,;:!?"'()[]{}`); f != "" {
			out = append(out, f)
		}
	}
	return out
}
