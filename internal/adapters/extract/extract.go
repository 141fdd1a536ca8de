// Package extract recognizes known skill labels in free-form resume text.
//
// This is the pre-processing collaborator in front of the scoring engine:
// it turns raw text into a SkillSet and nothing more. Document parsing
// (PDF, DOCX) happens upstream of this package.
package extract

import (
	"context"
	"strings"

	"github.com/okian/compass/internal/domain/model"
)

// Extractor yields the set of recognized skill labels in a text.
type Extractor interface {
	Extract(ctx context.Context, text string) model.SkillSet
}

// defaultVocabulary lists the labels the keyword extractor recognizes out
// of the box. Multi-word labels are matched as whole phrases.
var defaultVocabulary = []string{
	"python", "java", "c++", "machine learning", "data analysis",
	"deep learning", "nlp", "django", "flask", "fastapi",
	"pandas", "numpy", "sql", "react", "node.js",
	"html", "css", "tensorflow", "pytorch",
	"communication", "leadership", "teamwork", "problem-solving",
}

// KeywordExtractor implements Extractor by case-insensitive vocabulary
// lookup against the lower-cased input text.
type KeywordExtractor struct {
	vocabulary []string
}

// Option applies a configuration option to the KeywordExtractor.
type Option func(*KeywordExtractor)

// WithVocabulary replaces the recognized label list. Empty lists are
// ignored.
func WithVocabulary(labels []string) Option {
	return func(e *KeywordExtractor) {
		if len(labels) == 0 {
			return
		}
		vocab := make([]string, 0, len(labels))
		for _, l := range labels {
			if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
				vocab = append(vocab, l)
			}
		}
		e.vocabulary = vocab
	}
}

// NewKeywordExtractor creates an extractor with the default vocabulary,
// adjusted by options.
func NewKeywordExtractor(opts ...Option) *KeywordExtractor {
	e := &KeywordExtractor{vocabulary: defaultVocabulary}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns every vocabulary label appearing in text, in
// vocabulary order.
func (e *KeywordExtractor) Extract(ctx context.Context, text string) model.SkillSet {
	lowered := strings.ToLower(text)
	found := make([]string, 0)
	for _, label := range e.vocabulary {
		if strings.Contains(lowered, label) {
			found = append(found, label)
		}
	}
	return model.NewSkillSet(found...)
}
