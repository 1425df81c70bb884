package extract

import (
	"regexp"
	"strings"

	"github.com/umputun/corteo/pkg/domain"
)

// Classification is the category and format of an event
type Classification struct {
	Category  domain.Category
	EventType domain.EventType
}

type labelMatcher[T ~string] struct {
	label T
	re    *regexp.Regexp
}

// Classifier assigns one category and one event type using ordered keyword tables.
// The first rule with any matching keyword wins, there is no scoring.
type Classifier struct {
	categories []labelMatcher[domain.Category]
	eventTypes []labelMatcher[domain.EventType]
}

// NewClassifier compiles the keyword tables. Nil tables fall back to DefaultCategories and DefaultEventTypes.
func NewClassifier(categories []Rule[domain.Category], eventTypes []Rule[domain.EventType]) *Classifier {
	if categories == nil {
		categories = DefaultCategories
	}
	if eventTypes == nil {
		eventTypes = DefaultEventTypes
	}
	return &Classifier{categories: compileRules(categories), eventTypes: compileRules(eventTypes)}
}

// Classify returns the classification of raw text
func (c *Classifier) Classify(raw string) Classification {
	return c.classify(NewTextContext(raw))
}

func (c *Classifier) classify(tc TextContext) Classification {
	return Classification{
		Category:  firstMatch(c.categories, tc.Normalized, domain.CategoryOther),
		EventType: firstMatch(c.eventTypes, tc.Normalized, domain.EventOther),
	}
}

func firstMatch[T ~string](matchers []labelMatcher[T], normalized string, fallback T) T {
	if normalized == "" {
		return fallback
	}
	for _, m := range matchers {
		if m.re.MatchString(normalized) {
			return m.label
		}
	}
	return fallback
}

func compileRules[T ~string](rules []Rule[T]) []labelMatcher[T] {
	res := make([]labelMatcher[T], 0, len(rules))
	for _, r := range rules {
		alts := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			stem := strings.HasSuffix(kw, "*")
			kw = Normalize(strings.TrimSuffix(kw, "*"))
			if kw == "" {
				continue
			}
			if stem {
				alts = append(alts, regexp.QuoteMeta(kw))
				continue
			}
			alts = append(alts, regexp.QuoteMeta(kw)+`\b`)
		}
		if len(alts) == 0 {
			continue
		}
		res = append(res, labelMatcher[T]{label: r.Label, re: regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)`)})
	}
	return res
}
