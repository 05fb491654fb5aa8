package intent

import (
	"strings"

	"stylista-be/pkg/assistant/action"
	"stylista-be/pkg/assistant/vocabulary"
)

// DirectMatcher resolves common phrases without asking the model.
type DirectMatcher struct {
	vocab *vocabulary.Vocabulary
}

func NewDirectMatcher(vocab *vocabulary.Vocabulary) *DirectMatcher {
	return &DirectMatcher{vocab: vocab}
}

// Match returns the command of the first table phrase contained in text.
// A single-category phrase asked about with a trending word ("what's hot in
// intimates") becomes a trend lookup.
func (d *DirectMatcher) Match(text string) (action.Command, bool) {
	lower := strings.ToLower(text)
	for _, m := range d.vocab.DirectMatches {
		if !strings.Contains(lower, m.Phrase) || len(m.Categories) == 0 {
			continue
		}
		if len(m.Categories) > 1 {
			return action.SearchProducts{Categories: append([]string(nil), m.Categories...)}, true
		}
		if m.Trending {
			return action.ShowTrends{Category: m.Categories[0], TimeframeDays: action.DefaultTrendDays}, true
		}
		if _, ok := vocabulary.AnyWord(lower, d.vocab.TrendingTerms); ok {
			return action.ShowTrends{Category: m.Categories[0], TimeframeDays: action.DefaultTrendDays}, true
		}
		return action.SearchProducts{Category: m.Categories[0]}, true
	}
	return nil, false
}
