package intent

import (
	"strings"

	"stylista-be/pkg/assistant/action"
	"stylista-be/pkg/assistant/lexical"
	"stylista-be/pkg/assistant/vocabulary"
)

// Synthesizer is the last-resort rule list used when neither the model nor
// the extractor produced a command. It never returns NoAction.
type Synthesizer struct {
	vocab     *vocabulary.Vocabulary
	extractor *lexical.Extractor
}

func NewSynthesizer(vocab *vocabulary.Vocabulary, extractor *lexical.Extractor) *Synthesizer {
	return &Synthesizer{vocab: vocab, extractor: extractor}
}

func (s *Synthesizer) Synthesize(text string) action.Command {
	lower := strings.ToLower(strings.TrimSpace(text))
	v := s.vocab

	if _, ok := vocabulary.AnyWord(lower, v.TrendingTerms); ok {
		category := v.AllCategories
		if c, found := v.MatchCategory(lower); found {
			category = c
		}
		return action.ShowTrends{Category: category, TimeframeDays: action.DefaultTrendDays}
	}

	if brand, ok := v.MatchBrand(lower); ok {
		cmd := action.SearchProducts{Brand: brand}
		if _, active := vocabulary.AnyWord(lower, v.ActivewearTerms); active {
			cmd.Category = v.ActiveCategory
		}
		return cmd
	}

	if _, ok := vocabulary.AnyWord(lower, v.SeasonalTerms); ok {
		return action.SearchProducts{Category: v.SeasonalCategory}
	}

	for _, term := range v.StyleAdviceTerms {
		if vocabulary.HasWordPrefix(lower, term) {
			return action.Recommend{Style: v.PersonalStyle}
		}
	}

	if _, ok := vocabulary.AnyWord(lower, v.LocalityTerms); ok {
		return action.ShowTrends{Category: v.AllCategories, TimeframeDays: action.DefaultTrendDays}
	}

	if in := s.extractor.Extract(text); !in.IsEmpty() {
		return in.Search(0)
	}
	return action.SearchProducts{Query: v.GenericQuery}
}
