// Package lexical turns free shopper text into a partial search intent
// using dictionary and pattern matching only.
package lexical

import (
	"regexp"
	"strconv"
	"strings"

	"stylista-be/pkg/assistant/action"
	"stylista-be/pkg/assistant/vocabulary"
)

const amount = `\s*\$?\s*(\d+(?:\.\d{1,2})?)`

var betweenPattern = regexp.MustCompile(`\bbetween` + amount + `\s*(?:and|to|-)` + amount)

// Intent is the partial mapping recovered from text. Every field is
// optional.
type Intent struct {
	Category   string
	Brand      string
	Department string
	MinPrice   *float64
	MaxPrice   *float64
	Query      string
}

func (i Intent) IsEmpty() bool {
	return i.Category == "" && i.Brand == "" && i.Department == "" &&
		i.MinPrice == nil && i.MaxPrice == nil && i.Query == ""
}

// Search wraps the intent as a search command.
func (i Intent) Search(limit int) action.SearchProducts {
	return action.SearchProducts{
		Category:   i.Category,
		Brand:      i.Brand,
		Department: i.Department,
		MinPrice:   i.MinPrice,
		MaxPrice:   i.MaxPrice,
		Query:      i.Query,
		Limit:      limit,
	}
}

type Extractor struct {
	vocab     *vocabulary.Vocabulary
	maxPrices []*regexp.Regexp
	minPrices []*regexp.Regexp
}

func NewExtractor(vocab *vocabulary.Vocabulary) *Extractor {
	return &Extractor{
		vocab:     vocab,
		maxPrices: compileCues(vocab.MaxPriceCues),
		minPrices: compileCues(vocab.MinPriceCues),
	}
}

func compileCues(cues []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(cues))
	for _, cue := range cues {
		out = append(out, regexp.MustCompile(`\b`+regexp.QuoteMeta(cue)+amount))
	}
	return out
}

// Extract never fails; text without any signal yields an empty Intent.
func (e *Extractor) Extract(text string) Intent {
	lower := strings.ToLower(strings.TrimSpace(text))
	var in Intent
	if lower == "" {
		return in
	}

	if category, ok := e.vocab.MatchCategory(lower); ok {
		in.Category = category
	} else if _, ok := vocabulary.AnyWord(lower, e.vocab.SeasonalTerms); ok {
		in.Category = e.vocab.SeasonalCategory
	}

	if brand, ok := e.vocab.MatchBrand(lower); ok {
		in.Brand = brand
	}

	if _, ok := vocabulary.AnyWord(lower, e.vocab.FemaleTerms); ok {
		in.Department = "Women"
	} else if _, ok := vocabulary.AnyWord(lower, e.vocab.MaleTerms); ok {
		in.Department = "Men"
	}

	in.MaxPrice = firstPrice(lower, e.maxPrices)
	in.MinPrice = firstPrice(lower, e.minPrices)
	if in.MinPrice == nil && in.MaxPrice == nil {
		in.MinPrice, in.MaxPrice = priceRange(lower)
	}

	if in.Category == "" && in.Brand == "" {
		for _, term := range e.vocab.FashionTerms {
			if vocabulary.HasWordPrefix(lower, term) {
				in.Query = term
				break
			}
		}
	}
	return in
}

func firstPrice(text string, patterns []*regexp.Regexp) *float64 {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return action.Float(v)
		}
	}
	return nil
}

func priceRange(text string) (*float64, *float64) {
	m := betweenPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	lo, err1 := strconv.ParseFloat(m[1], 64)
	hi, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return nil, nil
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return action.Float(lo), action.Float(hi)
}
