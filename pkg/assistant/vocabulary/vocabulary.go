package vocabulary

import (
	"strings"
)

// CategoryKeyword maps a shopper term to a canonical catalog category.
type CategoryKeyword struct {
	Keyword  string
	Category string
}

// DirectMatch is a hard-coded phrase that resolves without the model.
type DirectMatch struct {
	Phrase     string
	Categories []string
	Trending   bool
}

// Vocabulary holds the static lookup tables shared by the extractor, the
// response parser, the fallback synthesizer and the executor.
// Built once at start-up and never mutated afterwards.
type Vocabulary struct {
	// Categories is scanned in order; the first keyword found wins.
	Categories []CategoryKeyword
	Brands     []string

	SeasonalTerms    []string
	SeasonalCategory string

	FemaleTerms []string
	MaleTerms   []string

	MaxPriceCues []string
	MinPriceCues []string

	FashionTerms []string
	GenericQuery string

	TrendingTerms    []string
	ActivewearTerms  []string
	ActiveCategory   string
	StyleAdviceTerms []string
	LocalityTerms    []string
	PersonalStyle    string
	AllCategories    string

	DirectMatches []DirectMatch

	StyleCategories    map[string][]string
	OccasionCategories map[string][]string

	// PopularCategories are suggested when a search returns nothing.
	PopularCategories []string
}

// Default returns the fashion-retail vocabulary.
func Default() *Vocabulary {
	return &Vocabulary{
		Categories: []CategoryKeyword{
			{"intimates", "Intimates"},
			{"lingerie", "Intimates"},
			{"underwear", "Intimates"},
			{"bras", "Intimates"},
			{"panties", "Intimates"},
			{"undergarments", "Intimates"},

			{"jeans", "Jeans"},
			{"denim", "Jeans"},

			{"tops", "Tops & Tees"},
			{"tees", "Tops & Tees"},
			{"shirts", "Tops & Tees"},
			{"t-shirts", "Tops & Tees"},
			{"blouses", "Tops & Tees"},
			{"tank tops", "Tops & Tees"},

			{"hoodies", "Fashion Hoodies & Sweatshirts"},
			{"sweatshirts", "Fashion Hoodies & Sweatshirts"},
			{"hoody", "Fashion Hoodies & Sweatshirts"},

			{"swimwear", "Swim"},
			{"swim", "Swim"},
			{"bikinis", "Swim"},
			{"bathing suits", "Swim"},
			{"swimsuits", "Swim"},

			{"sleepwear", "Sleep & Lounge"},
			{"pajamas", "Sleep & Lounge"},
			{"pjs", "Sleep & Lounge"},
			{"loungewear", "Sleep & Lounge"},
			{"nightwear", "Sleep & Lounge"},

			{"shorts", "Shorts"},
			{"sweaters", "Sweaters"},
			{"knitwear", "Sweaters"},
			{"cardigans", "Sweaters"},
			{"pullovers", "Sweaters"},

			{"accessories", "Accessories"},
			{"bags", "Accessories"},
			{"jewelry", "Accessories"},
			{"belts", "Accessories"},
			{"hats", "Accessories"},
			{"caps", "Accessories"},
			{"purses", "Accessories"},
			{"handbags", "Accessories"},

			{"activewear", "Active"},
			{"sportswear", "Active"},
			{"athletic", "Active"},
			{"workout", "Active"},
			{"gym", "Active"},
			{"fitness", "Active"},
			{"exercise", "Active"},

			{"outerwear", "Outerwear & Coats"},
			{"coats", "Outerwear & Coats"},
			{"jackets", "Outerwear & Coats"},
			{"blazers", "Blazers & Jackets"},

			{"pants", "Pants"},
			{"trousers", "Pants"},
			{"chinos", "Pants"},
			{"slacks", "Pants"},

			{"dresses", "Dresses"},
			{"socks", "Socks"},
			{"hosiery", "Socks & Hosiery"},
			{"tights", "Socks & Hosiery"},
			{"stockings", "Socks & Hosiery"},

			{"maternity", "Maternity"},
			{"plus size", "Plus"},
			{"plus", "Plus"},

			{"suits", "Suits"},
			{"formal", "Suits & Sport Coats"},
			{"business", "Suits & Sport Coats"},

			{"leggings", "Leggings"},
			{"skirts", "Skirts"},
			{"rompers", "Jumpsuits & Rompers"},
			{"jumpsuits", "Jumpsuits & Rompers"},
			{"sets", "Clothing Sets"},
		},
		Brands: []string{
			"Allegra K", "Calvin Klein", "Carhartt", "Hanes", "Volcom", "Nautica",
			"Levi's", "Quiksilver", "Tommy Hilfiger", "Columbia", "Hurley", "Dockers",
			"Diesel", "Speedo", "American Apparel", "Wrangler", "Motherhood Maternity",
			"Champion", "7 For All Mankind", "Lucky Brand",
		},

		SeasonalTerms:    []string{"summer", "beach", "vacation"},
		SeasonalCategory: "Swim",

		FemaleTerms: []string{"women", "womens", "women's", "ladies", "female"},
		MaleTerms:   []string{"men", "mens", "men's", "male", "guys", "boys"},

		MaxPriceCues: []string{"under", "below", "less than", "cheaper than"},
		MinPriceCues: []string{"over", "above", "more than", "at least"},

		FashionTerms: []string{"dress", "shirt", "pant", "shoe", "bag", "hat", "coat", "jacket"},
		GenericQuery: "popular items",

		TrendingTerms:    []string{"trending", "popular", "hot"},
		ActivewearTerms:  []string{"activewear", "active"},
		ActiveCategory:   "Active",
		StyleAdviceTerms: []string{"style", "recommend", "suggest"},
		LocalityTerms:    []string{"age", "my area"},
		PersonalStyle:    "personal",
		AllCategories:    "all",

		DirectMatches: []DirectMatch{
			{Phrase: "trending intimates", Categories: []string{"Intimates"}, Trending: true},
			{Phrase: "trending in intimates", Categories: []string{"Intimates"}, Trending: true},
			{Phrase: "popular intimates", Categories: []string{"Intimates"}, Trending: true},
			{Phrase: "summer essentials", Categories: []string{"Swim", "Shorts", "Tops & Tees"}},
			{Phrase: "winter essentials", Categories: []string{"Sweaters", "Outerwear & Coats", "Fashion Hoodies & Sweatshirts"}},
			{Phrase: "intimates", Categories: []string{"Intimates"}},
		},

		StyleCategories: map[string][]string{
			"casual":     {"Tops & Tees", "Jeans", "Shorts", "Fashion Hoodies & Sweatshirts"},
			"formal":     {"Suits & Sport Coats", "Blazers & Jackets", "Dresses"},
			"athletic":   {"Active", "Leggings", "Socks"},
			"trendy":     {"Tops & Tees", "Dresses", "Jumpsuits & Rompers", "Skirts"},
			"classic":    {"Sweaters", "Blazers & Jackets", "Pants", "Outerwear & Coats"},
			"edgy":       {"Jeans", "Outerwear & Coats", "Accessories"},
			"bohemian":   {"Dresses", "Skirts", "Accessories"},
			"minimalist": {"Tops & Tees", "Pants", "Sweaters"},
		},
		OccasionCategories: map[string][]string{
			"work":     {"Blazers & Jackets", "Pants", "Tops & Tees", "Suits & Sport Coats"},
			"party":    {"Dresses", "Accessories", "Suits & Sport Coats", "Jumpsuits & Rompers"},
			"date":     {"Dresses", "Tops & Tees", "Blazers & Jackets", "Accessories"},
			"casual":   {"Tops & Tees", "Jeans", "Shorts"},
			"vacation": {"Swim", "Shorts", "Tops & Tees", "Accessories"},
			"wedding":  {"Suits & Sport Coats", "Dresses", "Accessories"},
			"gym":      {"Active", "Leggings", "Socks"},
		},

		PopularCategories: []string{"Tops & Tees", "Jeans", "Dresses", "Active", "Accessories"},
	}
}

// CategoryNames returns the distinct canonical categories in table order.
func (v *Vocabulary) CategoryNames() []string {
	seen := make(map[string]bool, len(v.Categories))
	names := make([]string, 0, len(v.Categories))
	for _, c := range v.Categories {
		if seen[c.Category] {
			continue
		}
		seen[c.Category] = true
		names = append(names, c.Category)
	}
	return names
}

// Normalize maps a shopper or model supplied category onto a canonical one.
// Unknown values are returned trimmed but otherwise unchanged.
func (v *Vocabulary) Normalize(category string) string {
	trimmed := strings.TrimSpace(category)
	lower := strings.ToLower(trimmed)
	if lower == "" {
		return ""
	}
	for _, c := range v.Categories {
		if strings.ToLower(c.Category) == lower {
			return c.Category
		}
	}
	for _, c := range v.Categories {
		if c.Keyword == lower {
			return c.Category
		}
	}
	return trimmed
}

// IsWildcard reports whether a filter value means "no constraint".
func IsWildcard(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all", "any":
		return true
	}
	return false
}

// MatchCategory returns the category of the first keyword that starts a
// word in text, so "hats" does not fire on "whats".
func (v *Vocabulary) MatchCategory(lower string) (string, bool) {
	for _, c := range v.Categories {
		if HasWordPrefix(lower, c.Keyword) {
			return c.Category, true
		}
	}
	return "", false
}

// MatchBrand returns the first known brand that appears in text as whole
// words.
func (v *Vocabulary) MatchBrand(lower string) (string, bool) {
	for _, b := range v.Brands {
		if ContainsWord(lower, strings.ToLower(b)) {
			return b, true
		}
	}
	return "", false
}

// Department maps a free department value ("womens", "Female", "M") onto
// "Women" or "Men". Wildcards map to "" and anything else is returned
// trimmed.
func (v *Vocabulary) Department(value string) string {
	trimmed := strings.TrimSpace(value)
	lower := strings.ToLower(trimmed)
	if IsWildcard(lower) {
		return ""
	}
	if lower == "f" || lower == "w" {
		return "Women"
	}
	if lower == "m" {
		return "Men"
	}
	for _, t := range v.FemaleTerms {
		if lower == t {
			return "Women"
		}
	}
	for _, t := range v.MaleTerms {
		if lower == t {
			return "Men"
		}
	}
	return trimmed
}
