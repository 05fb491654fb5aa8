package intent

import (
	"fmt"
	"strings"

	"stylista-be/pkg/assistant/vocabulary"
	"stylista-be/pkg/llm"
)

// ShopperHint is the optional user context line sent to the model.
type ShopperHint struct {
	Age      int
	Gender   string
	Location string
}

func (h ShopperHint) line() string {
	age := "N/A"
	if h.Age > 0 {
		age = fmt.Sprint(h.Age)
	}
	return fmt.Sprintf("USER CONTEXT: Age: %s, Gender: %s, Location: %s", age, orNA(h.Gender), orNA(h.Location))
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func buildSystemPrompt(v *vocabulary.Vocabulary) string {
	var prompt strings.Builder

	prompt.WriteString("You are STYLISTA, a fashion e-commerce assistant. Your ONLY job is to translate the shopper's message into one catalog action.\n\n")

	prompt.WriteString("AVAILABLE CATEGORIES: ")
	prompt.WriteString(strings.Join(v.CategoryNames(), ", "))
	prompt.WriteString("\n")

	brands := v.Brands
	if len(brands) > 10 {
		brands = brands[:10]
	}
	prompt.WriteString("TOP BRANDS: ")
	prompt.WriteString(strings.Join(brands, ", "))
	prompt.WriteString(" and many more\n")
	prompt.WriteString("DEPARTMENTS: Women, Men\n\n")

	prompt.WriteString("Respond with ONLY one JSON object using one of these shapes:\n")
	prompt.WriteString(`{"action": "search_products", "category": "Jeans", "brand": "Levi's", "department": "Women", "min_price": 50, "max_price": 100}` + "\n")
	prompt.WriteString(`{"action": "recommend_products", "style": "casual", "occasion": "work", "category": "Tops & Tees"}` + "\n")
	prompt.WriteString(`{"action": "show_trends", "category": "Intimates", "timeframe": "recent"}` + "\n")
	prompt.WriteString(`{"action": "check_inventory", "product_id": 12345}` + "\n")
	prompt.WriteString(`{"action": "order_history", "timeframe": "recent"}` + "\n\n")

	prompt.WriteString("EXAMPLES:\n")
	prompt.WriteString(`- "Find trending items in intimates" -> {"action": "show_trends", "category": "Intimates"}` + "\n")
	prompt.WriteString(`- "What activewear does Columbia have?" -> {"action": "search_products", "brand": "Columbia", "category": "Active"}` + "\n")
	prompt.WriteString(`- "Show me summer essentials" -> {"action": "search_products", "category": "Swim"}` + "\n")
	prompt.WriteString(`- "What's popular in my area?" -> {"action": "show_trends", "category": "all"}` + "\n")
	prompt.WriteString(`- "Based on my style, what should I buy?" -> {"action": "recommend_products", "style": "personal"}` + "\n\n")

	prompt.WriteString("RULES:\n")
	prompt.WriteString("- Map shopper terms to the exact category names above (\"shirts\" -> \"Tops & Tees\").\n")
	prompt.WriteString("- Omit fields the shopper did not ask for.\n")
	prompt.WriteString("- If unsure, use search_products.\n")

	return prompt.String()
}

// buildMessages assembles system prompt, optional user context, the last
// window prior turns and the current turn.
func buildMessages(system string, turn Turn, window int) []llm.Message {
	history := make([]llm.Message, 0, len(turn.History))
	for _, m := range turn.History {
		if m.Role == llm.RoleSystem || strings.TrimSpace(m.Content) == "" {
			continue
		}
		history = append(history, m)
	}
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}

	messages := make([]llm.Message, 0, len(history)+3)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})
	if turn.Shopper != nil {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: turn.Shopper.line()})
	}
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: turn.Text})
	return messages
}
