package action

// Marshal renders a command back to its wire form. Unset optional fields
// are omitted.
func Marshal(cmd Command) map[string]any {
	if cmd == nil {
		return map[string]any{"action": string(KindNoAction)}
	}
	out := map[string]any{"action": string(cmd.Kind())}
	put := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}

	switch c := cmd.(type) {
	case SearchProducts:
		put("category", c.Category)
		put("brand", c.Brand)
		put("department", c.Department)
		put("query", c.Query)
		if len(c.Categories) > 0 {
			out["categories"] = append([]string(nil), c.Categories...)
		}
		if c.MinPrice != nil {
			out["min_price"] = *c.MinPrice
		}
		if c.MaxPrice != nil {
			out["max_price"] = *c.MaxPrice
		}
		if c.Limit > 0 {
			out["limit"] = c.Limit
		}
	case Recommend:
		put("style", c.Style)
		put("occasion", c.Occasion)
		put("category", c.Category)
	case ShowTrends:
		put("category", c.Category)
		out["timeframe"] = c.TimeframeDays
	case CheckInventory:
		if c.ProductID != nil {
			out["product_id"] = *c.ProductID
		}
	case OrderHistory:
		put("timeframe", c.Timeframe)
	case Unknown:
		out["action"] = c.Name
		for k, v := range c.Params {
			out[k] = v
		}
	}
	return out
}
