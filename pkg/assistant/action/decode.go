package action

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidCommand marks a structurally valid object that fails the
// schema of its action kind.
var ErrInvalidCommand = errors.New("invalid action command")

var (
	leadingNumber = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	digitsOnly    = regexp.MustCompile(`\d+`)
)

// Decode validates a parsed model object and converts it to a Command.
// The object must carry a string "action" key.
func Decode(raw map[string]any) (Command, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty object", ErrInvalidCommand)
	}
	name, ok := raw["action"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: action must be a string", ErrInvalidCommand)
	}
	name = strings.ToLower(strings.TrimSpace(name))

	switch Kind(name) {
	case KindSearchProducts:
		return decodeSearch(raw)
	case KindRecommend:
		return decodeRecommend(raw)
	case KindShowTrends:
		return decodeTrends(raw)
	case KindCheckInventory:
		return decodeInventory(raw)
	case KindOrderHistory:
		return decodeOrderHistory(raw)
	case KindNoAction, "none":
		return NoAction{}, nil
	case "":
		return nil, fmt.Errorf("%w: action is empty", ErrInvalidCommand)
	}

	params := make(map[string]any, len(raw))
	for k, v := range raw {
		if k != "action" {
			params[k] = v
		}
	}
	return Unknown{Name: name, Params: params}, nil
}

func decodeSearch(raw map[string]any) (Command, error) {
	var (
		cmd SearchProducts
		err error
	)
	if cmd.Category, err = stringField(raw, "category"); err != nil {
		return nil, err
	}
	if cmd.Brand, err = stringField(raw, "brand"); err != nil {
		return nil, err
	}
	if cmd.Department, err = stringField(raw, "department"); err != nil {
		return nil, err
	}
	if cmd.Query, err = stringField(raw, "query"); err != nil {
		return nil, err
	}
	if cmd.MinPrice, err = priceField(raw, "min_price"); err != nil {
		return nil, err
	}
	if cmd.MaxPrice, err = priceField(raw, "max_price"); err != nil {
		return nil, err
	}
	if cmd.MinPrice != nil && cmd.MaxPrice != nil && *cmd.MinPrice > *cmd.MaxPrice {
		return nil, fmt.Errorf("%w: min_price %.2f exceeds max_price %.2f", ErrInvalidCommand, *cmd.MinPrice, *cmd.MaxPrice)
	}

	limit, present, err := numberField(raw, "limit")
	if err != nil {
		return nil, err
	}
	if present {
		if limit < 1 || limit != math.Trunc(limit) {
			return nil, fmt.Errorf("%w: limit must be a positive integer", ErrInvalidCommand)
		}
		cmd.Limit = int(math.Min(limit, MaxLimit))
	}
	return cmd, nil
}

func decodeRecommend(raw map[string]any) (Command, error) {
	var (
		cmd Recommend
		err error
	)
	if cmd.Style, err = stringField(raw, "style"); err != nil {
		return nil, err
	}
	if cmd.Occasion, err = stringField(raw, "occasion"); err != nil {
		return nil, err
	}
	if cmd.Category, err = stringField(raw, "category"); err != nil {
		return nil, err
	}
	cmd.Style = strings.ToLower(cmd.Style)
	cmd.Occasion = strings.ToLower(cmd.Occasion)
	return cmd, nil
}

func decodeTrends(raw map[string]any) (Command, error) {
	category, err := stringField(raw, "category")
	if err != nil {
		return nil, err
	}
	tf, ok := raw["timeframe"]
	if !ok {
		tf = raw["timeframe_days"]
	}
	days, err := timeframeValue(tf, DefaultTrendDays)
	if err != nil {
		return nil, err
	}
	return ShowTrends{Category: category, TimeframeDays: days}, nil
}

func decodeInventory(raw map[string]any) (Command, error) {
	id, present, err := numberField(raw, "product_id")
	if err != nil {
		return nil, err
	}
	if !present {
		return CheckInventory{}, nil
	}
	if id < 1 || id != math.Trunc(id) || id >= math.MaxInt64 {
		return nil, fmt.Errorf("%w: product_id must be a positive integer", ErrInvalidCommand)
	}
	return CheckInventory{ProductID: Int64(int64(id))}, nil
}

func decodeOrderHistory(raw map[string]any) (Command, error) {
	v, ok := raw["timeframe"]
	if !ok || v == nil {
		return OrderHistory{}, nil
	}
	days, err := timeframeValue(v, DefaultTrendDays)
	if err != nil {
		return nil, err
	}
	label := strings.TrimSpace(fmt.Sprint(v))
	return OrderHistory{Timeframe: label, TimeframeDays: days}, nil
}

// ParseTimeframeDays converts a timeframe expression ("7", "2 weeks",
// "recent", "month") to a day count in [1, 365]. Empty input yields def.
func ParseTimeframeDays(s string, def int) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return clampDays(def)
	}
	unit := 1
	switch {
	case strings.Contains(s, "week"):
		unit = 7
	case strings.Contains(s, "month"):
		unit = 30
	case strings.Contains(s, "quarter"):
		unit = 90
	case strings.Contains(s, "year"):
		unit = 365
	}
	if m := digitsOnly.FindString(s); m != "" {
		n, err := strconv.Atoi(m)
		if err == nil {
			return clampDays(n * unit)
		}
	}
	if unit > 1 {
		return clampDays(unit)
	}
	return clampDays(def)
}

func timeframeValue(v any, def int) (int, error) {
	switch t := v.(type) {
	case nil:
		return clampDays(def), nil
	case string:
		return ParseTimeframeDays(t, def), nil
	case float64:
		return clampDays(int(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: timeframe: %v", ErrInvalidCommand, err)
		}
		return clampDays(int(f)), nil
	case int:
		return clampDays(t), nil
	}
	return 0, fmt.Errorf("%w: timeframe has unsupported type %T", ErrInvalidCommand, v)
}

func clampDays(d int) int {
	if d < 1 {
		return 1
	}
	if d > 365 {
		return 365
	}
	return d
}

func stringField(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidCommand, key, v)
	}
	return strings.TrimSpace(s), nil
}

func priceField(raw map[string]any, key string) (*float64, error) {
	f, present, err := numberField(raw, key)
	if err != nil || !present {
		return nil, err
	}
	if f < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidCommand, key)
	}
	return Float(f), nil
}

// numberField accepts JSON numbers and numeric strings such as "$49.99".
func numberField(raw map[string]any, key string) (float64, bool, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch t := v.(type) {
	case float64:
		return t, true, nil
	case int:
		return float64(t), true, nil
	case int64:
		return float64(t), true, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false, fmt.Errorf("%w: %s: %v", ErrInvalidCommand, key, err)
		}
		return f, true, nil
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return 0, false, nil
		}
		m := leadingNumber.FindString(strings.ReplaceAll(trimmed, ",", ""))
		if m == "" {
			return 0, false, fmt.Errorf("%w: %s is not numeric: %q", ErrInvalidCommand, key, t)
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0, false, fmt.Errorf("%w: %s: %v", ErrInvalidCommand, key, err)
		}
		return f, true, nil
	}
	return 0, false, fmt.Errorf("%w: %s has unsupported type %T", ErrInvalidCommand, key, v)
}
