package intent

import (
	"encoding/json"
	"regexp"
	"strings"

	"stylista-be/pkg/assistant/action"
)

var (
	flatObject = regexp.MustCompile(`\{[^{}]*\}`)
	codeFence  = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
)

// ParseResponse recovers an action object from free model output. It
// accepts the first object carrying a string "action" key and reports false
// when none can be found. Malformed input is never an error.
func ParseResponse(text string) (map[string]any, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}
	if m := codeFence.FindStringSubmatch(trimmed); m != nil {
		trimmed = m[1]
	}

	// 1. The whole reply is the object.
	if obj, ok := decodeObject(trimmed); ok {
		return obj, true
	}

	// 2. First balanced block mentioning the action key.
	for _, block := range balancedBlocks(trimmed) {
		if !strings.Contains(block, "action") {
			continue
		}
		if obj, ok := decodeObject(block); ok {
			return obj, true
		}
		break
	}

	// 3. Any flat block.
	for _, block := range flatObject.FindAllString(trimmed, -1) {
		if obj, ok := decodeObject(block); ok {
			return obj, true
		}
	}

	// 4. Clearly intended but malformed: keep only the action name.
	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "action") {
		name, named := firstActionName(lower)
		if named || strings.Contains(lower, "{") {
			if !named {
				name = string(action.KindSearchProducts)
			}
			return map[string]any{"action": name}, true
		}
	}

	return nil, false
}

func decodeObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	name, ok := obj["action"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return nil, false
	}
	return obj, true
}

// balancedBlocks returns every brace-balanced substring, outermost first in
// order of their opening brace. Braces inside JSON strings are skipped.
func balancedBlocks(s string) []string {
	var blocks []string
	for start := 0; start < len(s); start++ {
		if s[start] != '{' {
			continue
		}
		if end := matchBrace(s, start); end > 0 {
			blocks = append(blocks, s[start:end+1])
		}
	}
	return blocks
}

func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func firstActionName(lower string) (string, bool) {
	best, at := "", -1
	for _, k := range action.Known {
		if i := strings.Index(lower, string(k)); i >= 0 && (at < 0 || i < at) {
			best, at = string(k), i
		}
	}
	return best, at >= 0
}
