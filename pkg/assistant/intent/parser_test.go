package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   map[string]any
		wantOK bool
	}{
		{
			name:   "bare object",
			input:  `{"action": "search_products", "category": "Jeans"}`,
			want:   map[string]any{"action": "search_products", "category": "Jeans"},
			wantOK: true,
		},
		{
			name:   "code fence",
			input:  "```json\n{\"action\": \"show_trends\"}\n```",
			want:   map[string]any{"action": "show_trends"},
			wantOK: true,
		},
		{
			name:   "surrounding prose",
			input:  `Sure! Here you go: {"action": "show_trends", "category": "Intimates"} Enjoy`,
			want:   map[string]any{"action": "show_trends", "category": "Intimates"},
			wantOK: true,
		},
		{
			name:   "nested object in prose",
			input:  `Result: {"action":"search_products","meta":{"x":1}} done`,
			want:   map[string]any{"action": "search_products", "meta": map[string]any{"x": float64(1)}},
			wantOK: true,
		},
		{
			name:   "later flat block",
			input:  `{"action": broken} or maybe {"action": "order_history"}`,
			want:   map[string]any{"action": "order_history"},
			wantOK: true,
		},
		{
			name:   "truncated object keeps the action name",
			input:  `{"action": "recommend_products", "style": "cas`,
			want:   map[string]any{"action": "recommend_products"},
			wantOK: true,
		},
		{
			name:   "named action without braces",
			input:  `I would pick the action check_inventory for that`,
			want:   map[string]any{"action": "check_inventory"},
			wantOK: true,
		},
		{
			name:   "brace without a known name",
			input:  `{action => ???`,
			want:   map[string]any{"action": "search_products"},
			wantOK: true,
		},
		{
			name:  "object lacking action",
			input: `{"category": "Jeans"}`,
		},
		{
			name:  "plain prose",
			input: "Hello! How can I help you today?",
		},
		{
			name:  "empty",
			input: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseResponse(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseResponse_NeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"{",
		"}}}{{{",
		"{{{{ action",
		"\x00\xff\xfe{\"action\"",
		`{"action": "\u00zz"}`,
		`"unterminated {"action": "x`,
		string([]byte{0xde, 0xad, 0xbe, 0xef}),
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { ParseResponse(in) }, "%q", in)
	}
}
