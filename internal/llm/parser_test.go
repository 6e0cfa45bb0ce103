package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyay-app/vyay/internal/common"
)

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bare JSON passes through",
			content: `{"category": "food", "cost": "12.5", "item": "pizza"}`,
			want:    `{"category": "food", "cost": "12.5", "item": "pizza"}`,
		},
		{
			name:    "fenced block with language tag",
			content: "```json\n{\"category\": \"food\", \"cost\": \"12.5\", \"item\": \"pizza\"}\n```",
			want:    `{"category": "food", "cost": "12.5", "item": "pizza"}`,
		},
		{
			name:    "fenced block without language tag",
			content: "```\n{\"category\": \"food\", \"cost\": \"1\", \"item\": \"tea\"}\n```",
			want:    `{"category": "food", "cost": "1", "item": "tea"}`,
		},
		{
			name:    "surrounding whitespace trimmed",
			content: "  \n{\"category\": \"a\", \"cost\": \"1\", \"item\": \"b\"}\n  ",
			want:    `{"category": "a", "cost": "1", "item": "b"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownWrapper(tt.content))
		})
	}
}

func TestParseExtraction(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantCategory string
		wantItem     string
		wantCost     string
		wantErr      bool
	}{
		{
			name:         "valid payload",
			content:      `{"category": "food", "cost": "12.5", "item": "pizza"}`,
			wantCategory: "food",
			wantItem:     "pizza",
			wantCost:     "12.5",
		},
		{
			name:         "fenced payload",
			content:      "```json\n{\"category\": \"transport\", \"cost\": \"2.75\", \"item\": \"bus ticket\"}\n```",
			wantCategory: "transport",
			wantItem:     "bus ticket",
			wantCost:     "2.75",
		},
		{
			name:    "not JSON at all",
			content: "I could not understand that expense.",
			wantErr: true,
		},
		{
			name:    "missing category",
			content: `{"cost": "12.5", "item": "pizza"}`,
			wantErr: true,
		},
		{
			name:    "missing cost",
			content: `{"category": "food", "item": "pizza"}`,
			wantErr: true,
		},
		{
			name:    "missing item",
			content: `{"category": "food", "cost": "12.5"}`,
			wantErr: true,
		},
		{
			name:    "empty values",
			content: `{"category": "", "cost": "", "item": ""}`,
			wantErr: true,
		},
		{
			name:    "non-numeric cost",
			content: `{"category": "food", "cost": "a lot", "item": "pizza"}`,
			wantErr: true,
		},
		{
			name:    "cost as JSON number is rejected",
			content: `{"category": "food", "cost": 12.5, "item": "pizza"}`,
			wantErr: true,
		},
		{
			name:    "empty string",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseExtraction(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, common.ErrValidation),
					"expected a validation error, got %v", err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCategory, parsed.Category)
			assert.Equal(t, tt.wantItem, parsed.Item)
			assert.Equal(t, tt.wantCost, parsed.Cost.String())
		})
	}
}
