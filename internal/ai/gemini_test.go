package ai

import (
	"errors"
	"strings"
	"testing"

	"popdict/internal/models"
)

func TestDecodeDefinition(t *testing.T) {
	valid := `{
		"term": "procrastinate",
		"definition": "To delay doing something that should be done.",
		"usageNote": "Everyone does it, nobody admits it.",
		"imagePrompt": "a person napping next to a pile of paperwork",
		"examples": [
			{"original": "I procrastinate before every deadline.", "translated": "每个截止日期前我都会拖延。"},
			{"original": "Stop procrastinating and start writing.", "translated": "别拖延了，开始写吧。"}
		]
	}`

	t.Run("valid payload", func(t *testing.T) {
		result, err := decodeDefinition(valid, "拖延")
		if err != nil {
			t.Fatalf("decodeDefinition returned error: %v", err)
		}
		if result.Term != "procrastinate" {
			t.Errorf("Term = %q, want %q", result.Term, "procrastinate")
		}
		if result.Definition == "" {
			t.Error("Definition should not be empty")
		}
		if len(result.Examples) != 2 {
			t.Errorf("len(Examples) = %d, want 2", len(result.Examples))
		}
		if result.Examples[0].Translated == "" {
			t.Error("example translation should not be empty")
		}
	})

	t.Run("term falls back to raw input", func(t *testing.T) {
		payload := `{"definition": "d", "usageNote": "u", "imagePrompt": "p", "examples": []}`
		result, err := decodeDefinition(payload, "拖延")
		if err != nil {
			t.Fatalf("decodeDefinition returned error: %v", err)
		}
		if result.Term != "拖延" {
			t.Errorf("Term = %q, want raw input fallback", result.Term)
		}
	})

	t.Run("empty examples are allowed", func(t *testing.T) {
		payload := `{"term": "x", "definition": "d", "usageNote": "", "imagePrompt": "p", "examples": []}`
		result, err := decodeDefinition(payload, "x")
		if err != nil {
			t.Fatalf("decodeDefinition returned error: %v", err)
		}
		if len(result.Examples) != 0 {
			t.Errorf("len(Examples) = %d, want 0", len(result.Examples))
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := decodeDefinition("The word means...", "x")
		var malformed *MalformedResponseError
		if !errors.As(err, &malformed) {
			t.Fatalf("error = %v, want *MalformedResponseError", err)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		cases := map[string]string{
			"definition":  `{"term": "x", "usageNote": "u", "imagePrompt": "p", "examples": []}`,
			"usageNote":   `{"term": "x", "definition": "d", "imagePrompt": "p", "examples": []}`,
			"imagePrompt": `{"term": "x", "definition": "d", "usageNote": "u", "examples": []}`,
			"examples":    `{"term": "x", "definition": "d", "usageNote": "u", "imagePrompt": "p"}`,
		}
		for field, payload := range cases {
			_, err := decodeDefinition(payload, "x")
			var malformed *MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Errorf("missing %s: error = %v, want *MalformedResponseError", field, err)
				continue
			}
			if !strings.Contains(malformed.Reason, field) {
				t.Errorf("missing %s: reason = %q, should name the field", field, malformed.Reason)
			}
		}
	})
}

func TestDefinitionPrompt(t *testing.T) {
	prompt := definitionPrompt("苹果", models.LanguageMandarin, models.LanguageEnglish)

	if !strings.Contains(prompt, `"苹果"`) {
		t.Error("prompt should contain the quoted search term")
	}
	if !strings.Contains(prompt, string(models.LanguageMandarin)) {
		t.Error("prompt should name the native language")
	}
	if !strings.Contains(prompt, string(models.LanguageEnglish)) {
		t.Error("prompt should name the target language")
	}
}
