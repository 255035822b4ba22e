package dict

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"popdict/internal/ai"
	"popdict/internal/models"
)

// MinStoryEntries is the smallest notebook for which story generation is
// offered. Callers enforce it; the generator itself accepts any input.
const MinStoryEntries = 3

// maxStoryTerms caps how many notebook terms go into one story. The store
// is newest-first, so the cap biases toward recently saved terms.
const maxStoryTerms = 10

// StoryFallback is returned whenever the service fails or produces nothing.
// Story generation is decorative and never fatal.
const StoryFallback = "Could not generate a story right now."

// StoryGenerator synthesizes a short mnemonic narrative from saved terms.
type StoryGenerator struct {
	client     ai.Client
	targetLang models.Language
	log        *slog.Logger
}

// NewStoryGenerator creates a StoryGenerator writing in targetLang.
func NewStoryGenerator(client ai.Client, targetLang models.Language, log *slog.Logger) *StoryGenerator {
	if log == nil {
		log = slog.Default()
	}
	return &StoryGenerator{client: client, targetLang: targetLang, log: log}
}

// Generate returns a story using up to the first 10 entries' terms, with key
// vocabulary marked as **term**. The result is always non-empty.
func (g *StoryGenerator) Generate(ctx context.Context, entries []models.DictionaryEntry) string {
	if len(entries) > maxStoryTerms {
		entries = entries[:maxStoryTerms]
	}
	terms := make([]string, len(entries))
	for i, e := range entries {
		terms[i] = e.Term
	}

	story, err := g.client.GenerateText(ctx, storyPrompt(terms, g.targetLang))
	if err != nil {
		g.log.Warn("story generation failed", slog.Any("err", err))
		return StoryFallback
	}
	if story == "" {
		return StoryFallback
	}
	return story
}

func storyPrompt(terms []string, targetLang models.Language) string {
	return fmt.Sprintf(`Write a short, funny, and memorable story using the following words: %s.
The story should be in %s.
Highlight the key words in **bold**. Keep it under 150 words.`,
		strings.Join(terms, ", "), targetLang)
}
