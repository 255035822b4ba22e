package ai

import (
	"fmt"

	"popdict/internal/models"
)

func definitionPrompt(term string, nativeLang, targetLang models.Language) string {
	return fmt.Sprintf(`You are a fun, helpful AI dictionary.
The user is looking up the term: %q.

Your Task:
1. **Detect Language**: Determine if the input %q is %s or %s.
2. **Normalize to %s**:
   - If the input is %s, translate it to the most common and natural %s word/phrase. This is your Main Term.
   - If the input is %s, use it directly as the Main Term.
3. **Generate Entry**: Create a dictionary entry for this Main Term.

Requirements for fields:
- **term**: The Main Term in %s.
- **definition**: A clear, natural language definition of the Main Term in %s.
- **usageNote**: A fun, lively, and casual explanation in %s. Explain cultural nuance, usage context, tone, related words (synonyms/confusing words), or common grammar. Talk like a knowledgeable friend, not a textbook. Be concise. Get straight to the point.
- **examples**: 2 example sentences using the Main Term in %s.
- **examples.translated**: The %s translation of the example sentence.
- **imagePrompt**: A simple visual description for an image generator.`,
		term,
		term, nativeLang, targetLang,
		targetLang,
		nativeLang, targetLang,
		targetLang,
		targetLang,
		targetLang,
		targetLang,
		targetLang,
		nativeLang,
	)
}

func conceptImagePrompt(description string) string {
	return fmt.Sprintf("Generate a bright, colorful, pop-art style illustration for: %s. minimalistic, vector art style.", description)
}
