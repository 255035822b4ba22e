package ai

import (
	"context"
	"fmt"

	"popdict/internal/models"
)

// DefinitionResult is the normalized shape of a structured definition lookup.
type DefinitionResult struct {
	Term        string                   `json:"term"`
	Definition  string                   `json:"definition"`
	UsageNote   string                   `json:"usageNote"`
	ImagePrompt string                   `json:"imagePrompt"`
	Examples    []models.ExampleSentence `json:"examples"`
}

// Client defines the interface for generative-AI providers.
type Client interface {
	// GenerateDefinition looks up a raw search string and returns a
	// schema-validated dictionary result. The service detects whether the
	// input is in the native or target language and normalizes the headword
	// to the target language.
	GenerateDefinition(ctx context.Context, term string, nativeLang, targetLang models.Language) (*DefinitionResult, error)

	// GenerateConceptImage synthesizes an illustration for the given
	// description and returns it as a data: URI. Callers must treat any
	// error as "no image", never as a failure of the surrounding operation.
	GenerateConceptImage(ctx context.Context, description string) (string, error)

	// SynthesizeSpeech converts text to speech and returns raw 16-bit
	// little-endian mono PCM at SampleRate.
	SynthesizeSpeech(ctx context.Context, text, voice string) ([]byte, error)

	// GenerateText runs a plain free-text generation request.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// SampleRate is the PCM sample rate of synthesized speech.
const SampleRate = 24000

// MalformedResponseError reports a definition response that did not conform
// to the requested schema.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed definition response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed definition response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
