package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"popdict/internal/models"

	"google.golang.org/genai"
)

const (
	defaultTextModel  = "gemini-2.5-flash"
	defaultImageModel = "gemini-2.5-flash-image"
	defaultTTSModel   = "gemini-2.5-flash-preview-tts"

	// DefaultVoice is the prebuilt voice used when a caller passes none.
	DefaultVoice = "Kore"
)

// GeminiClient implements the Client interface using the Gemini API.
type GeminiClient struct {
	client     *genai.Client
	textModel  string
	imageModel string
	ttsModel   string
	voice      string
}

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey     string
	TextModel  string // e.g., "gemini-2.5-flash"
	ImageModel string // model that returns inline image data
	TTSModel   string // model that returns inline PCM audio
	Voice      string // prebuilt voice name
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &GeminiClient{
		client:     client,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		ttsModel:   cfg.TTSModel,
		voice:      cfg.Voice,
	}
	if c.textModel == "" {
		c.textModel = defaultTextModel
	}
	if c.imageModel == "" {
		c.imageModel = defaultImageModel
	}
	if c.ttsModel == "" {
		c.ttsModel = defaultTTSModel
	}
	if c.voice == "" {
		c.voice = DefaultVoice
	}
	return c, nil
}

// definitionSchema constrains the definition response so the service returns
// exactly the fields of DefinitionResult.
var definitionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"term":        {Type: genai.TypeString, Description: "The main word/phrase in the target language"},
		"definition":  {Type: genai.TypeString, Description: "Definition in the target language"},
		"usageNote":   {Type: genai.TypeString, Description: "Fun, casual usage explanation"},
		"imagePrompt": {Type: genai.TypeString, Description: "Visual description for image generation"},
		"examples": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"original":   {Type: genai.TypeString, Description: "Example sentence in the target language"},
					"translated": {Type: genai.TypeString, Description: "Translation into the native language"},
				},
				Required: []string{"original", "translated"},
			},
		},
	},
	Required: []string{"term", "definition", "usageNote", "examples", "imagePrompt"},
}

// GenerateDefinition looks up a term and returns a validated dictionary result.
func (c *GeminiClient) GenerateDefinition(ctx context.Context, term string, nativeLang, targetLang models.Language) (*DefinitionResult, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.textModel,
		genai.Text(definitionPrompt(term, nativeLang, targetLang)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   definitionSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("definition request for %q: %w", term, err)
	}

	text := firstText(resp)
	if text == "" {
		return nil, &MalformedResponseError{Reason: "no text in response"}
	}
	return decodeDefinition(text, term)
}

// decodeDefinition parses the service's JSON payload and enforces the
// response contract. term is the raw search string, used as the fallback
// headword when the service omits one.
func decodeDefinition(text, term string) (*DefinitionResult, error) {
	var payload struct {
		Term        *string                  `json:"term"`
		Definition  *string                  `json:"definition"`
		UsageNote   *string                  `json:"usageNote"`
		ImagePrompt *string                  `json:"imagePrompt"`
		Examples    []models.ExampleSentence `json:"examples"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &MalformedResponseError{Reason: "not valid JSON", Err: err}
	}

	switch {
	case payload.Definition == nil || *payload.Definition == "":
		return nil, &MalformedResponseError{Reason: "missing definition"}
	case payload.UsageNote == nil:
		return nil, &MalformedResponseError{Reason: "missing usageNote"}
	case payload.ImagePrompt == nil:
		return nil, &MalformedResponseError{Reason: "missing imagePrompt"}
	case payload.Examples == nil:
		return nil, &MalformedResponseError{Reason: "missing examples"}
	}

	result := &DefinitionResult{
		Definition:  *payload.Definition,
		UsageNote:   *payload.UsageNote,
		ImagePrompt: *payload.ImagePrompt,
		Examples:    payload.Examples,
	}
	// Use the normalized headword, falling back to the raw input.
	if payload.Term != nil && *payload.Term != "" {
		result.Term = *payload.Term
	} else {
		result.Term = term
	}
	return result, nil
}

// GenerateConceptImage synthesizes an illustration and returns it as a data: URI.
func (c *GeminiClient) GenerateConceptImage(ctx context.Context, description string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.imageModel,
		genai.Text(conceptImagePrompt(description)), nil)
	if err != nil {
		return "", fmt.Errorf("image request: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && strings.HasPrefix(part.InlineData.MIMEType, "image/") {
				return fmt.Sprintf("data:%s;base64,%s",
					part.InlineData.MIMEType,
					base64.StdEncoding.EncodeToString(part.InlineData.Data)), nil
			}
		}
	}
	return "", fmt.Errorf("no image in response")
}

// SynthesizeSpeech converts text to raw 16-bit LE mono PCM at SampleRate.
func (c *GeminiClient) SynthesizeSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	if voice == "" {
		voice = c.voice
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.ttsModel,
		genai.Text(text),
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("speech request: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}
	return nil, fmt.Errorf("no audio in response")
}

// GenerateText runs a plain free-text generation request.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("text request: %w", err)
	}
	if text := firstText(resp); text != "" {
		return text, nil
	}
	return "", fmt.Errorf("empty response")
}

// firstText extracts the first text part from the first candidate.
func firstText(resp *genai.GenerateContentResponse) string {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text
			}
		}
	}
	return ""
}
