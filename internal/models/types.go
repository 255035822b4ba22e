package models

import "time"

// Language identifies a human language used as entry metadata.
type Language string

const (
	LanguageEnglish  Language = "English"
	LanguageSpanish  Language = "Spanish"
	LanguageFrench   Language = "French"
	LanguageMandarin Language = "Mandarin Chinese"
	LanguageHindi    Language = "Hindi"
	LanguageJapanese Language = "Japanese"
)

// ExampleSentence pairs a sentence in the target language with its
// translation into the native language.
type ExampleSentence struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
}

// DictionaryEntry is one complete dictionary record. Entries are immutable
// after creation; only their membership in the notebook changes.
type DictionaryEntry struct {
	ID             string   `json:"id"`
	Term           string   `json:"term"`
	NativeLanguage Language `json:"nativeLanguage"`
	TargetLanguage Language `json:"targetLanguage"`
	Definition     string   `json:"definition"`

	// UsageNote is optional; nil means the service provided none, which is
	// distinct from an empty note.
	UsageNote *string `json:"usageNote,omitempty"`

	Examples []ExampleSentence `json:"examples"`

	// ImageBase64 holds a data: URI. Empty means no illustration; the
	// presentation layer renders a placeholder, never an error.
	ImageBase64 string `json:"imageBase64,omitempty"`

	// Timestamp is creation time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// CreatedAt returns the entry's creation time.
func (e DictionaryEntry) CreatedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}
