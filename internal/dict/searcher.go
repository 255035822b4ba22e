// Package dict orchestrates dictionary lookups and story generation over
// the generation client.
package dict

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"popdict/internal/ai"
	"popdict/internal/imageutil"
	"popdict/internal/models"
)

// State tracks the lifecycle of the latest lookup.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// SearchFailedMessage is the generic user-facing message for a failed
// lookup. The internal cause is logged, never shown.
const SearchFailedMessage = "Oops! Something went wrong. Please try again."

// Searcher drives the request lifecycle for a single lookup: definition
// fetch, then best-effort image fetch, then entry assembly. Overlapping
// searches are permitted; each carries a sequence number and only the most
// recently issued one may update the observable state.
type Searcher struct {
	client       ai.Client
	nativeLang   models.Language
	targetLang   models.Language
	maxImageEdge int
	log          *slog.Logger

	mu      sync.Mutex
	seq     uint64
	state   State
	current *models.DictionaryEntry
	errMsg  string
}

// NewSearcher creates a Searcher for the given language pair. maxImageEdge
// bounds stored illustration size; zero disables shrinking.
func NewSearcher(client ai.Client, nativeLang, targetLang models.Language, maxImageEdge int, log *slog.Logger) *Searcher {
	if log == nil {
		log = slog.Default()
	}
	return &Searcher{
		client:       client,
		nativeLang:   nativeLang,
		targetLang:   targetLang,
		maxImageEdge: maxImageEdge,
		log:          log,
	}
}

// Search performs one lookup. Empty (after trimming) input is rejected
// silently: no state transition, no external call, nil result. A definition
// failure returns the error and leaves the searcher in Failure with the
// generic message; image absence never fails the search.
func (s *Searcher) Search(ctx context.Context, rawTerm string) (*models.DictionaryEntry, error) {
	term := strings.TrimSpace(rawTerm)
	if term == "" {
		return nil, nil
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.state = StateLoading
	s.current = nil
	s.errMsg = ""
	s.mu.Unlock()

	def, err := s.client.GenerateDefinition(ctx, term, s.nativeLang, s.targetLang)
	if err != nil {
		s.log.Error("definition fetch failed", slog.String("term", term), slog.Any("err", err))
		s.finish(seq, StateFailure, nil, SearchFailedMessage)
		return nil, fmt.Errorf("search %q: %w", term, err)
	}

	description := fmt.Sprintf("%s (%s) - %s", def.Term, s.targetLang, def.Definition)
	imageURI, err := s.client.GenerateConceptImage(ctx, description)
	if err != nil {
		// An entry without an illustration is a fully valid result.
		s.log.Debug("image fetch failed", slog.String("term", def.Term), slog.Any("err", err))
		imageURI = ""
	}
	if imageURI != "" {
		imageURI = imageutil.ShrinkDataURI(imageURI, s.maxImageEdge)
	}

	usageNote := def.UsageNote
	entry := &models.DictionaryEntry{
		ID:             uuid.NewString(),
		Term:           def.Term,
		NativeLanguage: s.nativeLang,
		TargetLanguage: s.targetLang,
		Definition:     def.Definition,
		UsageNote:      &usageNote,
		Examples:       def.Examples,
		ImageBase64:    imageURI,
		Timestamp:      time.Now().UnixMilli(),
	}

	s.finish(seq, StateSuccess, entry, "")
	return entry, nil
}

// finish publishes the outcome unless a newer search has been issued, in
// which case the stale result is discarded.
func (s *Searcher) finish(seq uint64, state State, entry *models.DictionaryEntry, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return
	}
	s.state = state
	s.current = entry
	s.errMsg = errMsg
}

// State returns the lifecycle state of the latest issued search.
func (s *Searcher) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the entry held by a successful search, or nil.
func (s *Searcher) Current() *models.DictionaryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// ErrorMessage returns the user-facing message of a failed search, or "".
func (s *Searcher) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
