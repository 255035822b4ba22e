package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"popdict/internal/audio"
	"popdict/internal/dict"
	"popdict/internal/models"
	"popdict/internal/notebook"
	"popdict/internal/study"
)

// Handlers exposes the core operations to the presentation layer.
type Handlers struct {
	searcher *dict.Searcher
	story    *dict.StoryGenerator
	notebook *notebook.Store
	session  *study.Session
	player   *audio.Player
	log      *slog.Logger
}

// NewHandlers creates the handler set over the injected core.
func NewHandlers(searcher *dict.Searcher, story *dict.StoryGenerator, nb *notebook.Store, session *study.Session, player *audio.Player, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{
		searcher: searcher,
		story:    story,
		notebook: nb,
		session:  session,
		player:   player,
		log:      log,
	}
}

// Register mounts all API routes on mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/search", h.SearchHandler)
	mux.HandleFunc("/api/notebook", h.NotebookHandler)
	mux.HandleFunc("/api/notebook/save", h.SaveHandler)
	mux.HandleFunc("/api/story", h.StoryHandler)
	mux.HandleFunc("/api/study", h.StudyHandler)
	mux.HandleFunc("/api/study/", h.StudyHandler)
	mux.HandleFunc("/api/speech", h.SpeechHandler)
}

func (h *Handlers) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Term string `json:"term"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Term) == "" {
		http.Error(w, "Empty search term", http.StatusBadRequest)
		return
	}

	entry, err := h.searcher.Search(r.Context(), req.Term)
	if err != nil {
		http.Error(w, dict.SearchFailedMessage, http.StatusBadGateway)
		return
	}

	json.NewEncoder(w).Encode(entry)
}

func (h *Handlers) SaveHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	current := h.searcher.Current()
	if current == nil {
		http.Error(w, "No search result to save", http.StatusConflict)
		return
	}

	added, err := h.notebook.Add(*current)
	if err != nil {
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}

	if added {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(map[string]bool{"saved": added})
}

func (h *Handlers) NotebookHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		entries := h.notebook.Entries()
		if entries == nil {
			entries = []models.DictionaryEntry{}
		}
		json.NewEncoder(w).Encode(entries)

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "Invalid entry ID", http.StatusBadRequest)
			return
		}
		if err := h.notebook.Remove(id); err != nil {
			http.Error(w, "Storage error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handlers) StoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries := h.notebook.Entries()
	if len(entries) < dict.MinStoryEntries {
		http.Error(w, "Save at least 3 words first", http.StatusConflict)
		return
	}

	story := h.story.Generate(r.Context(), entries)
	json.NewEncoder(w).Encode(map[string]string{"story": story})
}

func (h *Handlers) StudyHandler(w http.ResponseWriter, r *http.Request) {
	action := strings.TrimPrefix(r.URL.Path, "/api/study")
	action = strings.Trim(action, "/")

	if action == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		json.NewEncoder(w).Encode(h.session.Current())
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch action {
	case "start":
		if !h.session.Start(h.notebook.Entries()) {
			http.Error(w, "Notebook is empty", http.StatusConflict)
			return
		}
	case "next":
		h.session.Next()
	case "previous":
		h.session.Previous()
	case "flip":
		h.session.Flip()
	case "exit":
		h.session.Exit()
	default:
		http.Error(w, "Unknown study action", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(h.session.Current())
}

// SpeechHandler synthesizes speech for ?text= and streams it as WAV. Every
// failure mode answers 204: playback problems never surface as errors.
func (h *Handlers) SpeechHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	text := r.URL.Query().Get("text")
	if strings.TrimSpace(text) == "" {
		http.Error(w, "Missing text", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	err := h.player.Play(r.Context(), text, r.URL.Query().Get("voice"), wavSink{&buf})
	if err != nil || buf.Len() == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	io.Copy(w, &buf)
}

// wavSink encodes the waveform as a WAV stream; the browser's audio element
// is the actual output device.
type wavSink struct {
	w io.Writer
}

func (s wavSink) Play(ctx context.Context, samples []float32, sampleRate int) error {
	return audio.EncodeWAV(s.w, samples, sampleRate)
}
