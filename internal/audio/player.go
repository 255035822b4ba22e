package audio

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrAlreadyPlaying reports a re-entrant play request for text that is still
// being synthesized or played. Callers treat it as a no-op.
var ErrAlreadyPlaying = errors.New("audio: already playing")

// Synthesizer produces raw 16-bit LE mono PCM for the given text.
type Synthesizer interface {
	SynthesizeSpeech(ctx context.Context, text, voice string) ([]byte, error)
}

// Sink consumes a normalized waveform. The playback runs once to completion
// or is abandoned; there is no loop, seek, pause, or resume.
type Sink interface {
	Play(ctx context.Context, samples []float32, sampleRate int) error
}

// Player drives speech playback. Each text gets its own in-flight flag:
// a second request for the same text while one is active no-ops, while
// requests for different texts run concurrently.
type Player struct {
	tts        Synthesizer
	sampleRate int
	log        *slog.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewPlayer creates a Player on the given synthesizer.
func NewPlayer(tts Synthesizer, sampleRate int, log *slog.Logger) *Player {
	if log == nil {
		log = slog.Default()
	}
	return &Player{
		tts:        tts,
		sampleRate: sampleRate,
		log:        log,
		inFlight:   make(map[string]bool),
	}
}

// Play synthesizes text and feeds the decoded waveform to sink. Any failure
// after the in-flight guard is a silent no-op: nothing reaches the sink and
// no error is returned.
func (p *Player) Play(ctx context.Context, text, voice string, sink Sink) error {
	p.mu.Lock()
	if p.inFlight[text] {
		p.mu.Unlock()
		return ErrAlreadyPlaying
	}
	p.inFlight[text] = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.inFlight, text)
		p.mu.Unlock()
	}()

	pcm, err := p.tts.SynthesizeSpeech(ctx, text, voice)
	if err != nil {
		p.log.Debug("speech synthesis failed", slog.String("text", text), slog.Any("err", err))
		return nil
	}
	if len(pcm) == 0 {
		return nil
	}

	samples := DecodePCM16(pcm)
	if err := sink.Play(ctx, samples, p.sampleRate); err != nil {
		p.log.Debug("playback failed", slog.String("text", text), slog.Any("err", err))
	}
	return nil
}
