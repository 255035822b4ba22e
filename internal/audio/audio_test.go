package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"
)

func TestDecodePCM16(t *testing.T) {
	t.Run("known samples", func(t *testing.T) {
		// 0, 32767 (max), -32768 (min), -1 in little-endian.
		data := []byte{0x00, 0x00, 0xFF, 0x7F, 0x00, 0x80, 0xFF, 0xFF}
		samples := DecodePCM16(data)

		if len(samples) != 4 {
			t.Fatalf("len(samples) = %d, want 4", len(samples))
		}
		want := []float32{0, 32767.0 / 32768.0, -1, -1.0 / 32768.0}
		for i, w := range want {
			if samples[i] != w {
				t.Errorf("samples[%d] = %v, want %v", i, samples[i], w)
			}
		}
	})

	t.Run("odd trailing byte dropped", func(t *testing.T) {
		samples := DecodePCM16([]byte{0x00, 0x00, 0x12})
		if len(samples) != 1 {
			t.Errorf("len(samples) = %d, want 1", len(samples))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if len(DecodePCM16(nil)) != 0 {
			t.Error("expected no samples for empty input")
		}
	})
}

func TestEncodeWAV(t *testing.T) {
	var buf bytes.Buffer
	samples := []float32{0, 0.5, -0.5, 1, -1}
	if err := EncodeWAV(&buf, samples, 24000); err != nil {
		t.Fatalf("EncodeWAV returned error: %v", err)
	}

	out := buf.Bytes()
	if len(out) != 44+len(samples)*2 {
		t.Fatalf("len(out) = %d, want %d", len(out), 44+len(samples)*2)
	}
	if string(out[0:4]) != "RIFF" || string(out[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if rate := binary.LittleEndian.Uint32(out[24:28]); rate != 24000 {
		t.Errorf("sample rate = %d, want 24000", rate)
	}
	if ch := binary.LittleEndian.Uint16(out[22:24]); ch != 1 {
		t.Errorf("channels = %d, want 1", ch)
	}
	if size := binary.LittleEndian.Uint32(out[40:44]); size != uint32(len(samples)*2) {
		t.Errorf("data size = %d, want %d", size, len(samples)*2)
	}
}

type blockingSynth struct {
	release chan struct{}
	pcm     []byte
	err     error
}

func (s *blockingSynth) SynthesizeSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	if s.release != nil {
		<-s.release
	}
	return s.pcm, s.err
}

type recordingSink struct {
	mu      sync.Mutex
	samples []float32
	rate    int
	calls   int
}

func (s *recordingSink) Play(ctx context.Context, samples []float32, sampleRate int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = samples
	s.rate = sampleRate
	s.calls++
	return nil
}

func TestPlayerPlay(t *testing.T) {
	t.Run("delivers decoded waveform", func(t *testing.T) {
		synth := &blockingSynth{pcm: []byte{0x00, 0x00, 0xFF, 0x7F}}
		sink := &recordingSink{}
		player := NewPlayer(synth, 24000, nil)

		if err := player.Play(context.Background(), "hello", "", sink); err != nil {
			t.Fatalf("Play returned error: %v", err)
		}
		if sink.calls != 1 {
			t.Fatalf("sink calls = %d, want 1", sink.calls)
		}
		if len(sink.samples) != 2 || sink.rate != 24000 {
			t.Errorf("got %d samples at %d Hz, want 2 at 24000", len(sink.samples), sink.rate)
		}
	})

	t.Run("synthesis failure is a silent no-op", func(t *testing.T) {
		synth := &blockingSynth{err: errors.New("quota exceeded")}
		sink := &recordingSink{}
		player := NewPlayer(synth, 24000, nil)

		if err := player.Play(context.Background(), "hello", "", sink); err != nil {
			t.Errorf("Play returned error: %v, want nil", err)
		}
		if sink.calls != 0 {
			t.Error("sink should not be called on synthesis failure")
		}
	})

	t.Run("re-entrant call for the same text no-ops", func(t *testing.T) {
		synth := &blockingSynth{release: make(chan struct{}), pcm: []byte{0x00, 0x00}}
		sink := &recordingSink{}
		player := NewPlayer(synth, 24000, nil)

		done := make(chan error, 1)
		go func() {
			done <- player.Play(context.Background(), "hello", "", sink)
		}()

		// Wait until the first call holds the flag.
		for {
			player.mu.Lock()
			busy := player.inFlight["hello"]
			player.mu.Unlock()
			if busy {
				break
			}
		}

		if err := player.Play(context.Background(), "hello", "", sink); !errors.Is(err, ErrAlreadyPlaying) {
			t.Errorf("second Play error = %v, want ErrAlreadyPlaying", err)
		}

		close(synth.release)
		if err := <-done; err != nil {
			t.Errorf("first Play returned error: %v", err)
		}

		// Flag is released after completion.
		if err := player.Play(context.Background(), "hello", "", sink); err != nil {
			t.Errorf("Play after completion returned error: %v", err)
		}
	})

	t.Run("different texts play concurrently", func(t *testing.T) {
		synth := &blockingSynth{release: make(chan struct{}), pcm: []byte{0x00, 0x00}}
		sink := &recordingSink{}
		player := NewPlayer(synth, 24000, nil)

		go player.Play(context.Background(), "first", "", sink)
		for {
			player.mu.Lock()
			busy := player.inFlight["first"]
			player.mu.Unlock()
			if busy {
				break
			}
		}

		done := make(chan error, 1)
		go func() {
			done <- player.Play(context.Background(), "second", "", sink)
		}()
		close(synth.release)
		if err := <-done; err != nil {
			t.Errorf("Play for a different text returned %v, want nil", err)
		}
	})
}
