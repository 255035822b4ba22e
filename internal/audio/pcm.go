package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// DecodePCM16 converts raw little-endian 16-bit mono PCM into a normalized
// float32 waveform in the range [-1, 1]. A trailing odd byte is dropped.
func DecodePCM16(data []byte) []float32 {
	frames := len(data) / 2
	samples := make([]float32, frames)
	for i := 0; i < frames; i++ {
		s := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = float32(s) / 32768.0
	}
	return samples
}

// EncodeWAV writes a normalized waveform as a 16-bit mono PCM WAV stream.
func EncodeWAV(w io.Writer, samples []float32, sampleRate int) error {
	dataSize := len(samples) * 2

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(header[22:24], 1)  // mono
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*2)) // byte rate
	binary.LittleEndian.PutUint16(header[32:34], 2)                    // block align
	binary.LittleEndian.PutUint16(header[34:36], 16)                   // bits per sample
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	buf := make([]byte, dataSize)
	for i, sample := range samples {
		clamped := math.Max(-1, math.Min(1, float64(sample)))
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(clamped*32767)))
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}
	return nil
}
