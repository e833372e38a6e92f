// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/heartbpm/audio"
	"github.com/ik5/heartbpm/internal/audiotest"
)

func decodeAll(t *testing.T, data []byte) (audio.Source, []float32) {
	t.Helper()

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	samples, err := audio.ReadAll(src, 64, 0)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	return src, samples
}

func TestDecoder_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  audiotest.WAVHeader
		samples []int
		want    []float32
	}{
		{
			name:    "16-bit mono",
			header:  audiotest.WAVHeader{SampleRate: 8000, Channels: 1, BitDepth: 16, Format: audiotest.FormatPCM},
			samples: []int{0, 16384, -16384, -32768},
			want:    []float32{0, 0.5, -0.5, -1},
		},
		{
			name:    "16-bit stereo",
			header:  audiotest.WAVHeader{SampleRate: 44100, Channels: 2, BitDepth: 16, Format: audiotest.FormatPCM},
			samples: []int{8192, -8192, 0, 16384},
			want:    []float32{0.25, -0.25, 0, 0.5},
		},
		{
			name:    "24-bit",
			header:  audiotest.WAVHeader{SampleRate: 48000, Channels: 1, BitDepth: 24, Format: audiotest.FormatPCM},
			samples: []int{0, 4194304, 2097152},
			want:    []float32{0, 0.5, 0.25},
		},
		{
			name:    "32-bit",
			header:  audiotest.WAVHeader{SampleRate: 48000, Channels: 1, BitDepth: 32, Format: audiotest.FormatPCM},
			samples: []int{1 << 30, 0},
			want:    []float32{0.5, 0},
		},
		{
			name:    "extensible 16-bit",
			header:  audiotest.WAVHeader{SampleRate: 16000, Channels: 1, BitDepth: 16, Format: audiotest.FormatExtensible},
			samples: []int{16384, 0},
			want:    []float32{0.5, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, got := decodeAll(t, audiotest.WAVBytes(tt.header, tt.samples))

			if src.SampleRate() != tt.header.SampleRate {
				t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), tt.header.SampleRate)
			}
			if src.Channels() != tt.header.Channels {
				t.Errorf("Channels() = %d, want %d", src.Channels(), tt.header.Channels)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("decoded %d samples, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if math.Abs(float64(got[i]-tt.want[i])) > 1e-6 {
					t.Errorf("sample %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecoder_SkipsUnknownChunks(t *testing.T) {
	t.Parallel()

	header := audiotest.WAVHeader{SampleRate: 8000, Channels: 1, BitDepth: 16, Format: audiotest.FormatPCM}
	data := audiotest.WAVBytes(header, []int{16384, 16384}, []byte("recorded by a phone app!"), make([]byte, 32))

	_, got := decodeAll(t, data)
	if len(got) != 2 || got[0] != 0.5 {
		t.Errorf("decoded %v, want [0.5 0.5]", got)
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	header := audiotest.WAVHeader{SampleRate: 8000, Channels: 1, BitDepth: 16, Format: audiotest.FormatPCM}
	data := audiotest.WAVBytes(header, make([]int, 100))

	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	samples, err := audio.ReadAll(src, 0, 0)
	if err != nil || len(samples) != 100 {
		t.Errorf("ReadAll() = %d samples, %v; want 100, nil", len(samples), err)
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{
			name:    "not riff",
			data:    []byte("NOT A WAV FILE AT ALL, JUST TEXT"),
			wantErr: ErrNotWavFile,
		},
		{
			name:    "truncated header",
			data:    []byte("RIFF\x00"),
			wantErr: ErrNotWavFile,
		},
		{
			name: "ieee float",
			data: audiotest.WAVBytes(audiotest.WAVHeader{
				SampleRate: 8000, Channels: 1, BitDepth: 32, Format: audiotest.FormatIEEEFloat,
			}, []int{0, 0}),
			wantErr: ErrUnsupportedEncoding,
		},
		{
			name: "8-bit",
			data: audiotest.WAVBytes(audiotest.WAVHeader{
				SampleRate: 8000, Channels: 1, BitDepth: 8, Format: audiotest.FormatPCM,
			}, []int{1, 2, 3, 4}),
			wantErr: ErrUnsupportedBitDepth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func BenchmarkDecoder_16bitMono(b *testing.B) {
	header := audiotest.WAVHeader{SampleRate: 8000, Channels: 1, BitDepth: 16, Format: audiotest.FormatPCM}
	data := audiotest.WAVBytes(header, make([]int, 8000*10))

	b.ReportAllocs()
	for b.Loop() {
		src, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		if _, err := audio.ReadAll(src, 4096, 0); err != nil {
			b.Fatal(err)
		}
	}
}
