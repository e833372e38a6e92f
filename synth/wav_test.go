// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"os"
	"path/filepath"
	"testing"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/heartbpm/audio"
	"github.com/ik5/heartbpm/formats/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWAV(t *testing.T) {
	t.Parallel()

	samples := []float32{0, 0.5, -0.5, 1, -1, 0.25}
	path := filepath.Join(t.TempDir(), "out.wav")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteWAV(f, 8000, samples))
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := gowav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	assert.Equal(t, uint32(8000), dec.SampleRate)
	assert.Equal(t, uint16(1), dec.NumChans)
	assert.Equal(t, uint16(16), dec.BitDepth)

	_, err = f.Seek(0, 0)
	require.NoError(t, err)

	src, err := wav.Decoder{}.Decode(f)
	require.NoError(t, err)

	got, err := audio.ReadAll(src, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, len(samples))

	for i, want := range samples {
		assert.InDelta(t, want, got[i], 1.0/16384, "sample %d", i)
	}
}

func TestWriteWAV_InvalidRate(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	require.NoError(t, err)
	defer f.Close()

	require.ErrorIs(t, WriteWAV(f, 0, []float32{0}), ErrInvalidParameter)
}
