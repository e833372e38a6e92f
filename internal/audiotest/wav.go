// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

const (
	FormatPCM        = 1
	FormatIEEEFloat  = 3
	FormatExtensible = 0xFFFE
)

// WAVHeader describes the fmt chunk written by WAVBytes.
type WAVHeader struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Format     int
}

// WAVBytes builds a RIFF/WAVE file holding the given integer samples packed
// little endian at h.BitDepth. Extensible headers carry the PCM sub-format.
// Extra chunks are inserted between fmt and data to exercise chunk skipping.
func WAVBytes(h WAVHeader, samples []int, extra ...[]byte) []byte {
	width := h.BitDepth / 8

	data := new(bytes.Buffer)
	for _, s := range samples {
		v := uint32(int32(s))
		for b := range width {
			data.WriteByte(byte(v >> (8 * b)))
		}
	}

	fmtChunk := new(bytes.Buffer)
	le := binary.LittleEndian
	_ = binary.Write(fmtChunk, le, uint16(h.Format))
	_ = binary.Write(fmtChunk, le, uint16(h.Channels))
	_ = binary.Write(fmtChunk, le, uint32(h.SampleRate))
	_ = binary.Write(fmtChunk, le, uint32(h.SampleRate*h.Channels*width))
	_ = binary.Write(fmtChunk, le, uint16(h.Channels*width))
	_ = binary.Write(fmtChunk, le, uint16(h.BitDepth))
	if h.Format == FormatExtensible {
		_ = binary.Write(fmtChunk, le, uint16(22))
		_ = binary.Write(fmtChunk, le, uint16(h.BitDepth))
		_ = binary.Write(fmtChunk, le, uint32(0))
		// KSDATAFORMAT_SUBTYPE_PCM
		fmtChunk.Write([]byte{
			0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
			0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71,
		})
	}

	body := new(bytes.Buffer)
	body.WriteString("WAVE")
	writeChunk(body, "fmt ", fmtChunk.Bytes())
	for _, e := range extra {
		writeChunk(body, "junk", e)
	}
	writeChunk(body, "data", data.Bytes())

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	_ = binary.Write(out, le, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

func writeChunk(w *bytes.Buffer, id string, payload []byte) {
	w.WriteString(id)
	_ = binary.Write(w, binary.LittleEndian, uint32(len(payload)))
	w.Write(payload)
	if len(payload)%2 == 1 {
		w.WriteByte(0)
	}
}
