// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

// AIFFBytes builds a FORM/AIFF file with COMM and SSND chunks holding the
// given big endian integer samples.
func AIFFBytes(sampleRate, channels, bitDepth int, samples []int) []byte {
	be := binary.BigEndian
	width := bitDepth / 8

	comm := new(bytes.Buffer)
	_ = binary.Write(comm, be, int16(channels))
	_ = binary.Write(comm, be, uint32(len(samples)/channels))
	_ = binary.Write(comm, be, int16(bitDepth))
	comm.Write(extended(uint64(sampleRate)))

	ssnd := new(bytes.Buffer)
	_ = binary.Write(ssnd, be, uint32(0)) // offset
	_ = binary.Write(ssnd, be, uint32(0)) // block size
	for _, s := range samples {
		v := uint32(int32(s))
		for b := width - 1; b >= 0; b-- {
			ssnd.WriteByte(byte(v >> (8 * b)))
		}
	}

	body := new(bytes.Buffer)
	body.WriteString("AIFF")
	for _, c := range []struct {
		id   string
		data []byte
	}{{"COMM", comm.Bytes()}, {"SSND", ssnd.Bytes()}} {
		body.WriteString(c.id)
		_ = binary.Write(body, be, uint32(len(c.data)))
		body.Write(c.data)
		if len(c.data)%2 == 1 {
			body.WriteByte(0)
		}
	}

	out := new(bytes.Buffer)
	out.WriteString("FORM")
	_ = binary.Write(out, be, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

// extended encodes a positive integer as an 80-bit IEEE 754 extended float.
func extended(v uint64) []byte {
	out := make([]byte, 10)
	if v == 0 {
		return out
	}

	shift := bits.LeadingZeros64(v)
	exp := uint16(16383 + 63 - shift)
	mant := v << shift

	binary.BigEndian.PutUint16(out[:2], exp)
	binary.BigEndian.PutUint64(out[2:], mant)

	return out
}
