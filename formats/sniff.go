// SPDX-License-Identifier: EPL-2.0

package formats

import "bytes"

// SniffLen is the number of leading bytes Sniff looks at.
const SniffLen = 12

// Sniff guesses the container from the first bytes of a file. It returns a
// registry key ("wav", "aiff", "ogg", "mp3") or "" when nothing matches.
func Sniff(header []byte) string {
	switch {
	case len(header) >= 12 && bytes.HasPrefix(header, []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")):
		return "wav"
	case len(header) >= 12 && bytes.HasPrefix(header, []byte("FORM")) &&
		(bytes.Equal(header[8:12], []byte("AIFF")) || bytes.Equal(header[8:12], []byte("AIFC"))):
		return "aiff"
	case bytes.HasPrefix(header, []byte("OggS")):
		return "ogg"
	case bytes.HasPrefix(header, []byte("ID3")):
		return "mp3"
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		// MPEG frame sync; layer bits 01 mean Layer III
		if header[1]&0x06 == 0x02 {
			return "mp3"
		}
	}

	return ""
}
