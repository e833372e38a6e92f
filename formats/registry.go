// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"github.com/ik5/heartbpm/audio"
	"github.com/ik5/heartbpm/formats/aiff"
	"github.com/ik5/heartbpm/formats/mp3"
	"github.com/ik5/heartbpm/formats/vorbis"
	"github.com/ik5/heartbpm/formats/wav"
)

// NewRegistry returns a registry holding every built-in decoder.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	for _, ext := range []string{"wav", "wave"} {
		reg.Register(ext, wav.Decoder{})
	}
	reg.Register("mp3", mp3.Decoder{})
	for _, ext := range []string{"ogg", "oga"} {
		reg.Register(ext, vorbis.Decoder{})
	}
	for _, ext := range []string{"aif", "aiff"} {
		reg.Register(ext, aiff.Decoder{})
	}

	return reg
}
