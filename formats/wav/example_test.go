// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/heartbpm/audio"
	"github.com/ik5/heartbpm/formats/wav"
	"github.com/ik5/heartbpm/internal/audiotest"
)

func ExampleDecoder() {
	data := audiotest.WAVBytes(audiotest.WAVHeader{
		SampleRate: 16000,
		Channels:   1,
		BitDepth:   16,
		Format:     audiotest.FormatPCM,
	}, []int{100, 200, 300, 400, 500})

	source, err := wav.Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		fmt.Println("decode:", err)
		return
	}

	samples, _ := audio.ReadAll(source, 4096, 0)
	fmt.Printf("%d Hz, %d channel(s), %d samples\n", source.SampleRate(), source.Channels(), len(samples))
	// Output:
	// 16000 Hz, 1 channel(s), 5 samples
}
