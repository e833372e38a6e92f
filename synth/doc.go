// SPDX-License-Identifier: EPL-2.0

// Package synth renders synthetic heart sounds for trying out the estimator
// without a stethoscope.
//
// Each beat is a loud S1 ("lub") followed 300 ms later by a quieter S2
// ("dub"). The S2 amplitude is a quarter of S1, so after normalization and
// squaring it stays under the default 0.1 peak height and every beat is
// counted once:
//
//	samples, err := synth.Heartbeat{
//	    SampleRate: 8000,
//	    BPM:        72,
//	    Duration:   20 * time.Second,
//	    Noise:      0.02,
//	    Seed:       1,
//	}.Samples()
//
//	f, _ := os.Create("beat.wav")
//	err = synth.WriteWAV(f, 8000, samples)
//
// The same Seed always produces the same noise.
package synth
