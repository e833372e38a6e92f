// SPDX-License-Identifier: EPL-2.0

// Package formats wires the individual decoders together.
//
// NewRegistry returns an audio.Registry with every supported container
// registered under its usual extensions, and Sniff identifies a container
// from its first bytes for uploads whose name does not match their content.
//
//	reg := formats.NewRegistry()
//	dec, ok := reg.ForPath(path)
//	if !ok {
//	    dec, ok = reg.Get(formats.Sniff(header))
//	}
package formats
