// SPDX-License-Identifier: EPL-2.0

// Command heartbpm estimates heart rate from heart sound recordings.
//
//	heartbpm recording.wav        # {"bpm": 72}
//	heartbpm serve --port 8080
//	heartbpm synth beat.wav
package main

import (
	"os"

	"github.com/ik5/heartbpm/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
