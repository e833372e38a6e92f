// SPDX-License-Identifier: EPL-2.0

// Package cli implements the heartbpm command line.
//
// Analysis results and failures are written to stdout as a single JSON
// object, {"bpm": N} or {"error": "..."}; logs go to stderr.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/heartbpm/internal/config"
	"github.com/ik5/heartbpm/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// errReported marks a failure whose JSON envelope was already written.
var errReported = errors.New("error already reported")

type app struct {
	v          *viper.Viper
	cfg        *config.Config
	log        *zap.Logger
	stdout     io.Writer
	stderr     io.Writer
	configFile string
	detail     bool
}

// Execute runs the command line with os.Args and returns the exit code.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// Run executes args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}

	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)

	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}
	if errors.Is(err, errReported) {
		return 1
	}

	if cmd == root || cmd.Name() == "analyze" {
		writeJSON(stdout, errorEnvelope{Error: err.Error()})
	} else {
		fmt.Fprintln(stderr, "Error:", err)
	}

	return 1
}

// NewRootCmd builds a fresh command tree writing to the given streams.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:      config.New(),
		stdout: stdout,
		stderr: stderr,
	}

	return a.rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heartbpm <file_path>",
		Short: "Estimate heart rate from a heart sound recording",
		Long: `heartbpm estimates the heart rate, in beats per minute, of a recorded
heart sound (phonocardiogram).

The recording is decoded (WAV, AIFF, MP3 or Ogg Vorbis), mixed to mono,
normalized and squared into an energy signal. Peaks of that signal at least
60/max-bpm seconds apart are counted as beats.

The result is printed to stdout as JSON:
  {"bpm": 72}
  {"error": "File not found"}`,
		Example: `  heartbpm recording.wav
  heartbpm --detail --max-bpm 200 recording.mp3
  heartbpm serve --port 9090
  heartbpm synth --bpm 80 beat.wav`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runAnalyze,
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default ./heartbpm.yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.Bool("json-logs", false, "enable JSON formatted logs")
	pf.Float64("max-bpm", 180, "highest detectable heart rate")
	pf.Float64("min-bpm", 30, "lowest rate considered by the spectral cross-check")
	pf.Float64("height", 0.1, "minimum normalized energy of a beat, 0 to 1")
	pf.String("rounding", "nearest", "how the rate becomes an integer (nearest, truncate)")
	pf.Int("resample", 0, "resample to this rate in Hz before analysis, 0 keeps the native rate")
	pf.Duration("max-duration", 0, "reject longer recordings (default 10m)")

	a.bind(pf, map[string]string{
		"log.level":                  "log-level",
		"log.json":                   "json-logs",
		"estimator.max_bpm":          "max-bpm",
		"estimator.min_bpm":          "min-bpm",
		"estimator.height_threshold": "height",
		"estimator.rounding":         "rounding",
		"loader.target_rate":         "resample",
		"loader.max_duration":        "max-duration",
	})

	cmd.Flags().BoolVar(&a.detail, "detail", false, "include peaks, duration, sample rate and a spectral estimate")

	cmd.AddCommand(a.analyzeCmd(), a.serveCmd(), a.synthCmd(), versionCmd())

	return cmd
}

func (a *app) bind(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		// only fails on a nil flag
		_ = a.v.BindPFlag(key, fs.Lookup(name))
	}
}

// setup loads the configuration and the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}

	log, err := logging.NewWithWriter(a.stderr, cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	a.cfg = cfg
	a.log = log

	return nil
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(w io.Writer, v any) {
	// stdout failures have nowhere to be reported
	_ = json.NewEncoder(w).Encode(v)
}
