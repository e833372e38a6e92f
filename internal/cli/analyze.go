// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"

	"github.com/ik5/heartbpm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	msgNoPath       = "No file path provided"
	msgFileNotFound = "File not found"
)

type bpmResult struct {
	BPM int `json:"bpm"`
}

type detailResult struct {
	BPM         int      `json:"bpm"`
	RawBPM      float64  `json:"raw_bpm"`
	Peaks       int      `json:"peaks"`
	DurationSec float64  `json:"duration_sec"`
	SampleRate  int      `json:"sample_rate"`
	SpectralBPM *float64 `json:"spectral_bpm,omitempty"`
}

func (a *app) analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file_path>",
		Short: "Estimate the heart rate of a recording",
		Long: `Estimate the heart rate of a recording and print it as JSON.

Running heartbpm with a file path and no subcommand does the same.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runAnalyze,
	}

	cmd.Flags().BoolVar(&a.detail, "detail", false, "include peaks, duration, sample rate and a spectral estimate")

	return cmd
}

func (a *app) fail(msg string) error {
	writeJSON(a.stdout, errorEnvelope{Error: msg})
	return errReported
}

func (a *app) runAnalyze(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return a.fail(msgNoPath)
	}
	path := args[0]

	if err := a.setup(); err != nil {
		return a.fail(err.Error())
	}
	defer func() { _ = a.log.Sync() }()

	est, err := a.cfg.NewEstimator()
	if err != nil {
		return a.fail(err.Error())
	}

	log := a.log.With(zap.String("file", path))
	log.Debug("loading", zap.Int("target_rate", a.cfg.Loader.TargetRate), zap.Duration("max_duration", a.cfg.Loader.MaxDuration))

	w, err := heartbpm.LoadFile(path, nil, a.cfg.LoadOptions())
	if errors.Is(err, heartbpm.ErrFileNotFound) {
		log.Debug("missing input")
		return a.fail(msgFileNotFound)
	}
	if err != nil {
		log.Warn("load failed", zap.Error(err))
		return a.fail(err.Error())
	}

	log.Debug("loaded", zap.Int("sample_rate", w.SampleRate), zap.Int("frames", w.Frames()), zap.Duration("duration", w.Duration()))

	res, err := est.Estimate(w)
	if err != nil {
		log.Warn("estimation failed", zap.Error(err))
		return a.fail(err.Error())
	}

	log.Info("estimated",
		zap.Int("bpm", res.BPM),
		zap.Float64("raw_bpm", res.RawBPM),
		zap.Int("peaks", len(res.Peaks)),
		zap.Int("min_distance", res.MinDistance),
	)

	if !a.detail {
		writeJSON(a.stdout, bpmResult{BPM: res.BPM})
		return nil
	}

	out := detailResult{
		BPM:         res.BPM,
		RawBPM:      res.RawBPM,
		Peaks:       len(res.Peaks),
		DurationSec: res.Duration.Seconds(),
		SampleRate:  res.SampleRate,
	}

	if spectral, err := est.Spectral(w); err == nil {
		out.SpectralBPM = &spectral
	} else {
		log.Debug("spectral cross-check skipped", zap.Error(err))
	}

	writeJSON(a.stdout, out)

	return nil
}
