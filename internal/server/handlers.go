// SPDX-License-Identifier: EPL-2.0

package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ik5/heartbpm"
	"github.com/ik5/heartbpm/heartrate"
	"go.uber.org/zap"
)

const uploadField = "audio"

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Seconds(),
	})
}

func (s *Server) analyze(c *gin.Context) {
	if c.Request.ContentLength > s.cfg.MaxUploadBytes {
		s.tooLarge(c)
		return
	}

	fh, err := c.FormFile(uploadField)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.tooLarge(c)
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file uploaded"})
		return
	}
	if form := c.Request.MultipartForm; form != nil {
		defer form.RemoveAll()
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot read upload"})
		return
	}
	defer f.Close()

	log := s.log.With(zap.String("request_id", RequestIDFrom(c)), zap.String("file", fh.Filename))

	w, err := heartbpm.LoadReader(f, fh.Filename, s.reg, s.cfg.Load)
	if err == nil {
		var res heartrate.Result
		res, err = s.est.Estimate(w)
		if err == nil {
			log.Info("estimated", zap.Int("bpm", res.BPM), zap.Int("peaks", len(res.Peaks)), zap.Duration("duration", res.Duration))
			c.JSON(http.StatusOK, gin.H{"bpm": res.BPM})
			return
		}
	}

	status := statusFor(err)
	log.Warn("analysis failed", zap.Int("status", status), zap.Error(err))
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{
		"error": fmt.Sprintf("upload exceeds %d bytes", s.cfg.MaxUploadBytes),
	})
}

// statusFor maps loader and estimator errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, heartbpm.ErrTooLong):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, heartbpm.ErrUnsupportedFormat), errors.Is(err, heartbpm.ErrDecode):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, heartrate.ErrSilentInput),
		errors.Is(err, heartrate.ErrInsufficientSignal),
		errors.Is(err, heartrate.ErrEmptyWaveform),
		errors.Is(err, heartrate.ErrNonFiniteSample),
		errors.Is(err, heartrate.ErrInvalidSampleRate),
		errors.Is(err, heartrate.ErrInvalidChannelCount):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
