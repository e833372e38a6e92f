// SPDX-License-Identifier: EPL-2.0

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ik5/heartbpm"
	"github.com/ik5/heartbpm/heartrate"
	"github.com/ik5/heartbpm/internal/audiotest"
	"github.com/ik5/heartbpm/synth"
	"github.com/ik5/heartbpm/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() Config {
	return Config{
		Host:            "127.0.0.1",
		Port:            0,
		MaxUploadBytes:  8 << 20,
		RateLimit:       1000,
		RateBurst:       1000,
		ShutdownTimeout: time.Second,
		Load:            heartbpm.DefaultLoadOptions(),
	}
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	est, err := heartrate.New()
	require.NoError(t, err)

	return New(cfg, est, nil)
}

func wavOf(t *testing.T, rate int, samples []float32) []byte {
	t.Helper()

	ints := make([]int, len(samples))
	for i, v := range samples {
		ints[i] = utils.FloatToPCM(v, 16)
	}

	return audiotest.WAVBytes(audiotest.WAVHeader{
		SampleRate: rate,
		Channels:   1,
		BitDepth:   16,
		Format:     audiotest.FormatPCM,
	}, ints)
}

func heartbeatWAV(t *testing.T) []byte {
	t.Helper()

	samples, err := synth.Heartbeat{
		SampleRate: 4000,
		BPM:        72,
		Duration:   20 * time.Second,
		Noise:      0.01,
		Seed:       3,
	}.Samples()
	require.NoError(t, err)

	return wavOf(t, 4000, samples)
}

func upload(t *testing.T, field, name string, data []byte) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/health/analyze", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func serve(s *Server, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)

	return rec, body
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testConfig())
	rec, body := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", body["status"])
	assert.Contains(t, body, "uptime")

	ts, ok := body["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, ts)
	require.NoError(t, err)
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	silent := wavOf(t, 4000, make([]float32, 8000))

	tests := []struct {
		name       string
		req        *http.Request
		wantStatus int
		wantError  string
	}{
		{
			name:       "heartbeat",
			req:        upload(t, "audio", "beat.wav", heartbeatWAV(t)),
			wantStatus: http.StatusOK,
		},
		{
			name:       "mislabeled heartbeat",
			req:        upload(t, "audio", "beat.ogg", heartbeatWAV(t)),
			wantStatus: http.StatusOK,
		},
		{
			name:       "no file",
			req:        httptest.NewRequest(http.MethodPost, "/api/health/analyze", nil),
			wantStatus: http.StatusBadRequest,
			wantError:  "No audio file uploaded",
		},
		{
			name:       "wrong field",
			req:        upload(t, "file", "beat.wav", heartbeatWAV(t)),
			wantStatus: http.StatusBadRequest,
			wantError:  "No audio file uploaded",
		},
		{
			name:       "silent",
			req:        upload(t, "audio", "quiet.wav", silent),
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  heartrate.ErrSilentInput.Error(),
		},
		{
			name:       "empty data chunk",
			req:        upload(t, "audio", "empty.wav", wavOf(t, 4000, nil)),
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  heartrate.ErrEmptyWaveform.Error(),
		},
		{
			name:       "unknown format",
			req:        upload(t, "audio", "notes.txt", []byte("lub dub lub dub")),
			wantStatus: http.StatusUnsupportedMediaType,
			wantError:  heartbpm.ErrUnsupportedFormat.Error(),
		},
		{
			name:       "corrupt wav",
			req:        upload(t, "audio", "broken.wav", []byte("definitely not audio")),
			wantStatus: http.StatusUnsupportedMediaType,
			wantError:  heartbpm.ErrDecode.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestServer(t, testConfig())
			rec, body := serve(s, tt.req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantError != "" {
				assert.Contains(t, body["error"], tt.wantError)
				return
			}

			bpm, ok := body["bpm"].(float64)
			require.True(t, ok, rec.Body.String())
			assert.InDelta(t, 72, bpm, 3)
		})
	}
}

func TestAnalyze_TooLarge(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MaxUploadBytes = 1024

	s := newTestServer(t, cfg)
	rec, body := serve(s, upload(t, "audio", "beat.wav", heartbeatWAV(t)))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, body["error"], "1024 bytes")
}

func TestAnalyze_TooLong(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Load.MaxDuration = 5 * time.Second

	s := newTestServer(t, cfg)
	rec, body := serve(s, upload(t, "audio", "beat.wav", heartbeatWAV(t)))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, body["error"], heartbpm.ErrTooLong.Error())
}

func TestAnalyze_RateLimited(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1

	s := newTestServer(t, cfg)
	silent := wavOf(t, 4000, make([]float32, 400))

	rec, _ := serve(s, upload(t, "audio", "a.wav", silent))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, body := serve(s, upload(t, "audio", "a.wav", silent))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, body["error"], "Rate limit")
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// health is not limited
	rec, _ = serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testConfig())

	rec, _ := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	require.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	rec, _ = serve(s, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid\n")
	rec, _ = serve(s, req)
	assert.NotEqual(t, "not-a-uuid\n", rec.Header().Get(RequestIDHeader))
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(heartrate.ErrInsufficientSignal))
	assert.Equal(t, http.StatusUnsupportedMediaType, statusFor(heartbpm.ErrUnsupportedFormat))
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusFor(heartbpm.ErrTooLong))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}

func TestRun_StopsOnCancel(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testConfig())
	assert.Equal(t, "127.0.0.1:0", s.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
