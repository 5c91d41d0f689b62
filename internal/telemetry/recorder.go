package telemetry

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Recorder centralises telemetry for the gateway. It emits structured logs
// via slog and keeps running totals that are reported on shutdown.
type Recorder struct {
	logger *slog.Logger

	syntheses  atomic.Uint64
	failures   atomic.Uint64
	audioBytes atomic.Uint64
}

// NewRecorder constructs a telemetry recorder using the provided slog.Logger.
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{logger: logger}
}

// Logger returns the underlying slog.Logger for direct use.
func (r *Recorder) Logger() *slog.Logger {
	return r.logger
}

// RecordSynthesis logs a completed synthesis and updates the totals.
func (r *Recorder) RecordSynthesis(voiceID string, textLength, audioBytes int, streaming bool, elapsed time.Duration) {
	r.syntheses.Add(1)
	r.audioBytes.Add(uint64(audioBytes))
	r.logger.Info("synthesis completed",
		"voice_id", voiceID,
		"text_length", textLength,
		"audio_bytes", audioBytes,
		"streaming", streaming,
		"duration_sec", elapsed.Seconds(),
	)
}

// RecordFailure counts a failed synthesis. The error itself is logged by the
// error boundary, not here.
func (r *Recorder) RecordFailure() {
	r.failures.Add(1)
}

// LogTotals emits the accumulated counters, typically at shutdown.
func (r *Recorder) LogTotals() {
	r.logger.Info("synthesis totals",
		"completed", r.syntheses.Load(),
		"failed", r.failures.Load(),
		"audio_bytes", r.audioBytes.Load(),
	)
}
