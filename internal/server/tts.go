package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/audiorelay/tts-gateway/internal/apierr"
	"github.com/audiorelay/tts-gateway/internal/elevenlabs"
)

// synthesisRequest is the inbound TTS request body.
type synthesisRequest struct {
	Text          string                    `json:"text"`
	VoiceID       string                    `json:"voice_id"`
	ModelID       string                    `json:"model_id"`
	VoiceSettings *elevenlabs.VoiceSettings `json:"voice_settings"`
}

func audioFilename(prefix string) string {
	return fmt.Sprintf("%s_%d.mp3", prefix, time.Now().UnixMilli())
}

// handleSynthesize serves POST /api/tts: buffered synthesis returned as a
// single audio/mpeg body.
func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesisRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Text == "" {
		s.fail(w, r, apierr.New("text is required", http.StatusBadRequest))
		return
	}

	voiceID := s.resolveVoiceID(req.VoiceID)
	processed := s.prompts.Apply(req.Text, "")

	start := time.Now()
	audio, err := s.client.Synthesize(r.Context(), voiceID, elevenlabs.SynthesizeRequest{
		Text:          processed,
		ModelID:       req.ModelID,
		VoiceSettings: req.VoiceSettings,
	})
	if err != nil {
		s.metrics.RecordFailure()
		s.fail(w, r, apierr.Newf(http.StatusInternalServerError, "speech synthesis failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", audioFilename("tts")))
	if _, err := w.Write(audio); err != nil {
		s.log.Error("failed to write audio response", "error", err, "voice_id", voiceID)
		return
	}

	s.metrics.RecordSynthesis(voiceID, len(req.Text), len(audio), false, time.Since(start))
}

// handleSynthesizeStream serves POST /api/tts/stream: upstream audio bytes
// are forwarded to the caller as they arrive, with no intermediate
// buffering. Failures after the first write cannot be reported as a status;
// the client sees a truncated body and the error is logged here.
func (s *Server) handleSynthesizeStream(w http.ResponseWriter, r *http.Request) {
	var req synthesisRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Text == "" {
		s.fail(w, r, apierr.New("text is required", http.StatusBadRequest))
		return
	}

	voiceID := s.resolveVoiceID(req.VoiceID)
	processed := s.prompts.Apply(req.Text, "")

	start := time.Now()
	upstream, err := s.client.SynthesizeStream(r.Context(), voiceID, elevenlabs.SynthesizeRequest{
		Text:          processed,
		ModelID:       req.ModelID,
		VoiceSettings: req.VoiceSettings,
	})
	if err != nil {
		s.metrics.RecordFailure()
		s.fail(w, r, apierr.Newf(http.StatusInternalServerError, "streaming synthesis failed: %v", err))
		return
	}
	defer upstream.Close()

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", audioFilename("tts_stream")))
	// No Content-Length: net/http switches to chunked transfer encoding.
	w.WriteHeader(http.StatusOK)

	written, err := s.copyStream(r.Context(), w, upstream)
	if err != nil {
		// Headers are already sent: log and let the body end early.
		s.metrics.RecordFailure()
		s.log.Error("stream aborted",
			"error", err,
			"voice_id", voiceID,
			"text_length", len(req.Text),
			"bytes_written", written,
		)
		return
	}

	s.metrics.RecordSynthesis(voiceID, len(req.Text), int(written), true, time.Since(start))
}

// copyStream forwards upstream bytes to the response writer in
// config-sized chunks, flushing after each write so the caller receives
// audio as it is produced. A cancelled request context (client disconnect)
// stops the copy; the deferred close drains the upstream stream.
func (s *Server) copyStream(ctx context.Context, w http.ResponseWriter, upstream io.Reader) (int64, error) {
	flusher, _ := w.(http.Flusher)
	buf := make([]byte, s.cfg.StreamChunkSize)

	var written int64
	for {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		n, readErr := upstream.Read(buf)
		if n > 0 {
			wn, writeErr := w.Write(buf[:n])
			written += int64(wn)
			if writeErr != nil {
				return written, writeErr
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return written, nil
			}
			return written, readErr
		}
	}
}
