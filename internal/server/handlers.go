package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-remix/dsp/core"
	"github.com/cwbudde/algo-remix/internal/remix"
)

// Multipart form fields accepted by POST /remix.
const (
	fieldAudio     = "audio"
	fieldMood      = "mood"
	fieldTempo     = "tempoMultiplier"
	fieldPitch     = "pitch"
	fieldSeed      = "seed"
	fieldUseRemote = "use_remote"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMoods(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"moods":  s.remixer.MoodNames(),
		"remote": s.remixer.RemoteEnabled(),
	})
}

// handleRemix accepts a multipart upload and responds with the remixed WAV.
func (s *Server) handleRemix(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %d MB", s.cfg.Server.MaxUploadMB))
			return
		}

		writeError(w, http.StatusBadRequest, "expected a multipart form upload")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(fieldAudio)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing audio file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	params, err := s.parseParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	select {
	case s.jobs <- struct{}{}:
		defer func() { <-s.jobs }()
	case <-r.Context().Done():
		writeError(w, http.StatusServiceUnavailable, "request cancelled while waiting for a worker")
		return
	}

	res, err := s.remixer.Remix(r.Context(), remix.Input{Name: header.Filename, Data: data}, params)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="remix_%s.wav"`, res.ID))
	w.Header().Set("X-Remix-ID", res.ID)
	w.Header().Set("X-Remix-Source", source(res.Remote))
	w.WriteHeader(http.StatusOK)
	w.Write(res.WAV)
}

func (s *Server) parseParams(r *http.Request) (remix.Params, error) {
	p := remix.Params{
		Mood:  s.cfg.Remix.Mood,
		Tempo: s.cfg.Remix.Tempo,
		Pitch: s.cfg.Remix.Pitch,
		Seed:  s.cfg.Remix.Seed,
	}

	if v := strings.TrimSpace(r.FormValue(fieldMood)); v != "" {
		p.Mood = v
	}

	var err error

	if v := r.FormValue(fieldTempo); v != "" {
		if p.Tempo, err = strconv.ParseFloat(v, 64); err != nil {
			return p, fmt.Errorf("invalid %s %q", fieldTempo, v)
		}
	}

	if v := r.FormValue(fieldPitch); v != "" {
		if p.Pitch, err = strconv.ParseFloat(v, 64); err != nil {
			return p, fmt.Errorf("invalid %s %q", fieldPitch, v)
		}
	}

	if v := r.FormValue(fieldSeed); v != "" {
		if p.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return p, fmt.Errorf("invalid %s %q", fieldSeed, v)
		}
	}

	p.UseRemote = s.cfg.Remix.UseRemote
	if v := r.FormValue(fieldUseRemote); v != "" {
		if p.UseRemote, err = strconv.ParseBool(v); err != nil {
			return p, fmt.Errorf("invalid %s %q", fieldUseRemote, v)
		}
	}

	return p, p.Validate()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, remix.ErrRemote):
		return http.StatusBadGateway
	case errors.Is(err, remix.ErrProcessing):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func source(remote bool) string {
	if remote {
		return "remote"
	}

	return "local"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
