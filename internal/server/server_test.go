package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cwbudde/algo-remix/dsp/core"
	"github.com/cwbudde/algo-remix/internal/audio"
	"github.com/cwbudde/algo-remix/internal/config"
	"github.com/cwbudde/algo-remix/internal/logging"
	"github.com/cwbudde/algo-remix/internal/remix"
	"github.com/cwbudde/algo-remix/internal/testutil"
)

type fakeRemixer struct {
	err    error
	params remix.Params
	input  remix.Input
}

func (f *fakeRemixer) Remix(_ context.Context, in remix.Input, p remix.Params) (remix.Result, error) {
	f.input, f.params = in, p
	if f.err != nil {
		return remix.Result{}, f.err
	}

	return remix.Result{ID: "job-1", WAV: []byte("RIFF")}, nil
}

func (f *fakeRemixer) MoodNames() []string { return []string{"chill", "happy"} }
func (f *fakeRemixer) RemoteEnabled() bool { return false }

func multipartBody(t *testing.T, audioData []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if audioData != nil {
		fw, err := mw.CreateFormFile(fieldAudio, "in.wav")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(audioData)
	}

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}

	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	return &body, mw.FormDataContentType()
}

func postRemix(t *testing.T, s *Server, audioData []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, ctype := multipartBody(t, audioData, fields)
	req := httptest.NewRequest(http.MethodPost, "/remix", body)
	req.Header.Set("Content-Type", ctype)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	return rec
}

func TestHealth(t *testing.T) {
	s := New(config.Default(), &fakeRemixer{}, logging.Discard())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("body = %s", rec.Body)
	}
}

func TestMoods(t *testing.T) {
	s := New(config.Default(), &fakeRemixer{}, logging.Discard())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/moods", nil))

	var got struct {
		Moods  []string `json:"moods"`
		Remote bool     `json:"remote"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v (%s)", err, rec.Body)
	}

	if len(got.Moods) != 2 || got.Moods[0] != "chill" || got.Remote {
		t.Fatalf("got %+v", got)
	}
}

func TestRemixParsesFields(t *testing.T) {
	f := &fakeRemixer{}
	s := New(config.Default(), f, logging.Discard())

	rec := postRemix(t, s, []byte("data"), map[string]string{
		fieldMood:      "Happy",
		fieldTempo:     "1.5",
		fieldPitch:     "-2",
		fieldSeed:      "7",
		fieldUseRemote: "false",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "audio/wav" {
		t.Fatalf("Content-Type = %q", ct)
	}

	if rec.Header().Get("X-Remix-ID") != "job-1" || rec.Body.String() != "RIFF" {
		t.Fatalf("headers = %v body = %q", rec.Header(), rec.Body)
	}

	want := remix.Params{Mood: "Happy", Tempo: 1.5, Pitch: -2, Seed: 7}
	if f.params != want {
		t.Fatalf("params = %+v, want %+v", f.params, want)
	}

	if f.input.Name != "in.wav" || string(f.input.Data) != "data" {
		t.Fatalf("input = %+v", f.input)
	}
}

func TestRemixDefaultsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Remix.Mood = "sad"
	cfg.Remix.Tempo = 0.9

	f := &fakeRemixer{}
	s := New(cfg, f, logging.Discard())

	if rec := postRemix(t, s, []byte("x"), nil); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	if f.params.Mood != "sad" || f.params.Tempo != 0.9 {
		t.Fatalf("params = %+v", f.params)
	}
}

func TestRemixBadRequests(t *testing.T) {
	s := New(config.Default(), &fakeRemixer{}, logging.Discard())

	tests := []struct {
		name   string
		audio  []byte
		fields map[string]string
	}{
		{"missing audio", nil, map[string]string{fieldMood: "happy"}},
		{"bad tempo", []byte("x"), map[string]string{fieldTempo: "fast"}},
		{"negative tempo", []byte("x"), map[string]string{fieldTempo: "-1"}},
		{"pitch out of range", []byte("x"), map[string]string{fieldPitch: "24"}},
		{"fractional pitch", []byte("x"), map[string]string{fieldPitch: "1.5"}},
		{"bad seed", []byte("x"), map[string]string{fieldSeed: "1.5"}},
		{"bad use_remote", []byte("x"), map[string]string{fieldUseRemote: "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := postRemix(t, s, tt.audio, tt.fields); rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body)
			}
		})
	}
}

func TestRemixNotMultipart(t *testing.T) {
	s := New(config.Default(), &fakeRemixer{}, logging.Discard())

	req := httptest.NewRequest(http.MethodPost, "/remix", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRemixTooLarge(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxUploadMB = 1

	s := New(cfg, &fakeRemixer{}, logging.Discard())

	rec := postRemix(t, s, make([]byte, 2<<20), nil)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestRemixErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", core.ErrInvalidParameter), http.StatusBadRequest},
		{fmt.Errorf("%w: boom", remix.ErrRemote), http.StatusBadGateway},
		{fmt.Errorf("%w: bad wav", remix.ErrProcessing), http.StatusUnprocessableEntity},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			s := New(config.Default(), &fakeRemixer{err: tt.err}, logging.Discard())

			rec := postRemix(t, s, []byte("x"), nil)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}

			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Fatalf("body = %s", rec.Body)
			}
		})
	}
}

func TestRemixEndToEnd(t *testing.T) {
	cfg := config.Default()
	cfg.Remix.SampleRate = 0

	svc, err := remix.NewService(cfg, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}

	s := New(cfg, svc, logging.Discard())

	sig := core.Signal{Samples: testutil.Sine(440, 22050, 0.5, 22050), SampleRate: 22050}

	in, err := audio.EncodeBytes(sig, 16)
	if err != nil {
		t.Fatal(err)
	}

	rec := postRemix(t, s, in, map[string]string{fieldMood: "energetic", fieldSeed: "3"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}

	out, err := audio.DecodeBytes(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("response is not a WAV: %v", err)
	}

	if out.Len() != 17640 {
		t.Fatalf("len = %d, want 17640", out.Len())
	}

	testutil.RequireBounded(t, out.Samples, 1)

	if rec.Header().Get("X-Remix-Source") != "local" {
		t.Fatalf("source = %q", rec.Header().Get("X-Remix-Source"))
	}
}

func TestRemixGarbageAudio(t *testing.T) {
	cfg := config.Default()

	svc, err := remix.NewService(cfg, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}

	s := New(cfg, svc, logging.Discard())

	if rec := postRemix(t, s, []byte("not a wav file"), nil); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (%s)", rec.Code, rec.Body)
	}
}

func TestRunShutsDown(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"

	s := New(cfg, &fakeRemixer{}, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- s.Run(ctx) }()

	cancel()

	if err := <-done; err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}
