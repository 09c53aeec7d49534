package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cwbudde/algo-remix/internal/config"
)

func TestNewClientRequiresURL(t *testing.T) {
	if _, err := NewClient(config.RemoteConfig{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("NewClient() error = %v, want ErrNotConfigured", err)
	}
}

func TestRemixSendsForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}

		if got := r.Header.Get("Authorization"); got != "Bearer k3y" {
			t.Errorf("Authorization = %q", got)
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm() error = %v", err)
			return
		}

		f, hdr, err := r.FormFile(FieldAudio)
		if err != nil {
			t.Errorf("FormFile() error = %v", err)
			return
		}
		defer f.Close()

		data, _ := io.ReadAll(f)
		if string(data) != "RIFF...." || hdr.Filename != "song.wav" {
			t.Errorf("audio = %q (%s)", data, hdr.Filename)
		}

		if r.FormValue(FieldMood) != "sad" || r.FormValue(FieldTempo) != "1.2" || r.FormValue(FieldPitch) != "-3" {
			t.Errorf("fields = %v", r.MultipartForm.Value)
		}

		w.Write([]byte("remixed"))
	}))
	defer srv.Close()

	c, err := NewClient(config.RemoteConfig{URL: srv.URL, APIKey: "k3y", Timeout: 5 * time.Second})
	if err != nil {
		t.Fatal(err)
	}

	out, err := c.Remix(context.Background(), Request{
		Audio: []byte("RIFF...."), Filename: "song.wav", Mood: "sad", Tempo: 1.2, Pitch: -3,
	})
	if err != nil {
		t.Fatalf("Remix() error = %v", err)
	}

	if string(out) != "remixed" {
		t.Fatalf("Remix() = %q", out)
	}
}

func TestRemixNoKeyNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			t.Error("unexpected Authorization header")
		}
	}))
	defer srv.Close()

	c, _ := NewClient(config.RemoteConfig{URL: srv.URL, Timeout: time.Second})
	if _, err := c.Remix(context.Background(), Request{Audio: []byte{1}}); err != nil {
		t.Fatalf("Remix() error = %v", err)
	}
}

func TestRemixNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, _ := NewClient(config.RemoteConfig{URL: srv.URL, Timeout: time.Second})

	_, err := c.Remix(context.Background(), Request{Audio: []byte{1}})

	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusServiceUnavailable || se.Body != "model overloaded" {
		t.Fatalf("Remix() error = %v", err)
	}
}

func TestRemixTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, _ := NewClient(config.RemoteConfig{URL: srv.URL, Timeout: 20 * time.Millisecond})
	if _, err := c.Remix(context.Background(), Request{Audio: []byte{1}}); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestWithHTTPClientOverridesTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	cfg := config.RemoteConfig{URL: srv.URL, Timeout: time.Nanosecond}

	c, err := NewClient(cfg, WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	out, err := c.Remix(context.Background(), Request{Audio: []byte{1}})
	if err != nil || string(out) != "ok" {
		t.Fatalf("Remix() = %q, %v", out, err)
	}
}
