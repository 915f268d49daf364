package main

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/live-portfolio/internal/content"
	"github.com/Zachkp/live-portfolio/internal/live"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T, limit int) (*gin.Engine, *live.Hub) {
	t.Helper()
	p, err := content.Load()
	if err != nil {
		t.Fatal(err)
	}
	hub := live.NewHub(p, live.Options{}, limit)
	r, err := newRouter(Config{KeepAlive: 15 * time.Second}, p, hub)
	if err != nil {
		t.Fatal(err)
	}
	return r, hub
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "GIN_MODE", "CONTENT_PATH", "FRAME_INTERVAL", "SSE_KEEPALIVE", "MAX_SESSIONS"} {
		t.Setenv(k, "")
	}
	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" || cfg.FrameInterval != 16*time.Millisecond || cfg.KeepAlive != 15*time.Second || cfg.MaxSessions != 500 {
		t.Fatalf("loadConfig() = %+v", cfg)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"FRAME_INTERVAL", "fast"},
		{"FRAME_INTERVAL", "-1s"},
		{"SSE_KEEPALIVE", "0s"},
		{"MAX_SESSIONS", "many"},
		{"MAX_SESSIONS", "-3"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := loadConfig(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestIndexRendersPortfolio(t *testing.T) {
	r, _ := newTestRouter(t, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET / = %d", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{
		"Devendra Lamani",
		`id="years"`,
		`id="exp-0"`,
		`id="exp-2"`,
		`id="exp-0" data-live class="stack-marker"`,
		`data-card="0" class="stack-card sticky top-[15vh]`,
		`data-graphic="graphic-1"`,
		`d="M50 10 L90 50 L50 90 L10 50 Z"`,
		`stroke-dasharray="200"`,
		`id="project-k8s"`,
		`data-kind="scheduler"`,
		"animation-delay: 0.38s",
		"&copy; " + strconv.Itoa(time.Now().Year()),
		"mailto:devendra.lamani@example.com",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	// Four copies of every skill for the marquee.
	if n := strings.Count(body, ">Helm</span>"); n != 4 {
		t.Errorf("Helm ticker items = %d, want 4", n)
	}
}

func TestStaticAssets(t *testing.T) {
	r, _ := newTestRouter(t, 0)
	for _, path := range []string{"/static/live.js", "/static/site.css"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, w.Code)
		}
	}
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t, 0)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("GET /healthz = %d %s", w.Code, w.Body)
	}
}

func TestViewportEndpoint(t *testing.T) {
	r, hub := newTestRouter(t, 0)
	s, err := hub.Open()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		id   string
		body string
		want int
	}{
		{"unknown session", "nope", `{"scrollY":0,"height":800}`, http.StatusNotFound},
		{"bad json", s.ID, `{"scrollY":`, http.StatusBadRequest},
		{"negative height", s.ID, `{"scrollY":0,"height":-5}`, http.StatusBadRequest},
		{"ok", s.ID, `{"scrollY":120,"height":800,"tops":{"years":900}}`, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/live/"+tt.id+"/viewport", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body)
			}
		})
	}
}

func TestLiveRejectsWhenFull(t *testing.T) {
	r, hub := newTestRouter(t, 1)
	if _, err := hub.Open(); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("GET /live = %d, want 503", w.Code)
	}
}

func TestLiveStream(t *testing.T) {
	r, hub := newTestRouter(t, 0)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/live", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("Content-Type = %q", ct)
	}

	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	next := func(prefix string) string {
		t.Helper()
		timeout := time.After(3 * time.Second)
		for {
			select {
			case line, ok := <-lines:
				if !ok {
					t.Fatalf("stream ended waiting for %q", prefix)
				}
				if strings.HasPrefix(line, prefix) {
					return strings.TrimPrefix(line, prefix)
				}
			case <-timeout:
				t.Fatalf("timed out waiting for %q", prefix)
			}
		}
	}

	next("event:session")
	id := strings.TrimSpace(next("data:"))
	if _, ok := hub.Get(id); !ok {
		t.Fatalf("session %q not registered", id)
	}

	post, err := http.Post(srv.URL+"/live/"+id+"/viewport", "application/json",
		strings.NewReader(`{"scrollY":0,"height":800}`))
	if err != nil {
		t.Fatal(err)
	}
	post.Body.Close()
	if post.StatusCode != http.StatusNoContent {
		t.Fatalf("POST viewport = %d", post.StatusCode)
	}

	next("event:frame")
	data := next("data:")
	if !strings.Contains(data, `"widget":`) {
		t.Fatalf("frame data = %s", data)
	}

	cancel()
	deadline := time.Now().Add(3 * time.Second)
	for hub.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("session not removed after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
