package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"aigateway/internal/chat"
	"aigateway/internal/httpapi"
	"aigateway/internal/imagegen"
	"aigateway/internal/registry"
	"aigateway/pkg/types"
)

// fakeHF plays the Hugging Face inference API. Each call pops the next status
// from script; once exhausted it answers 200 with img.
type fakeHF struct {
	mu       sync.Mutex
	script   []int
	img      []byte
	paths    []string
	payloads []imagegen.Payload
	// gate, when set, holds successful responses until closed.
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeHF) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var p imagegen.Payload
	_ = json.NewDecoder(r.Body).Decode(&p)
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.payloads = append(f.payloads, p)
	status := http.StatusOK
	if len(f.script) > 0 {
		status, f.script = f.script[0], f.script[1:]
	}
	gate, entered := f.gate, f.entered
	f.mu.Unlock()

	if status != http.StatusOK {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":"upstream says no"}`))
		return
	}
	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(f.img)
}

func (f *fakeHF) calls() ([]string, []imagegen.Payload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...), append([]imagegen.Payload(nil), f.payloads...)
}

// echoBackend replies with the message it was sent.
type echoBackend struct {
	mu   sync.Mutex
	last chat.Request
}

func (b *echoBackend) Complete(ctx context.Context, req chat.Request) (string, error) {
	b.mu.Lock()
	b.last = req
	b.mu.Unlock()
	return "you said " + req.Message, nil
}

type stack struct {
	srv     *httptest.Server
	hf      *fakeHF
	backend *echoBackend
}

type stackOptions struct {
	script      []int
	imgSize     int
	maxInflight int
	maxQueue    int
	maxWait     time.Duration
	gated       bool
}

// newStack wires the real pipeline, provider client and HTTP layer against
// a fake provider.
func newStack(t *testing.T, o stackOptions) *stack {
	t.Helper()
	if o.imgSize == 0 {
		o.imgSize = 512
	}
	hf := &fakeHF{script: o.script, img: pngOf(t, o.imgSize, o.imgSize)}
	if o.gated {
		hf.gate = make(chan struct{})
		hf.entered = make(chan struct{}, 8)
	}
	hfSrv := httptest.NewServer(hf)
	t.Cleanup(hfSrv.Close)

	log := zerolog.Nop()
	client := imagegen.NewProviderClient(imagegen.ProviderConfig{
		BaseURL:   hfSrv.URL,
		APIKey:    "hf_test",
		Timeout:   5 * time.Second,
		RetryWait: 20 * time.Millisecond,
	}, log)
	images := imagegen.NewService(registry.MustBuiltin(), client, log,
		imagegen.WithAdmission(o.maxInflight, o.maxQueue, o.maxWait))
	backend := &echoBackend{}
	chatSvc := chat.NewService(backend, chat.Config{}, log)

	srv := httptest.NewServer(httpapi.NewMux(httpapi.Services{Images: images, Chat: chatSvc}))
	t.Cleanup(srv.Close)
	if hf.gate != nil {
		t.Cleanup(func() {
			defer func() { _ = recover() }()
			close(hf.gate)
		})
	}
	return &stack{srv: srv, hf: hf, backend: backend}
}

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{G: uint8(x), B: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, strings.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func decodeResult(t *testing.T, body []byte) types.GenerationResult {
	t.Helper()
	var res types.GenerationResult
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatalf("result json: %v body=%s", err, body)
	}
	return res
}
