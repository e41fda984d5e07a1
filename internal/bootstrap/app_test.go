package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"studybyte-backend/internal/llm"
	"studybyte-backend/internal/shared/config"
	"studybyte-backend/internal/shared/telemetry"
)

const lecture = "Photosynthesis converts light energy into chemical energy. " +
	"Chlorophyll absorbs light inside the chloroplast. " +
	"The light reactions produce oxygen and chemical energy. " +
	"The Calvin cycle fixes carbon dioxide into sugar. " +
	"Photosynthesis sustains most life on the planet."

type fixedLLM struct{ reply string }

func (f fixedLLM) Generate(ctx context.Context, prompt string, params llm.Params) (string, error) {
	return f.reply, nil
}

type fixedExtractor struct{ text string }

func (f fixedExtractor) ExtractFile(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return f.text, nil
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	telemetry.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newApp(t *testing.T, mutate func(*config.Config), opts ...Option) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		LLMProvider: "none",
		UploadDir:   dir,
		MaxUploadMB: 5,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	app, err := Build(cfg, opts...)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return app, dir
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec, decode(t, rec)
}

func doUpload(t *testing.T, r http.Handler, path, field, name string, content []byte) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec, decode(t, rec)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := map[string]any{}
	if rec.Body.Len() == 0 {
		return body
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return body
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected uploads to be removed, found %d entries", len(entries))
	}
}

func TestBuildDefaults(t *testing.T) {
	app, err := Build(config.Config{LLMProvider: "none"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.Config.UploadDir != "uploads" || app.Config.MaxUploadMB != 200 || app.Config.Env != "dev" {
		t.Fatalf("unexpected defaults: %+v", app.Config)
	}
	if app.Config.Heuristics.Notes.CharsPerPage != 2000 {
		t.Fatal("zero heuristics must be replaced by the defaults")
	}
	if llm.Available(app.LLM) {
		t.Fatal("provider none must use the placeholder client")
	}
}

func TestBuildMissingKeyFallsBackToPlaceholder(t *testing.T) {
	for _, provider := range []string{"gemini", "openai"} {
		app, _ := newApp(t, func(c *config.Config) { c.LLMProvider = provider })
		if llm.Available(app.LLM) {
			t.Fatalf("%s without a key must use the placeholder client", provider)
		}
	}
}

func TestBuildInvalidHeuristicsUseDefaults(t *testing.T) {
	app, _ := newApp(t, func(c *config.Config) {
		c.Heuristics = config.DefaultHeuristics()
		c.Heuristics.Notes.CharsPerPage = 0
	})
	if app.Config.Heuristics.Notes.CharsPerPage != 2000 {
		t.Fatalf("expected defaults, got %+v", app.Config.Heuristics.Notes)
	}
}

func TestHealth(t *testing.T) {
	app, _ := newApp(t, nil)
	rec, body := doJSON(t, app.Router, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK || body["status"] != "healthy" || body["gemini_available"] != false {
		t.Fatalf("unexpected health: %d %v", rec.Code, body)
	}

	app, _ = newApp(t, nil, WithLLM(fixedLLM{reply: "ok"}))
	_, body = doJSON(t, app.Router, http.MethodGet, "/api/health", "")
	if body["gemini_available"] != true {
		t.Fatalf("expected model available, got %v", body)
	}
}

func TestChatFallback(t *testing.T) {
	app, _ := newApp(t, nil)
	rec, body := doJSON(t, app.Router, http.MethodPost, "/api/chat", `{"message":"Exams have me so overwhelmed this week."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", rec.Code, body)
	}
	if body["sentiment"] != "negative" || body["ai_powered"] != false {
		t.Fatalf("unexpected chat body: %v", body)
	}
	if body["response"] != "I hear you. You're not alone, and it's okay to feel this way. 💙" {
		t.Fatalf("unexpected fallback response: %v", body["response"])
	}
	if ts, _ := body["timestamp"].(string); len(ts) != 5 || ts[2] != ':' {
		t.Fatalf("expected HH:MM timestamp, got %v", body["timestamp"])
	}
}

func TestChatWithModel(t *testing.T) {
	app, _ := newApp(t, nil, WithLLM(fixedLLM{reply: "You are doing great, keep going."}))
	rec, body := doJSON(t, app.Router, http.MethodPost, "/api/chat", `{"message":"I finished my essay"}`)
	if rec.Code != http.StatusOK || body["ai_powered"] != true {
		t.Fatalf("unexpected chat: %d %v", rec.Code, body)
	}
	if body["response"] != "You are doing great, keep going." || body["sentiment"] != "neutral" {
		t.Fatalf("unexpected chat body: %v", body)
	}
}

func TestChatRequiresMessage(t *testing.T) {
	app, _ := newApp(t, nil)
	for _, payload := range []string{`{"message":""}`, `{}`, `not json`} {
		rec, body := doJSON(t, app.Router, http.MethodPost, "/api/chat", payload)
		if rec.Code != http.StatusBadRequest || body["error"] != "Message is required" {
			t.Fatalf("payload %s: unexpected %d %v", payload, rec.Code, body)
		}
	}
}

func TestSummarizeFallback(t *testing.T) {
	app, _ := newApp(t, nil)
	payload, _ := json.Marshal(map[string]string{"text": lecture})
	rec, body := doJSON(t, app.Router, http.MethodPost, "/api/summarize", string(payload))
	if rec.Code != http.StatusOK || body["ai_powered"] != false {
		t.Fatalf("unexpected summarize: %d %v", rec.Code, body)
	}
	if body["original_length"] != float64(len(strings.Fields(lecture))) {
		t.Fatalf("unexpected original_length: %v", body["original_length"])
	}
	summary, _ := body["summary"].(string)
	if summary == "" || body["summary_length"] != float64(len(strings.Fields(summary))) {
		t.Fatalf("unexpected summary: %v", body)
	}

	rec, body = doJSON(t, app.Router, http.MethodPost, "/api/summarize", `{"text":""}`)
	if rec.Code != http.StatusBadRequest || body["error"] != "Text is required" {
		t.Fatalf("expected 400, got %d %v", rec.Code, body)
	}
}

func TestProcessText(t *testing.T) {
	app, _ := newApp(t, nil)
	payload, _ := json.Marshal(map[string]string{"text": lecture})
	rec, body := doJSON(t, app.Router, http.MethodPost, "/api/process-text", string(payload))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", rec.Code, body)
	}
	if body["word_count"] != float64(len(strings.Fields(lecture))) {
		t.Fatalf("unexpected word_count: %v", body["word_count"])
	}
	if points, _ := body["key_points"].([]any); len(points) != 5 {
		t.Fatalf("expected 5 key points, got %v", body["key_points"])
	}

	rec, body = doJSON(t, app.Router, http.MethodPost, "/api/process-text", `{"text":"too short"}`)
	if rec.Code != http.StatusBadRequest || body["error"] != "Text too short for meaningful analysis" {
		t.Fatalf("expected 400, got %d %v", rec.Code, body)
	}
	rec, body = doJSON(t, app.Router, http.MethodPost, "/api/process-text", `{}`)
	if rec.Code != http.StatusBadRequest || body["error"] != "No text provided" {
		t.Fatalf("expected 400, got %d %v", rec.Code, body)
	}
}

func TestProcessVideo(t *testing.T) {
	app, dir := newApp(t, nil)
	rec, body := doUpload(t, app.Router, "/api/process-video", "video_file", "lecture.mp3", bytes.Repeat([]byte{1}, 400<<10))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", rec.Code, body)
	}
	if body["file_type"] != "audio" || body["duration"] != "~1 minutes (estimated)" || body["status"] != "processed" {
		t.Fatalf("unexpected media body: %v", body)
	}
	if body["ai_powered"] != false || !strings.Contains(body["summary"].(string), "Music") {
		t.Fatalf("expected the music analysis as fallback summary, got %v", body["summary"])
	}
	assertEmptyDir(t, dir)
}

func TestProcessVideoUnsupported(t *testing.T) {
	app, dir := newApp(t, nil)
	rec, body := doUpload(t, app.Router, "/api/process-video", "video_file", "notes.txt", []byte("hello"))
	if rec.Code != http.StatusBadRequest || body["error"] != "Unsupported file format: .txt" {
		t.Fatalf("expected 400, got %d %v", rec.Code, body)
	}
	if body["supported_formats"] != "MP4, AVI, MOV, MP3, WAV, M4A, WEBM, MKV" {
		t.Fatalf("expected supported formats, got %v", body["supported_formats"])
	}
	assertEmptyDir(t, dir)
}

func TestProcessVideoTooLarge(t *testing.T) {
	app, dir := newApp(t, func(c *config.Config) { c.MaxUploadMB = 1 })
	rec, body := doUpload(t, app.Router, "/api/process-video", "video_file", "big.mp4", bytes.Repeat([]byte{1}, 2<<20))
	if rec.Code != http.StatusRequestEntityTooLarge || body["error"] != "File too large. Maximum size is 1MB." {
		t.Fatalf("expected 413, got %d %v", rec.Code, body)
	}
	assertEmptyDir(t, dir)
}

func TestProcessPDF(t *testing.T) {
	app, dir := newApp(t, nil, WithExtractor(fixedExtractor{text: lecture}))
	rec, body := doUpload(t, app.Router, "/api/process-pdf", "pdf_file", "biology.pdf", []byte("%PDF-1.4 stub"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", rec.Code, body)
	}
	notes, _ := body["smart_notes"].(string)
	if !strings.Contains(notes, "\n\nKey Points:\n• ") {
		t.Fatalf("unexpected smart notes: %q", notes)
	}
	if defs, ok := body["definitions"].([]any); !ok || len(defs) != 0 {
		t.Fatalf("expected empty definitions, got %v", body["definitions"])
	}
	if body["pages"] != float64(0) {
		t.Fatalf("unexpected pages: %v", body["pages"])
	}
	assertEmptyDir(t, dir)
}

func TestProcessPDFErrors(t *testing.T) {
	app, dir := newApp(t, nil, WithExtractor(fixedExtractor{text: "Tiny."}))

	rec, body := doUpload(t, app.Router, "/api/process-pdf", "pdf_file", "notes.docx", []byte("x"))
	if rec.Code != http.StatusBadRequest || body["error"] != "Please upload a valid PDF file" {
		t.Fatalf("expected 400, got %d %v", rec.Code, body)
	}

	rec, body = doUpload(t, app.Router, "/api/process-pdf", "pdf_file", "short.pdf", []byte("%PDF-1.4"))
	if rec.Code != http.StatusBadRequest || body["error"] != "PDF contains insufficient text content" {
		t.Fatalf("expected 400, got %d %v", rec.Code, body)
	}
	assertEmptyDir(t, dir)

	app, _ = newApp(t, nil)
	rec, body = doUpload(t, app.Router, "/api/process-pdf", "pdf_file", "broken.pdf", []byte("not a pdf"))
	if rec.Code != http.StatusInternalServerError || !strings.HasPrefix(body["error"].(string), "Failed to process PDF: ") {
		t.Fatalf("expected 500, got %d %v", rec.Code, body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newApp(t, nil)
	doJSON(t, app.Router, http.MethodPost, "/api/chat", `{"message":"hello there"}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `feature_results_total{feature="chat",source="fallback"}`) {
		t.Fatalf("expected chat fallback counter, got:\n%s", rec.Body.String())
	}
}
