package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestStatus(t *testing.T) {
	for _, available := range []bool{true, false} {
		got := NewService(available).Status()
		if got.Status != "healthy" || got.AppName != "StudyByte" || got.GeminiAvailable != available {
			t.Fatalf("unexpected report: %+v", got)
		}
		if !reflect.DeepEqual(got.Features, []string{"Mental Health Chat", "Text Summarizer", "PDF Processor"}) {
			t.Fatalf("unexpected features: %v", got.Features)
		}
	}
}

func TestStatusFeaturesAreCopied(t *testing.T) {
	s := NewService(false)
	s.Status().Features[0] = "changed"
	if s.Status().Features[0] != "Mental Health Chat" {
		t.Fatal("callers must not be able to mutate the feature list")
	}
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(true)).RegisterRoutes(r.Group("/api"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" || body["gemini_available"] != true || body["app_name"] != "StudyByte" {
		t.Fatalf("unexpected body: %v", body)
	}
}
