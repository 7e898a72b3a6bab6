package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleS3EventMalformed(t *testing.T) {
	router := newTestRouter(t, newStubRepo(), &stubSigner{})

	req := httptest.NewRequest(http.MethodPost, "/internal/events/s3", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "invalid event payload" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestHandleS3EventEmpty(t *testing.T) {
	router := newTestRouter(t, newStubRepo(), &stubSigner{})

	req := httptest.NewRequest(http.MethodPost, "/internal/events/s3", strings.NewReader(`{"Records": []}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["received"] != float64(0) {
		t.Errorf("received = %v, want 0", body["received"])
	}
}

func TestHandleS3EventRecordsFailedDownloads(t *testing.T) {
	repo := newStubRepo()
	router := newTestRouter(t, repo, &stubSigner{})

	payload := `{"Records": [{"s3": {"bucket": {"name": "photos-bucket"}, "object": {"key": "photos/abc/cat.png"}}}]}`
	req := httptest.NewRequest(http.MethodPost, "/internal/events/s3", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	// stubStore has no objects, so ingestion records a failure
	stored, ok := repo.records["abc"]
	if !ok {
		t.Fatal("expected a failure record to be written")
	}
	if stored.ErrorMessage != "S3 download failed" {
		t.Errorf("errorMessage = %q", stored.ErrorMessage)
	}
}
