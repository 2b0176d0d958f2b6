package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/gesturetree/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "gesturetree-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

// jpegHeader is enough of a JPEG for content-type sniffing in tests.
var jpegHeader = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46, 0x49, 0x46}

func TestPhotoHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewPhotoHandler(s)

	photo := &store.Photo{
		ID:     "test-photo-1",
		Data:   jpegHeader,
		Width:  640,
		Height: 480,
	}
	if err := s.Photos().Create(photo); err != nil {
		t.Fatalf("failed to create photo: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/photos", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response listPhotosResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Photos) != 1 {
		t.Fatalf("expected 1 photo, got %d", len(response.Photos))
	}
	if response.Photos[0].ID != "test-photo-1" {
		t.Errorf("expected photo ID 'test-photo-1', got %q", response.Photos[0].ID)
	}
	if response.Photos[0].Width != 640 {
		t.Errorf("expected width 640, got %d", response.Photos[0].Width)
	}
}

func TestPhotoHandler_Create(t *testing.T) {
	s := newTestStore(t)
	handler := NewPhotoHandler(s)

	var uploaded *store.Photo
	handler.OnUpload = func(p *store.Photo) { uploaded = p }

	body, _ := json.Marshal(createPhotoRequest{
		Data:   base64.StdEncoding.EncodeToString(jpegHeader),
		Width:  320,
		Height: 240,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/photos", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var response photoResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.ID == "" {
		t.Error("expected a generated photo ID")
	}
	if response.Width != 320 || response.Height != 240 {
		t.Errorf("unexpected dimensions: %+v", response)
	}

	if uploaded == nil {
		t.Fatal("OnUpload should fire after a successful create")
	}
	if uploaded.ID != response.ID {
		t.Errorf("OnUpload photo ID = %q, want %q", uploaded.ID, response.ID)
	}

	// The stored photo round-trips the original bytes.
	stored, err := s.Photos().GetByID(response.ID)
	if err != nil {
		t.Fatalf("failed to get stored photo: %v", err)
	}
	if !bytes.Equal(stored.Data, jpegHeader) {
		t.Error("stored photo bytes differ from the upload")
	}
}

func TestPhotoHandler_Create_Invalid(t *testing.T) {
	s := newTestStore(t)
	handler := NewPhotoHandler(s)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{
			name:     "invalid JSON",
			body:     "{not json",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing data",
			body:     `{"width": 100, "height": 100}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid base64",
			body:     `{"data": "!!not-base64!!"}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/photos", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}

func TestPhotoHandler_Get(t *testing.T) {
	s := newTestStore(t)
	handler := NewPhotoHandler(s)

	photo := &store.Photo{ID: "test-photo-1", Data: jpegHeader}
	if err := s.Photos().Create(photo); err != nil {
		t.Fatalf("failed to create photo: %v", err)
	}

	t.Run("returns raw image bytes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/photos/test-photo-1", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if !bytes.Equal(rec.Body.Bytes(), jpegHeader) {
			t.Error("response body should be the raw photo bytes")
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
			t.Errorf("expected Content-Type image/jpeg, got %s", ct)
		}
	})

	t.Run("unknown photo returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/photos/missing", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})
}

func TestPhotoHandler_Delete(t *testing.T) {
	s := newTestStore(t)
	handler := NewPhotoHandler(s)

	var deleted string
	handler.OnDelete = func(id string) { deleted = id }

	photo := &store.Photo{ID: "test-photo-1", Data: jpegHeader}
	if err := s.Photos().Create(photo); err != nil {
		t.Fatalf("failed to create photo: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/photos/test-photo-1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if deleted != "test-photo-1" {
		t.Errorf("OnDelete id = %q, want %q", deleted, "test-photo-1")
	}

	// Deleting again returns 404 and does not fire the callback.
	deleted = ""
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/photos/test-photo-1", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	if deleted != "" {
		t.Error("OnDelete should not fire for a missing photo")
	}
}

func TestPhotoHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewPhotoHandler(s)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/api/photos"},
		{http.MethodDelete, "/api/photos"},
		{http.MethodPost, "/api/photos/some-id"},
		{http.MethodPut, "/api/photos/some-id"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected status %d, got %d", tt.method, tt.path, http.StatusMethodNotAllowed, rec.Code)
		}
	}
}
