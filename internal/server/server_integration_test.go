package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/gesturetree/internal/store"
)

func TestAPI_PhotoWorkflow(t *testing.T) {
	// Setup
	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "test.db"))
	defer s.Close()

	uploads := 0
	srv := New(Config{
		Store:    s,
		OnUpload: func(p *store.Photo) { uploads++ },
	})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. Upload a photo
	image := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46, 0x49, 0x46}
	createBody, _ := json.Marshal(map[string]any{
		"data":   base64.StdEncoding.EncodeToString(image),
		"width":  640,
		"height": 480,
	})
	resp, err := client.Post(ts.URL+"/api/photos", "application/json", bytes.NewReader(createBody))
	if err != nil {
		t.Fatalf("POST /api/photos error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created struct {
		ID string `json:"id"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	if created.ID == "" {
		t.Fatal("created photo should have an ID")
	}
	if uploads != 1 {
		t.Errorf("uploads = %d, want 1", uploads)
	}

	// 2. List photos
	resp, _ = client.Get(ts.URL + "/api/photos")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/photos status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var listed struct {
		Photos []struct {
			ID string `json:"id"`
		} `json:"photos"`
	}
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()

	if len(listed.Photos) != 1 {
		t.Fatalf("len(photos) = %d, want 1", len(listed.Photos))
	}

	// 3. Fetch the raw image back
	resp, _ = client.Get(ts.URL + "/api/photos/" + created.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/photos/%s status = %d, want %d", created.ID, resp.StatusCode, http.StatusOK)
	}
	var body bytes.Buffer
	body.ReadFrom(resp.Body)
	resp.Body.Close()
	if !bytes.Equal(body.Bytes(), image) {
		t.Error("fetched photo bytes differ from the upload")
	}

	// 4. Delete the photo
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/photos/"+created.ID, nil)
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	resp.Body.Close()

	// 5. Verify deleted
	resp, _ = client.Get(ts.URL + "/api/photos/" + created.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	json.NewDecoder(resp.Body).Decode(&health)

	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}
}
