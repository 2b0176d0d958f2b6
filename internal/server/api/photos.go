// Package api provides HTTP API handlers for the GestureTree photo library.
package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/gesturetree/internal/store"
)

// maxPhotoBytes caps decoded upload size. Anything bigger than this is
// not a photo someone hangs on an ornament.
const maxPhotoBytes = 10 << 20

// PhotoHandler handles HTTP requests for photo resources.
type PhotoHandler struct {
	store *store.Store

	// OnUpload and OnDelete, when set, run after a successful store
	// mutation with the affected photo.
	OnUpload func(p *store.Photo)
	OnDelete func(id string)
}

// NewPhotoHandler creates a new PhotoHandler with the given store.
func NewPhotoHandler(s *store.Store) *PhotoHandler {
	return &PhotoHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *PhotoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse the path to determine if this is a collection or item request
	// Expected paths: /api/photos or /api/photos/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/photos")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/photos
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/photos/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createPhotoRequest struct {
	// Data is the base64-encoded image bytes.
	Data   string `json:"data"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type photoResponse struct {
	ID        string `json:"id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt string `json:"created_at"`
}

type listPhotosResponse struct {
	Photos []photoResponse `json:"photos"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Photo to a photoResponse. The image bytes
// stay out of list/create responses; GET /api/photos/{id} serves them raw.
func toResponse(p *store.Photo) photoResponse {
	return photoResponse{
		ID:        p.ID,
		Width:     p.Width,
		Height:    p.Height,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/photos and returns all photos in upload order.
func (h *PhotoHandler) list(w http.ResponseWriter, r *http.Request) {
	photos, err := h.store.Photos().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list photos")
		return
	}

	response := listPhotosResponse{
		Photos: make([]photoResponse, 0, len(photos)),
	}

	for _, p := range photos {
		response.Photos = append(response.Photos, toResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/photos/{id} and returns the raw image bytes.
func (h *PhotoHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	photo, err := h.store.Photos().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Photo not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get photo")
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(photo.Data))
	w.WriteHeader(http.StatusOK)
	w.Write(photo.Data)
}

// create handles POST /api/photos and stores a new photo.
func (h *PhotoHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Data == "" {
		writeError(w, http.StatusBadRequest, "Data is required")
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Data is not valid base64")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "Data is empty")
		return
	}
	if len(data) > maxPhotoBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "Photo too large")
		return
	}

	photo := &store.Photo{
		ID:     uuid.New().String(),
		Data:   data,
		Width:  req.Width,
		Height: req.Height,
	}

	if err := h.store.Photos().Create(photo); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create photo")
		return
	}

	if h.OnUpload != nil {
		h.OnUpload(photo)
	}

	writeJSON(w, http.StatusCreated, toResponse(photo))
}

// delete handles DELETE /api/photos/{id} and removes a photo.
func (h *PhotoHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Photos().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Photo not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete photo")
		return
	}

	if h.OnDelete != nil {
		h.OnDelete(id)
	}

	w.WriteHeader(http.StatusNoContent)
}
