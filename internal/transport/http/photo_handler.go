package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/picstash/picstash/internal/domain"
	"github.com/picstash/picstash/internal/logger"
	"github.com/picstash/picstash/internal/usecase"
)

// PhotoHandler handles photo-related HTTP requests
type PhotoHandler struct {
	uploads *usecase.UploadService
	gallery *usecase.GalleryService
	photos  *usecase.PhotoService
	logg    *logger.Logger
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(uploads *usecase.UploadService, gallery *usecase.GalleryService, photos *usecase.PhotoService, logg *logger.Logger) *PhotoHandler {
	return &PhotoHandler{
		uploads: uploads,
		gallery: gallery,
		photos:  photos,
		logg:    logg,
	}
}

type createUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

type createUploadResponse struct {
	UploadURL string            `json:"uploadUrl"`
	Fields    map[string]string `json:"fields"`
	PhotoID   string            `json:"photoId"`
	Key       string            `json:"key"`
}

// CreateUpload handles POST /api/uploads
func (h *PhotoHandler) CreateUpload(w http.ResponseWriter, r *http.Request) {
	var req createUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest,
			"Missing required parameters: filename and contentType")
		return
	}

	intent, err := h.uploads.CreateUploadIntent(r.Context(), req.Filename, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingParameter):
			respondError(w, http.StatusBadRequest,
				"Missing required parameters: filename and contentType")
		case errors.Is(err, domain.ErrInvalidContentType):
			respondError(w, http.StatusBadRequest,
				"Invalid file type. Only JPEG, PNG, and GIF images are allowed.")
		default:
			h.logg.Error("failed to create upload intent", "error", err)
			respondError(w, http.StatusInternalServerError,
				"Failed to generate upload URL. Please try again.")
		}
		return
	}

	respondJSON(w, http.StatusOK, createUploadResponse{
		UploadURL: intent.UploadURL,
		Fields:    intent.Fields,
		PhotoID:   intent.PhotoID,
		Key:       intent.Key,
	})
}

type galleryPhotoResponse struct {
	PhotoID             string             `json:"photoId"`
	Filename            string             `json:"filename"`
	UploadDate          string             `json:"uploadDate"`
	FileSize            int64              `json:"fileSize"`
	ThumbnailURL        string             `json:"thumbnailUrl"`
	PhotoURL            string             `json:"photoUrl"`
	Tags                []string           `json:"tags"`
	Dimensions          *domain.Dimensions `json:"dimensions,omitempty"`
	ThumbnailDimensions *domain.Dimensions `json:"thumbnailDimensions,omitempty"`
}

type listPhotosResponse struct {
	Photos []galleryPhotoResponse `json:"photos"`
}

// List handles GET /api/photos
func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	photos, err := h.gallery.ListPhotos(r.Context())
	if err != nil {
		h.logg.Error("failed to list photos", "error", err)
		respondError(w, http.StatusInternalServerError,
			"Failed to retrieve photos. Please try again.")
		return
	}

	out := make([]galleryPhotoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, galleryPhotoResponse{
			PhotoID:             p.PhotoID,
			Filename:            p.Filename,
			UploadDate:          p.UploadDate,
			FileSize:            p.FileSize,
			ThumbnailURL:        p.ThumbnailURL,
			PhotoURL:            p.PhotoURL,
			Tags:                p.Tags,
			Dimensions:          p.Dimensions,
			ThumbnailDimensions: p.ThumbnailDimensions,
		})
	}

	respondJSON(w, http.StatusOK, listPhotosResponse{Photos: out})
}

type deletePhotoRequest struct {
	PhotoID string `json:"photoId"`
}

type deletePhotoResponse struct {
	Message string `json:"message"`
	PhotoID string `json:"photoId"`
}

// Delete handles DELETE /api/photos/{photoId}. The ID may also arrive in
// the request body for clients that cannot set it in the path.
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	photoID := r.PathValue("photoId")
	if photoID == "" {
		var req deletePhotoRequest
		if err := decodeJSON(r, &req); err == nil {
			photoID = req.PhotoID
		}
	}

	if strings.TrimSpace(photoID) == "" {
		respondError(w, http.StatusBadRequest, "Missing required parameter: photoId")
		return
	}

	if err := h.photos.DeletePhoto(r.Context(), photoID); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingParameter):
			respondError(w, http.StatusBadRequest, "Missing required parameter: photoId")
		case errors.Is(err, domain.ErrPhotoNotFound):
			respondError(w, http.StatusNotFound, "Photo not found")
		case errors.Is(err, domain.ErrMetadataDelete):
			respondError(w, http.StatusInternalServerError,
				"Failed to delete photo metadata.")
		case errors.Is(err, domain.ErrMetadataStore):
			respondError(w, http.StatusInternalServerError,
				"Failed to retrieve photo metadata. Please try again.")
		default:
			h.logg.Error("failed to delete photo", "error", err, "photo_id", photoID)
			respondError(w, http.StatusInternalServerError,
				"An unexpected error occurred. Please try again.")
		}
		return
	}

	respondJSON(w, http.StatusOK, deletePhotoResponse{
		Message: "Photo deleted successfully",
		PhotoID: photoID,
	})
}
