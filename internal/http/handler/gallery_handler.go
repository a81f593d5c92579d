package handler

import (
	"errors"
	"net/http"

	"github.com/Zecser/Catering-and-Tourism/internal/http/response"
	"github.com/Zecser/Catering-and-Tourism/internal/repository"
	"github.com/Zecser/Catering-and-Tourism/internal/service"
)

const maxUploadMemory = 10 << 20

type GalleryHandler struct {
	gallerySvc *service.GalleryService
}

func NewGalleryHandler(gallerySvc *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallerySvc: gallerySvc}
}

func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.gallerySvc.List(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrStorageDisabled) {
			response.Error(w, r, http.StatusServiceUnavailable, "INTERNAL", "Gallery storage is not configured", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "Server error", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, items)
}

func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "Failed to parse multipart form", nil)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "Image file is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	item, err := h.gallerySvc.Upload(r.Context(), trimmed(r.FormValue("title")),
		file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooBig):
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		case errors.Is(err, service.ErrInvalidFileType):
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		case errors.Is(err, service.ErrStorageDisabled):
			response.Error(w, r, http.StatusServiceUnavailable, "INTERNAL", "Gallery storage is not configured", nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "Server error", nil)
		}
		return
	}
	response.JSON(w, r, http.StatusCreated, item)
}

func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.gallerySvc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrGalleryImageNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "Gallery image not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "Server error", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"message": "Gallery image deleted successfully"})
}
