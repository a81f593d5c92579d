package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Zecser/Catering-and-Tourism/internal/http/middleware"
	"github.com/Zecser/Catering-and-Tourism/internal/http/response"
	"github.com/Zecser/Catering-and-Tourism/internal/repository"
	"github.com/Zecser/Catering-and-Tourism/internal/service"
)

type BlogHandler struct {
	blogSvc *service.BlogService
}

func NewBlogHandler(blogSvc *service.BlogService) *BlogHandler {
	return &BlogHandler{blogSvc: blogSvc}
}

type blogRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

func (req *blogRequest) validate() []FieldError {
	var errs []FieldError
	if trimmed(req.Title) == "" {
		errs = append(errs, FieldError{"Title is required"})
	} else if len(req.Title) > 200 {
		errs = append(errs, FieldError{"Title must not exceed 200 characters"})
	}
	if trimmed(req.Content) == "" {
		errs = append(errs, FieldError{"Content is required"})
	}
	return errs
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	result, err := h.blogSvc.List(r.Context(), page, pageSize)
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "Server error", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{
		"blogs":     result.Items,
		"page":      result.Page,
		"page_size": result.PageSize,
		"total":     result.Total,
	})
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	blog, err := h.blogSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "Blog not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "Server error", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, blog)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}
	var req blogRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationErrors(w, r, errs)
		return
	}

	blog, err := h.blogSvc.Create(r.Context(), identity.UserID, service.BlogInput{
		Title:    trimmed(req.Title),
		Content:  req.Content,
		ImageURL: trimmed(req.ImageURL),
	})
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "Server error", nil)
		return
	}
	response.JSON(w, r, http.StatusCreated, blog)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req blogRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationErrors(w, r, errs)
		return
	}

	blog, err := h.blogSvc.Update(r.Context(), id, service.BlogInput{
		Title:    trimmed(req.Title),
		Content:  req.Content,
		ImageURL: trimmed(req.ImageURL),
	})
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "Blog not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "Server error", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, blog)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.blogSvc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "Blog not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "Server error", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"message": "Blog deleted successfully"})
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id64, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id64 == 0 {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid id", nil)
		return 0, false
	}
	return uint(id64), true
}
