package handler

import (
	"net/http"

	"github.com/Zecser/Catering-and-Tourism/internal/http/response"
	"github.com/Zecser/Catering-and-Tourism/internal/service"
)

type ContactHandler struct {
	contactSvc *service.ContactService
}

func NewContactHandler(contactSvc *service.ContactService) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (req *contactRequest) validate() []FieldError {
	var errs []FieldError
	if trimmed(req.Name) == "" {
		errs = append(errs, FieldError{"Name is required"})
	}
	errs = append(errs, validEmail(trimmed(req.Email))...)
	if trimmed(req.Message) == "" {
		errs = append(errs, FieldError{"Message is required"})
	}
	return errs
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationErrors(w, r, errs)
		return
	}

	err := h.contactSvc.Submit(r.Context(), service.ContactMessage{
		Name:    trimmed(req.Name),
		Email:   trimmed(req.Email),
		Phone:   trimmed(req.Phone),
		Message: trimmed(req.Message),
	})
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "Failed to send email", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"message": "Email sent successfully!"})
}
