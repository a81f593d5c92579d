package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)

	JSON(rec, req, http.StatusCreated, map[string]string{"message": "ok"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
		Meta    struct {
			RequestID string `json:"request_id"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Error("success should be true")
	}
	if body.Data["message"] != "ok" {
		t.Errorf("data = %v", body.Data)
	}
	if body.Meta.RequestID == "" {
		t.Error("meta.request_id should always be present")
	}
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

	Error(rec, req, http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid credentials", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success {
		t.Error("success should be false")
	}
	if body.Error.Code != "INVALID_CREDENTIALS" || body.Error.Message != "Invalid credentials" {
		t.Errorf("error = %+v", body.Error)
	}
}

func TestErrorProblemJSONNegotiation(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.Header.Set("Accept", "application/problem+json")

	Error(rec, req, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)

	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("Content-Type = %q", ct)
	}
	var body struct {
		Type     string `json:"type"`
		Title    string `json:"title"`
		Status   int    `json:"status"`
		Detail   string `json:"detail"`
		Instance string `json:"instance"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Type != "urn:problem:catering-tourism:unauthorized" {
		t.Errorf("type = %q", body.Type)
	}
	if body.Title != "Unauthorized" || body.Status != 401 {
		t.Errorf("title/status = %q/%d", body.Title, body.Status)
	}
	if body.Instance != "/api/auth/login" {
		t.Errorf("instance = %q", body.Instance)
	}
}

func TestErrorIgnoresZeroQualityProblemJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/problem+json;q=0")

	Error(rec, req, http.StatusNotFound, "NOT_FOUND", "Not found", nil)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want plain JSON when q=0", ct)
	}
}
