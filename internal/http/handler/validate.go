package handler

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"regexp"
	"strings"

	"github.com/Zecser/Catering-and-Tourism/internal/http/response"
)

// FieldError is one human-readable validation message, mirroring the shape
// the front-end already consumes.
type FieldError struct {
	Message string `json:"message"`
}

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	digitsRe   = regexp.MustCompile(`^\d+$`)
	hasLetter  = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit   = regexp.MustCompile(`\d`)
)

func validUsername(username string) []FieldError {
	var errs []FieldError
	switch {
	case username == "":
		errs = append(errs, FieldError{"Username is required"})
	case len(username) < 2:
		errs = append(errs, FieldError{"Username must be at least 2 characters"})
	case len(username) > 50:
		errs = append(errs, FieldError{"Username must not exceed 50 characters"})
	case !usernameRe.MatchString(username):
		errs = append(errs, FieldError{"Username can only contain letters, numbers, underscores, dots, and hyphens"})
	}
	return errs
}

func validEmail(email string) []FieldError {
	var errs []FieldError
	switch {
	case email == "":
		errs = append(errs, FieldError{"Email is required"})
	case len(email) > 100:
		errs = append(errs, FieldError{"Email must not exceed 100 characters"})
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			errs = append(errs, FieldError{"Please provide a valid email address"})
		}
	}
	return errs
}

func validPassword(password, label string) []FieldError {
	var errs []FieldError
	switch {
	case password == "":
		errs = append(errs, FieldError{label + " is required"})
	case len(password) < 6:
		errs = append(errs, FieldError{"Password must be at least 6 characters"})
	case len(password) > 128:
		errs = append(errs, FieldError{"Password must not exceed 128 characters"})
	case !hasLetter.MatchString(password) || !hasDigit.MatchString(password):
		errs = append(errs, FieldError{"Password must contain at least one letter and one number"})
	}
	return errs
}

func validMobileNumber(mobile string) []FieldError {
	var errs []FieldError
	switch {
	case mobile == "":
		errs = append(errs, FieldError{"Mobile number is required"})
	case len(mobile) != 10 || !digitsRe.MatchString(mobile):
		errs = append(errs, FieldError{"Mobile number must be exactly 10 digits"})
	}
	return errs
}

func validOTP(otp string) []FieldError {
	var errs []FieldError
	switch {
	case otp == "":
		errs = append(errs, FieldError{"OTP is required"})
	case len(otp) != 6 || !digitsRe.MatchString(otp):
		errs = append(errs, FieldError{"OTP must be exactly 6 digits"})
	}
	return errs
}

func passwordsMatch(password, confirm string) []FieldError {
	if password != confirm {
		return []FieldError{{"Passwords don't match"}}
	}
	return nil
}

// decodeJSON parses the body and writes the error response itself on
// failure, so handlers can bail with a bare return.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return false
	}
	return true
}

func writeValidationErrors(w http.ResponseWriter, r *http.Request, errs []FieldError) {
	response.Error(w, r, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
}

func trimmed(s string) string { return strings.TrimSpace(s) }
