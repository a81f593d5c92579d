package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Zecser/Catering-and-Tourism/internal/domain"
	"github.com/Zecser/Catering-and-Tourism/internal/http/middleware"
	"github.com/Zecser/Catering-and-Tourism/internal/http/response"
	"github.com/Zecser/Catering-and-Tourism/internal/security"
	"github.com/Zecser/Catering-and-Tourism/internal/service"
)

type AuthHandler struct {
	authSvc    *service.AuthService
	cookies    *security.CookieManager
	refreshTTL time.Duration
}

func NewAuthHandler(authSvc *service.AuthService, cookies *security.CookieManager, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cookies: cookies, refreshTTL: refreshTTL}
}

type signupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	MobileNumber    string `json:"mobileNumber"`
}

func (req *signupRequest) validate() []FieldError {
	var errs []FieldError
	errs = append(errs, validUsername(trimmed(req.Username))...)
	errs = append(errs, validEmail(trimmed(req.Email))...)
	errs = append(errs, validPassword(req.Password, "Password")...)
	errs = append(errs, validMobileNumber(trimmed(req.MobileNumber))...)
	errs = append(errs, passwordsMatch(req.Password, req.ConfirmPassword)...)
	return errs
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type resetPasswordRequest struct {
	Email           string `json:"email"`
	OTP             string `json:"otp"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Signup registers a regular user. The role is fixed by the route, never
// taken from the request body.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	h.signup(w, r, domain.RoleUser, "User registered successfully")
}

func (h *AuthHandler) AdminSignup(w http.ResponseWriter, r *http.Request) {
	h.signup(w, r, domain.RoleAdmin, "Admin registered successfully")
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request, role domain.Role, message string) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationErrors(w, r, errs)
		return
	}

	result, err := h.authSvc.Signup(r.Context(), service.SignupInput{
		Username:     trimmed(req.Username),
		Email:        trimmed(req.Email),
		Password:     req.Password,
		MobileNumber: trimmed(req.MobileNumber),
	}, role)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			response.Error(w, r, http.StatusBadRequest, "DUPLICATE_EMAIL", "Email already registered", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "Server error", nil)
		return
	}

	h.cookies.SetRefreshToken(w, result.RefreshToken, h.refreshTTL)
	response.JSON(w, r, http.StatusCreated, map[string]any{
		"message":      message,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"user":         result.User,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var errs []FieldError
	errs = append(errs, validEmail(trimmed(req.Email))...)
	if req.Password == "" {
		errs = append(errs, FieldError{"Password is required"})
	}
	if len(errs) > 0 {
		writeValidationErrors(w, r, errs)
		return
	}

	result, err := h.authSvc.Login(r.Context(), trimmed(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(w, r, http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid credentials", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "Server error", nil)
		return
	}

	h.cookies.SetRefreshToken(w, result.RefreshToken, h.refreshTTL)
	response.JSON(w, r, http.StatusOK, map[string]any{
		"message":      "Login successful",
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"user":         result.User,
	})
}

// Refresh reads the refresh token from its cookie, never from the body.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := security.GetCookie(r, security.RefreshTokenCookie)
	if token == "" {
		response.Error(w, r, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "No refresh token provided", nil)
		return
	}

	pair, err := h.authSvc.Refresh(r.Context(), token)
	if err != nil {
		response.Error(w, r, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Invalid refresh token", nil)
		return
	}

	h.cookies.SetRefreshToken(w, pair.RefreshToken, h.refreshTTL)
	response.JSON(w, r, http.StatusOK, map[string]any{"accessToken": pair.AccessToken})
}

// Logout only clears the cookie; there is no server-side session to end.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.ClearRefreshToken(w)
	response.JSON(w, r, http.StatusOK, map[string]any{"message": "Logged out successfully"})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validEmail(trimmed(req.Email)); len(errs) > 0 {
		writeValidationErrors(w, r, errs)
		return
	}

	if err := h.authSvc.ForgotPassword(r.Context(), trimmed(req.Email)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(w, r, http.StatusBadRequest, "USER_NOT_FOUND", "User not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "Server error", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"message": "OTP sent to email for password reset"})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var errs []FieldError
	errs = append(errs, validEmail(trimmed(req.Email))...)
	errs = append(errs, validOTP(trimmed(req.OTP))...)
	if len(errs) > 0 {
		writeValidationErrors(w, r, errs)
		return
	}

	if err := h.authSvc.VerifyOTP(r.Context(), trimmed(req.Email), trimmed(req.OTP)); err != nil {
		h.writeOTPError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"message": "OTP verified successfully"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var errs []FieldError
	errs = append(errs, validEmail(trimmed(req.Email))...)
	errs = append(errs, validOTP(trimmed(req.OTP))...)
	errs = append(errs, validPassword(req.NewPassword, "New password")...)
	errs = append(errs, passwordsMatch(req.NewPassword, req.ConfirmPassword)...)
	if len(errs) > 0 {
		writeValidationErrors(w, r, errs)
		return
	}

	if err := h.authSvc.ResetPassword(r.Context(), trimmed(req.Email), trimmed(req.OTP), req.NewPassword); err != nil {
		h.writeOTPError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"message": "Password reset successfully"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}
	user, err := h.authSvc.Profile(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "Server error", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, user)
}

// Wrong code, expired code and already-used code all map to the same
// response on purpose.
func (h *AuthHandler) writeOTPError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.Error(w, r, http.StatusBadRequest, "USER_NOT_FOUND", "User not found", nil)
	case errors.Is(err, service.ErrInvalidOrExpiredOTP):
		response.Error(w, r, http.StatusBadRequest, "INVALID_OR_EXPIRED_OTP", "Invalid or expired OTP", nil)
	default:
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "Server error", nil)
	}
}
