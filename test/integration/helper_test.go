package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Zecser/Catering-and-Tourism/internal/domain"
	"github.com/Zecser/Catering-and-Tourism/internal/http/handler"
	"github.com/Zecser/Catering-and-Tourism/internal/http/middleware"
	"github.com/Zecser/Catering-and-Tourism/internal/http/router"
	"github.com/Zecser/Catering-and-Tourism/internal/repository"
	"github.com/Zecser/Catering-and-Tourism/internal/security"
	"github.com/Zecser/Catering-and-Tourism/internal/service"
)

// captureMailer records the last message instead of sending, so tests can
// fish the OTP out of the reset email.
type captureMailer struct {
	to   string
	body string
}

func (m *captureMailer) Send(_ context.Context, to, _, textBody, _ string) error {
	m.to = to
	m.body = textBody
	return nil
}

func (m *captureMailer) lastOTP() string {
	return regexp.MustCompile(`\d{6}`).FindString(m.body)
}

type testStack struct {
	handler http.Handler
	mailer  *captureMailer
	jwtMgr  *security.JWTManager
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	return newTestStackWithAuthLimit(t, 1000)
}

func newTestStackWithAuthLimit(t *testing.T, authRPM int) *testStack {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.OTP{}, &domain.Blog{}, &domain.GalleryImage{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mailer := &captureMailer{}
	jwtMgr := security.NewJWTManager(
		"integration-access-secret-0123456789",
		"integration-refresh-secret-0123456789",
		15*time.Minute, 7*24*time.Hour,
	)

	users := repository.NewUserRepository(db)
	otps := repository.NewOTPRepository(db)
	authSvc := service.NewAuthService(users, otps,
		security.NewPasswordHasher(4), jwtMgr, mailer, logger, 10*time.Minute)
	blogSvc := service.NewBlogService(repository.NewBlogRepository(db))
	gallerySvc := service.NewGalleryService(repository.NewGalleryRepository(db), service.NewDisabledStorage())
	contactSvc := service.NewContactService(mailer, "admin@example.com")

	cookies := security.NewCookieManager(false, "none")
	h := router.New(router.Dependencies{
		Logger:           logger,
		JWTManager:       jwtMgr,
		AuthHandler:      handler.NewAuthHandler(authSvc, cookies, 7*24*time.Hour),
		BlogHandler:      handler.NewBlogHandler(blogSvc),
		GalleryHandler:   handler.NewGalleryHandler(gallerySvc),
		ContactHandler:   handler.NewContactHandler(contactSvc),
		Limiter:          middleware.NewLocalFixedWindowLimiter(),
		LimiterMode:      middleware.FailClosed,
		CORSOrigins:      []string{"http://localhost:3000"},
		AuthRateLimitRPM: authRPM,
		APIRateLimitRPM:  1000,
	})
	return &testStack{handler: h, mailer: mailer, jwtMgr: jwtMgr}
}

type requestOpt func(*http.Request)

func withBearer(token string) requestOpt {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withCookie(c *http.Cookie) requestOpt {
	return func(r *http.Request) { r.AddCookie(c) }
}

func (s *testStack) do(t *testing.T, method, path string, body any, opts ...requestOpt) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
		Error   map[string]any `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	if envelope.Error != nil {
		return envelope.Error
	}
	return envelope.Data
}

func refreshCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == security.RefreshTokenCookie {
			return c
		}
	}
	t.Fatal("refreshToken cookie not set")
	return nil
}

func signupBody(email string) map[string]any {
	return map[string]any{
		"username":        "alice",
		"email":           email,
		"password":        "password1",
		"confirmPassword": "password1",
		"mobileNumber":    "9876543210",
	}
}

func (s *testStack) signup(t *testing.T, email string) (accessToken string, cookie *http.Cookie) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/signup", signupBody(email))
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body %s", rec.Code, rec.Body.String())
	}
	data := decodeBody(t, rec)
	token, _ := data["accessToken"].(string)
	if token == "" {
		t.Fatal("signup response missing accessToken")
	}
	return token, refreshCookie(t, rec)
}
