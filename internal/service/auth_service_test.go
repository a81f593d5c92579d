package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/Zecser/Catering-and-Tourism/internal/domain"
	"github.com/Zecser/Catering-and-Tourism/internal/repository"
	"github.com/Zecser/Catering-and-Tourism/internal/security"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func (r *stubUserRepo) FindByEmail(email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(id uint) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *stubUserRepo) Create(user *domain.User) error {
	if _, ok := r.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.Email] = user
	return nil
}

func (r *stubUserRepo) UpdatePasswordHash(id uint, newHash string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = newHash
			return nil
		}
	}
	return repository.ErrUserNotFound
}

type stubOTPRepo struct {
	otps   map[uint]*domain.OTP
	nextID uint
}

func newStubOTPRepo() *stubOTPRepo {
	return &stubOTPRepo{otps: make(map[uint]*domain.OTP), nextID: 1}
}

func (r *stubOTPRepo) Issue(otp *domain.OTP) error {
	for id, existing := range r.otps {
		if existing.UserID == otp.UserID && existing.Purpose == otp.Purpose {
			delete(r.otps, id)
		}
	}
	otp.ID = r.nextID
	r.nextID++
	r.otps[otp.ID] = otp
	return nil
}

func (r *stubOTPRepo) FindActive(userID uint, code string, purpose domain.OTPPurpose, now time.Time) (*domain.OTP, error) {
	for _, otp := range r.otps {
		if otp.UserID == userID && otp.Code == code && otp.Purpose == purpose &&
			!otp.IsUsed && otp.ExpiresAt.After(now) {
			return otp, nil
		}
	}
	return nil, repository.ErrOTPNotFound
}

func (r *stubOTPRepo) MarkUsed(id uint) error {
	otp, ok := r.otps[id]
	if !ok || otp.IsUsed {
		return repository.ErrOTPNotFound
	}
	otp.IsUsed = true
	return nil
}

func (r *stubOTPRepo) DeleteExpired(now time.Time) (int64, error) {
	var n int64
	for id, otp := range r.otps {
		if !otp.ExpiresAt.After(now) {
			delete(r.otps, id)
			n++
		}
	}
	return n, nil
}

type captureMailer struct {
	to      string
	subject string
	body    string
	fail    bool
	sends   int
}

func (m *captureMailer) Send(_ context.Context, to, subject, textBody, _ string) error {
	m.sends++
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.to = to
	m.subject = subject
	m.body = textBody
	return nil
}

var otpInBody = regexp.MustCompile(`\d{6}`)

type authFixture struct {
	svc    *AuthService
	users  *stubUserRepo
	otps   *stubOTPRepo
	mailer *captureMailer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newStubUserRepo()
	otps := newStubOTPRepo()
	mailer := &captureMailer{}
	jwtMgr := security.NewJWTManager(
		"test-access-secret-0123456789abcdef",
		"test-refresh-secret-0123456789abcdef",
		15*time.Minute, 7*24*time.Hour,
	)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewAuthService(users, otps, security.NewPasswordHasher(4), jwtMgr, mailer, logger, 10*time.Minute)
	return &authFixture{svc: svc, users: users, otps: otps, mailer: mailer}
}

func signupTestUser(t *testing.T, f *authFixture) *AuthResult {
	t.Helper()
	result, err := f.svc.Signup(context.Background(), SignupInput{
		Username:     "alice",
		Email:        "alice@example.com",
		Password:     "password1",
		MobileNumber: "9876543210",
	}, domain.RoleUser)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	return result
}

func TestSignupIssuesTokensAndHashesPassword(t *testing.T) {
	f := newAuthFixture(t)

	result := signupTestUser(t, f)
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("signup should return a token pair")
	}
	if result.User.Role != domain.RoleUser {
		t.Errorf("Role = %q, want User", result.User.Role)
	}
	if result.User.PasswordHash == "password1" {
		t.Error("password must be stored hashed")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	signupTestUser(t, f)

	_, err := f.svc.Signup(context.Background(), SignupInput{
		Username:     "alice2",
		Email:        "alice@example.com",
		Password:     "password2",
		MobileNumber: "9876543210",
	}, domain.RoleUser)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("Signup = %v, want ErrDuplicateEmail", err)
	}
}

func TestSignupAdminRoleIsFixedByCaller(t *testing.T) {
	f := newAuthFixture(t)

	result, err := f.svc.Signup(context.Background(), SignupInput{
		Username:     "root",
		Email:        "admin@example.com",
		Password:     "password1",
		MobileNumber: "9876543210",
	}, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if result.User.Role != domain.RoleAdmin {
		t.Errorf("Role = %q, want Admin", result.User.Role)
	}
}

func TestLoginSuccess(t *testing.T) {
	f := newAuthFixture(t)
	signupTestUser(t, f)

	result, err := f.svc.Login(context.Background(), "alice@example.com", "password1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("login should return a token pair")
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestLoginErrorsDoNotRevealAccounts(t *testing.T) {
	f := newAuthFixture(t)
	signupTestUser(t, f)

	_, unknownErr := f.svc.Login(context.Background(), "nobody@example.com", "password1")
	_, wrongErr := f.svc.Login(context.Background(), "alice@example.com", "not-the-password")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("unknown email: %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Errorf("wrong password: %v, want ErrInvalidCredentials", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Error("both failures must produce identical errors")
	}
}

func TestRefreshRotatesPair(t *testing.T) {
	f := newAuthFixture(t)
	result := signupTestUser(t, f)

	pair, err := f.svc.Refresh(context.Background(), result.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("refresh should return a full pair")
	}
}

func TestRefreshRejectsBadTokens(t *testing.T) {
	f := newAuthFixture(t)
	result := signupTestUser(t, f)

	for _, token := range []string{"", "garbage", result.AccessToken} {
		if _, err := f.svc.Refresh(context.Background(), token); !errors.Is(err, ErrInvalidRefreshToken) {
			t.Errorf("Refresh(%q) = %v, want ErrInvalidRefreshToken", token, err)
		}
	}
}

func TestForgotPasswordIssuesAndEmailsOTP(t *testing.T) {
	f := newAuthFixture(t)
	signupTestUser(t, f)

	if err := f.svc.ForgotPassword(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if f.mailer.to != "alice@example.com" {
		t.Errorf("mail sent to %q", f.mailer.to)
	}
	code := otpInBody.FindString(f.mailer.body)
	if code == "" {
		t.Fatal("email body should contain the 6-digit code")
	}
	if err := f.svc.VerifyOTP(context.Background(), "alice@example.com", code); err != nil {
		t.Errorf("VerifyOTP with mailed code: %v", err)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.ForgotPassword(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("ForgotPassword = %v, want ErrUserNotFound", err)
	}
	if f.mailer.sends != 0 {
		t.Error("no email should be attempted for an unknown account")
	}
}

func TestForgotPasswordFailsWhenEmailFails(t *testing.T) {
	f := newAuthFixture(t)
	signupTestUser(t, f)
	f.mailer.fail = true

	if err := f.svc.ForgotPassword(context.Background(), "alice@example.com"); err == nil {
		t.Fatal("a failed send must fail the request")
	}
}

func TestForgotPasswordReplacesPriorCode(t *testing.T) {
	f := newAuthFixture(t)
	signupTestUser(t, f)

	if err := f.svc.ForgotPassword(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("first ForgotPassword: %v", err)
	}
	first := otpInBody.FindString(f.mailer.body)

	if err := f.svc.ForgotPassword(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("second ForgotPassword: %v", err)
	}
	second := otpInBody.FindString(f.mailer.body)

	if first != second {
		if err := f.svc.VerifyOTP(context.Background(), "alice@example.com", first); !errors.Is(err, ErrInvalidOrExpiredOTP) {
			t.Errorf("superseded code should be dead, got %v", err)
		}
	}
	if err := f.svc.VerifyOTP(context.Background(), "alice@example.com", second); err != nil {
		t.Errorf("latest code should verify: %v", err)
	}
}

func TestVerifyOTPDoesNotConsume(t *testing.T) {
	f := newAuthFixture(t)
	signupTestUser(t, f)
	if err := f.svc.ForgotPassword(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	code := otpInBody.FindString(f.mailer.body)

	for i := 0; i < 3; i++ {
		if err := f.svc.VerifyOTP(context.Background(), "alice@example.com", code); err != nil {
			t.Fatalf("VerifyOTP #%d: %v", i+1, err)
		}
	}
	if err := f.svc.ResetPassword(context.Background(), "alice@example.com", code, "newpassword1"); err != nil {
		t.Fatalf("ResetPassword after repeated verify: %v", err)
	}
}

func TestVerifyOTPWrongCode(t *testing.T) {
	f := newAuthFixture(t)
	signupTestUser(t, f)
	if err := f.svc.ForgotPassword(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	err := f.svc.VerifyOTP(context.Background(), "alice@example.com", "000000")
	if !errors.Is(err, ErrInvalidOrExpiredOTP) {
		// One in a million chance the real code is 000000; the stub is
		// deterministic enough that a miss here means a logic bug.
		t.Fatalf("VerifyOTP = %v, want ErrInvalidOrExpiredOTP", err)
	}
}

func TestVerifyOTPExpiredCode(t *testing.T) {
	f := newAuthFixture(t)
	signupTestUser(t, f)
	if err := f.svc.ForgotPassword(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	code := otpInBody.FindString(f.mailer.body)

	f.svc.now = func() time.Time { return time.Now().UTC().Add(11 * time.Minute) }
	if err := f.svc.VerifyOTP(context.Background(), "alice@example.com", code); !errors.Is(err, ErrInvalidOrExpiredOTP) {
		t.Fatalf("VerifyOTP past expiry = %v, want ErrInvalidOrExpiredOTP", err)
	}
}

func TestResetPasswordFullFlow(t *testing.T) {
	f := newAuthFixture(t)
	signupTestUser(t, f)
	if err := f.svc.ForgotPassword(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	code := otpInBody.FindString(f.mailer.body)

	if err := f.svc.ResetPassword(context.Background(), "alice@example.com", code, "newpassword1"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, err := f.svc.Login(context.Background(), "alice@example.com", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password should no longer work")
	}
	if _, err := f.svc.Login(context.Background(), "alice@example.com", "newpassword1"); err != nil {
		t.Errorf("new password should work: %v", err)
	}

	// The code is burned; a second reset with it must fail.
	if err := f.svc.ResetPassword(context.Background(), "alice@example.com", code, "anotherpass1"); !errors.Is(err, ErrInvalidOrExpiredOTP) {
		t.Errorf("reused code = %v, want ErrInvalidOrExpiredOTP", err)
	}
}

func TestProfile(t *testing.T) {
	f := newAuthFixture(t)
	result := signupTestUser(t, f)

	user, err := f.svc.Profile(context.Background(), result.User.ID)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Email = %q", user.Email)
	}

	if _, err := f.svc.Profile(context.Background(), 999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Profile(999) = %v, want ErrUserNotFound", err)
	}
}
