package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Zecser/Catering-and-Tourism/internal/domain"
	"github.com/Zecser/Catering-and-Tourism/internal/repository"
	"github.com/Zecser/Catering-and-Tourism/internal/security"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials covers unknown email, absent hash and wrong
	// password alike so login cannot be used to probe for accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned by the recovery flows, which do reveal
	// account existence. Login deliberately does not share this behavior.
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired otp")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

const otpCodeLength = 6

type SignupInput struct {
	Username     string
	Email        string
	Password     string
	MobileNumber string
}

type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

type AuthService struct {
	users  repository.UserRepository
	otps   repository.OTPRepository
	hasher *security.PasswordHasher
	jwtMgr *security.JWTManager
	mailer Mailer
	logger *slog.Logger
	otpTTL time.Duration
	now    func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	otps repository.OTPRepository,
	hasher *security.PasswordHasher,
	jwtMgr *security.JWTManager,
	mailer Mailer,
	logger *slog.Logger,
	otpTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:  users,
		otps:   otps,
		hasher: hasher,
		jwtMgr: jwtMgr,
		mailer: mailer,
		logger: logger,
		otpTTL: otpTTL,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Signup registers a new account with the role fixed by the entry point and
// logs it straight in with a fresh token pair. The plaintext password never
// leaves this call.
func (s *AuthService) Signup(ctx context.Context, in SignupInput, role domain.Role) (*AuthResult, error) {
	// Fast path for a friendlier error; the unique index is the real guard.
	if _, err := s.users.FindByEmail(in.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		MobileNumber: in.MobileNumber,
		Role:         role,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	pair, err := s.jwtMgr.IssueTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return &AuthResult{User: user, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.jwtMgr.IssueTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return &AuthResult{User: user, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// Refresh exchanges a refresh token for a new pair. The previous refresh
// token is not invalidated; validity is entirely signature plus expiry.
func (s *AuthService) Refresh(_ context.Context, refreshToken string) (security.TokenPair, error) {
	pair, err := s.jwtMgr.Rotate(refreshToken)
	if err != nil {
		return security.TokenPair{}, ErrInvalidRefreshToken
	}
	return pair, nil
}

// ForgotPassword issues a password-reset OTP and emails it. A failed email
// send fails the whole request; the caller may simply retry.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	code, err := security.GenerateOTPCode(otpCodeLength)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	otp := &domain.OTP{
		UserID:    user.ID,
		Code:      code,
		Purpose:   domain.OTPPurposePasswordReset,
		ExpiresAt: s.now().Add(s.otpTTL),
	}
	if err := s.otps.Issue(otp); err != nil {
		return fmt.Errorf("issue otp: %w", err)
	}

	if err := s.mailer.Send(ctx, user.Email, passwordResetSubject,
		passwordResetText(code), passwordResetHTML(code)); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset otp issued", "user_id", user.ID)
	return nil
}

// VerifyOTP is a read-only existence check; it never consumes the code, so
// a client may verify more than once before resetting.
func (s *AuthService) VerifyOTP(_ context.Context, email, code string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	_, err = s.otps.FindActive(user.ID, code, domain.OTPPurposePasswordReset, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			return ErrInvalidOrExpiredOTP
		}
		return fmt.Errorf("find otp: %w", err)
	}
	return nil
}

// ResetPassword re-checks the OTP (the client may have skipped verify-otp),
// replaces the stored hash, and only then burns the code. It does not log
// the user in.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	otp, err := s.otps.FindActive(user.ID, code, domain.OTPPurposePasswordReset, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			return ErrInvalidOrExpiredOTP
		}
		return fmt.Errorf("find otp: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.otps.MarkUsed(otp.ID); err != nil && !errors.Is(err, repository.ErrOTPNotFound) {
		return fmt.Errorf("mark otp used: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset completed", "user_id", user.ID)
	return nil
}

func (s *AuthService) Profile(_ context.Context, userID uint) (*domain.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
