package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Zecser/Catering-and-Tourism/internal/domain"
)

// ErrOTPNotFound covers wrong, expired and already-used codes alike so the
// caller cannot tell which guess was closer.
var ErrOTPNotFound = errors.New("otp not found")

type OTPRepository interface {
	// Issue replaces any existing codes for (userID, purpose) and persists
	// a fresh one. At most one code is ever live per user and purpose.
	Issue(otp *domain.OTP) error
	// FindActive returns the entry matching all four fields with
	// is_used=false and expires_at in the future.
	FindActive(userID uint, code string, purpose domain.OTPPurpose, now time.Time) (*domain.OTP, error)
	// MarkUsed flips is_used exactly once; a second call for the same id
	// reports ErrOTPNotFound.
	MarkUsed(id uint) error
	// DeleteExpired is hygiene only; expiry is enforced at lookup time.
	DeleteExpired(now time.Time) (int64, error)
}

type GormOTPRepository struct{ db *gorm.DB }

func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &GormOTPRepository{db: db}
}

func (r *GormOTPRepository) Issue(otp *domain.OTP) error {
	err := r.db.Where("user_id = ? AND purpose = ?", otp.UserID, otp.Purpose).
		Delete(&domain.OTP{}).Error
	if err != nil {
		return err
	}
	return r.db.Create(otp).Error
}

func (r *GormOTPRepository) FindActive(userID uint, code string, purpose domain.OTPPurpose, now time.Time) (*domain.OTP, error) {
	var otp domain.OTP
	err := r.db.
		Where("user_id = ? AND code = ? AND purpose = ? AND is_used = ? AND expires_at > ?",
			userID, code, purpose, false, now).
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOTPNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (r *GormOTPRepository) MarkUsed(id uint) error {
	res := r.db.Model(&domain.OTP{}).
		Where("id = ? AND is_used = ?", id, false).
		Update("is_used", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOTPNotFound
	}
	return nil
}

func (r *GormOTPRepository) DeleteExpired(now time.Time) (int64, error) {
	res := r.db.Where("expires_at <= ?", now).Delete(&domain.OTP{})
	return res.RowsAffected, res.Error
}
