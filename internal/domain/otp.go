package domain

import "time"

// OTPPurpose scopes a one-time passcode to the flow that issued it.
// Only password_reset has a wired flow; email_verification is reserved.
type OTPPurpose string

const (
	OTPPurposePasswordReset     OTPPurpose = "password_reset"
	OTPPurposeEmailVerification OTPPurpose = "email_verification"
)

type OTP struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index:idx_otp_user_purpose;not null" json:"user_id"`
	Code      string     `gorm:"size:6;not null" json:"-"`
	Purpose   OTPPurpose `gorm:"size:32;index:idx_otp_user_purpose;not null" json:"purpose"`
	ExpiresAt time.Time  `gorm:"index;not null" json:"expires_at"`
	IsUsed    bool       `gorm:"not null;default:false" json:"is_used"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
