package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestUserJSONNeverExposesPasswordHash(t *testing.T) {
	user := User{
		ID:           1,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$secret",
		MobileNumber: "9876543210",
		Role:         RoleUser,
	}
	out, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), "secret") || strings.Contains(string(out), "password") {
		t.Fatalf("serialized user leaks the hash: %s", out)
	}
	if !strings.Contains(string(out), `"user_name":"alice"`) {
		t.Errorf("user_name field missing: %s", out)
	}
	if !strings.Contains(string(out), `"phoneNumber":"9876543210"`) {
		t.Errorf("phoneNumber field missing: %s", out)
	}
}

func TestOTPJSONNeverExposesCode(t *testing.T) {
	otp := OTP{
		ID:        1,
		UserID:    2,
		Code:      "123456",
		Purpose:   OTPPurposePasswordReset,
		ExpiresAt: time.Now(),
	}
	out, err := json.Marshal(otp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), "123456") {
		t.Fatalf("serialized otp leaks the code: %s", out)
	}
}

func TestGalleryImageJSONHidesObjectKey(t *testing.T) {
	img := GalleryImage{ID: 1, Title: "venue", ObjectKey: "gallery/abc.jpg"}
	out, err := json.Marshal(img)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), "gallery/abc.jpg") {
		t.Fatalf("serialized image leaks the object key: %s", out)
	}
}

func TestRoleValid(t *testing.T) {
	cases := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleUser, true},
		{Role(""), false},
		{Role("superadmin"), false},
		{Role("admin"), false},
	}
	for _, tc := range cases {
		if got := tc.role.Valid(); got != tc.want {
			t.Errorf("Role(%q).Valid() = %v, want %v", tc.role, got, tc.want)
		}
	}
}
