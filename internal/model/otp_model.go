package model

import "time"

// OTP purposes stored in otp_store.otp_type.
const (
	OTPTypeRegistration = "registration"
	OTPTypeLogin        = "login"
)

type OTPRecord struct {
	OTPID     int64     `json:"otpid"`
	Email     string    `json:"email"`
	Code      string    `json:"-"` // never echo the code back
	OTPType   string    `json:"otp_type"`
	UserData  []byte    `json:"-"` // pending payload, JSON
	ExpiresAt time.Time `json:"expires_at"`
	IsUsed    bool      `json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}

// PendingRegistration is the user_data payload for registration OTPs:
// everything needed to create the portal_users row after verification.
type PendingRegistration struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	UserType     string `json:"user_type"`
}

// PendingLogin is the user_data payload for login OTPs.
type PendingLogin struct {
	UserID int64 `json:"userid"`
}
