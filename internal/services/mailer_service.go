package services

import (
	"context"
	"log"
)

// LogMailer is the dev fallback Mailer: it prints the code instead of
// sending mail. Used when RESEND_API_KEY is not configured.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendOTPEmail(ctx context.Context, to, name, otp, otpType string) error {
	log.Printf("[mail] %s OTP for %s <%s>: %s", otpType, name, to, otp)
	return nil
}
