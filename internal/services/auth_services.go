package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strconv"
	"time"

	"SchemePortalAPI/internal/model"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 8

	// Codes are uniform over [100000, 999999] and live for ten minutes.
	otpMin = 100000
	otpMax = 999999
	OTPTTL = 10 * time.Minute
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	ErrDuplicateAccount    = errors.New("account already exists for this email")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired OTP")
	ErrNoPendingOTP        = errors.New("no pending verification for this email")
)

// UserStore is the portal_users persistence surface the auth flow needs.
type UserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, name, email, passwordHash, userType string) (int64, error)
	GetByEmailAndType(ctx context.Context, email, userType string) (*model.PortalUser, error)
	GetByID(ctx context.Context, id int64) (*model.PortalUser, error)
	TouchLastLogin(ctx context.Context, userID int64) error
}

// OTPStore is the otp_store persistence surface.
type OTPStore interface {
	Create(ctx context.Context, rec *model.OTPRecord) (int64, error)
	FindActive(ctx context.Context, email, code, otpType string, now time.Time) (*model.OTPRecord, error)
	MarkUsed(ctx context.Context, otpID int64) error
	LatestPayload(ctx context.Context, email, otpType string) ([]byte, error)
}

// Mailer delivers one-time codes out of band. Delivery is best-effort: the
// flow logs failures and moves on, the code stays valid either way.
type Mailer interface {
	SendOTPEmail(ctx context.Context, to, name, otp, otpType string) error
}

// EmailValidator vets an address before a registration OTP is issued.
type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}

type AuthService struct {
	Users     UserStore
	Codes     OTPStore
	Mailer    Mailer
	Validator EmailValidator

	now func() time.Time
}

func NewAuthService(u UserStore, c OTPStore, m Mailer, v EmailValidator) *AuthService {
	return &AuthService{Users: u, Codes: c, Mailer: m, Validator: v, now: time.Now}
}

func (s *AuthService) validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}

func (s *AuthService) validatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return fmt.Errorf("password too short: must be at least %d characters", MinPasswordLen)
	}
	return nil
}

func validRole(role string) bool {
	switch role {
	case model.RoleCitizen, model.RoleAgency, model.RoleAdmin:
		return true
	}
	return false
}

func generateOTP() string {
	return strconv.Itoa(otpMin + rand.Intn(otpMax-otpMin+1))
}

// issueOTP stores a fresh code and attempts delivery. Mail errors are logged
// with the code so the flow can still complete via the server-side log.
func (s *AuthService) issueOTP(ctx context.Context, email, name, otpType string, payload []byte) error {
	code := generateOTP()
	now := s.now()
	rec := &model.OTPRecord{
		Email:     email,
		Code:      code,
		OTPType:   otpType,
		UserData:  payload,
		ExpiresAt: now.Add(OTPTTL),
		CreatedAt: now,
	}
	if _, err := s.Codes.Create(ctx, rec); err != nil {
		return err
	}
	if err := s.Mailer.SendOTPEmail(ctx, email, name, code, otpType); err != nil {
		log.Printf("otp delivery failed for %s (%s): %v; code=%s", email, otpType, err, code)
	}
	return nil
}

// InitiateRegistration vets the signup, stores a registration OTP carrying
// the pending account data, and mails the code. No portal_users row is
// created until the code is verified.
func (s *AuthService) InitiateRegistration(ctx context.Context, name, email, password, role string) error {
	if name == "" {
		return errors.New("name is required")
	}
	if err := s.validateEmail(email); err != nil {
		return err
	}
	if err := s.validatePassword(password); err != nil {
		return err
	}
	if !validRole(role) {
		return errors.New("invalid role")
	}
	if err := s.Validator.Validate(ctx, email); err != nil {
		return err
	}

	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(model.PendingRegistration{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		UserType:     role,
	})
	if err != nil {
		return err
	}
	return s.issueOTP(ctx, email, name, model.OTPTypeRegistration, payload)
}

// VerifyRegistration consumes a registration OTP and creates the account
// from the payload stored at initiation. Inputs were validated back then, so
// the payload is trusted as-is.
func (s *AuthService) VerifyRegistration(ctx context.Context, email, code string) (*model.PortalUser, error) {
	rec, err := s.Codes.FindActive(ctx, email, code, model.OTPTypeRegistration, s.now())
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrInvalidOrExpiredOTP
	}

	var pending model.PendingRegistration
	if err := json.Unmarshal(rec.UserData, &pending); err != nil {
		return nil, err
	}

	// Claim the code before creating the account, so a MarkUsed failure
	// cannot leave a credential row behind a failed verification.
	if err := s.Codes.MarkUsed(ctx, rec.OTPID); err != nil {
		return nil, err
	}
	id, err := s.Users.CreateUser(ctx, pending.Name, pending.Email, pending.PasswordHash, pending.UserType)
	if err != nil {
		return nil, err
	}

	return s.Users.GetByID(ctx, id)
}

// InitiateLogin checks credentials and, on match, issues a login OTP. The
// error never reveals whether the email, role, or password was wrong.
func (s *AuthService) InitiateLogin(ctx context.Context, email, password, role string) error {
	u, err := s.Users.GetByEmailAndType(ctx, email, role)
	if err != nil {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	payload, err := json.Marshal(model.PendingLogin{UserID: u.UserID})
	if err != nil {
		return err
	}
	return s.issueOTP(ctx, email, u.Name, model.OTPTypeLogin, payload)
}

// VerifyLogin consumes a login OTP, stamps last_login, and returns the user.
func (s *AuthService) VerifyLogin(ctx context.Context, email, code string) (*model.PortalUser, error) {
	rec, err := s.Codes.FindActive(ctx, email, code, model.OTPTypeLogin, s.now())
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrInvalidOrExpiredOTP
	}

	var pending model.PendingLogin
	if err := json.Unmarshal(rec.UserData, &pending); err != nil {
		return nil, err
	}

	u, err := s.Users.GetByID(ctx, pending.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.Codes.MarkUsed(ctx, rec.OTPID); err != nil {
		return nil, err
	}
	if err := s.Users.TouchLastLogin(ctx, u.UserID); err != nil {
		return nil, err
	}
	return u, nil
}

// ResendOTP issues a fresh code for an in-flight registration or login,
// carrying the newest pending payload forward. Earlier unconsumed codes are
// left alone; they stay valid until they individually expire.
func (s *AuthService) ResendOTP(ctx context.Context, email, otpType string) error {
	if otpType != model.OTPTypeRegistration && otpType != model.OTPTypeLogin {
		return errors.New("invalid otp type")
	}

	payload, err := s.Codes.LatestPayload(ctx, email, otpType)
	if err != nil {
		return err
	}
	if payload == nil {
		return ErrNoPendingOTP
	}

	name := ""
	switch otpType {
	case model.OTPTypeRegistration:
		var pending model.PendingRegistration
		if err := json.Unmarshal(payload, &pending); err == nil {
			name = pending.Name
		}
	case model.OTPTypeLogin:
		var pending model.PendingLogin
		if err := json.Unmarshal(payload, &pending); err == nil {
			if u, err := s.Users.GetByID(ctx, pending.UserID); err == nil {
				name = u.Name
			}
		}
	}
	return s.issueOTP(ctx, email, name, otpType, payload)
}

// RedirectTarget maps a verified role to its dashboard route.
func RedirectTarget(role string) string {
	switch role {
	case model.RoleAgency:
		return "/agency/dashboard"
	case model.RoleAdmin:
		return "/admin/dashboard"
	default:
		return "/citizen/dashboard"
	}
}
