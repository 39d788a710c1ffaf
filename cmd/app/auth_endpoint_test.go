package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SchemePortalAPI/internal/model"
	"SchemePortalAPI/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// in-memory stores driving the full HTTP handshake

type memUsers struct {
	users  map[int64]*model.PortalUser
	nextID int64
}

func (m *memUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) CreateUser(ctx context.Context, name, email, passwordHash, userType string) (int64, error) {
	m.nextID++
	m.users[m.nextID] = &model.PortalUser{
		UserID: m.nextID, Name: name, Email: email,
		PasswordHash: passwordHash, UserType: userType, IsVerified: true,
	}
	return m.nextID, nil
}

func (m *memUsers) GetByEmailAndType(ctx context.Context, email, userType string) (*model.PortalUser, error) {
	for _, u := range m.users {
		if u.Email == email && u.UserType == userType {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (m *memUsers) GetByID(ctx context.Context, id int64) (*model.PortalUser, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (m *memUsers) TouchLastLogin(ctx context.Context, userID int64) error {
	now := time.Now()
	m.users[userID].LastLogin = &now
	return nil
}

type memOTPs struct {
	recs   []*model.OTPRecord
	nextID int64
}

func (m *memOTPs) Create(ctx context.Context, rec *model.OTPRecord) (int64, error) {
	m.nextID++
	cp := *rec
	cp.OTPID = m.nextID
	m.recs = append(m.recs, &cp)
	return cp.OTPID, nil
}

func (m *memOTPs) FindActive(ctx context.Context, email, code, otpType string, now time.Time) (*model.OTPRecord, error) {
	for i := len(m.recs) - 1; i >= 0; i-- {
		r := m.recs[i]
		if r.Email == email && r.Code == code && r.OTPType == otpType && !r.IsUsed && r.ExpiresAt.After(now) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memOTPs) MarkUsed(ctx context.Context, otpID int64) error {
	for _, r := range m.recs {
		if r.OTPID == otpID && !r.IsUsed {
			r.IsUsed = true
			return nil
		}
	}
	return errors.New("otp already consumed")
}

func (m *memOTPs) LatestPayload(ctx context.Context, email, otpType string) ([]byte, error) {
	for i := len(m.recs) - 1; i >= 0; i-- {
		r := m.recs[i]
		if r.Email == email && r.OTPType == otpType && !r.IsUsed {
			return r.UserData, nil
		}
	}
	return nil, nil
}

type captureMailer struct {
	lastOTP string
}

func (m *captureMailer) SendOTPEmail(ctx context.Context, to, name, otp, otpType string) error {
	m.lastOTP = otp
	return nil
}

func newAuthTestServer(t *testing.T) (*echo.Echo, *captureMailer) {
	t.Helper()
	users := &memUsers{users: map[int64]*model.PortalUser{}}
	otps := &memOTPs{}
	mailer := &captureMailer{}
	authSvc := services.NewAuthService(users, otps, mailer, services.NewLocalValidator())

	e := echo.New()
	registerAuthRoutes(e.Group("/portal"), authSvc)
	return e, mailer
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegistrationHandshakeOverHTTP(t *testing.T) {
	e, mailer := newAuthTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/portal/auth/register",
		`{"name":"Asha","email":"a@x.com","password":"password123","role":"citizen"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, mailer.lastOTP)

	// wrong code is rejected
	rec = doJSON(t, e, http.MethodPost, "/portal/auth/verify-registration",
		`{"email":"a@x.com","otp":"000000"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// right code yields a token and a role-keyed redirect
	rec = doJSON(t, e, http.MethodPost, "/portal/auth/verify-registration",
		`{"email":"a@x.com","otp":"`+mailer.lastOTP+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Token    string `json:"token"`
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	require.Equal(t, "/citizen/dashboard", out.Redirect)

	// token works against the protected /me route
	rec = doJSON(t, e, http.MethodGet, "/portal/auth/me", "", out.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	require.Equal(t, "a@x.com", me.Email)
	require.Equal(t, model.RoleCitizen, me.Role)
}

func TestLoginHandshakeOverHTTP(t *testing.T) {
	e, mailer := newAuthTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/portal/auth/register",
		`{"name":"Asha","email":"a@x.com","password":"password123","role":"citizen"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, e, http.MethodPost, "/portal/auth/verify-registration",
		`{"email":"a@x.com","otp":"`+mailer.lastOTP+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// bad password never issues an OTP
	before := mailer.lastOTP
	rec = doJSON(t, e, http.MethodPost, "/portal/auth/login",
		`{"email":"a@x.com","password":"wrong","role":"citizen"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, before, mailer.lastOTP)

	rec = doJSON(t, e, http.MethodPost, "/portal/auth/login",
		`{"email":"a@x.com","password":"password123","role":"citizen"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/portal/auth/verify-login",
		`{"email":"a@x.com","otp":"`+mailer.lastOTP+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// a spent login code cannot be replayed
	rec = doJSON(t, e, http.MethodPost, "/portal/auth/verify-login",
		`{"email":"a@x.com","otp":"`+mailer.lastOTP+`"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestResendOTPOverHTTP(t *testing.T) {
	e, mailer := newAuthTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/portal/auth/resend-otp",
		`{"email":"ghost@x.com","type":"login"}`, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/portal/auth/register",
		`{"name":"Asha","email":"a@x.com","password":"password123","role":"citizen"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/portal/auth/resend-otp",
		`{"email":"a@x.com","type":"registration"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// the fresh code carries the original signup data
	rec = doJSON(t, e, http.MethodPost, "/portal/auth/verify-registration",
		`{"email":"a@x.com","otp":"`+mailer.lastOTP+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
}
