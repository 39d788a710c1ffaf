package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"SchemePortalAPI/internal/model"

	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeUserStore struct {
	users  map[int64]*model.PortalUser
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*model.PortalUser{}}
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) CreateUser(ctx context.Context, name, email, passwordHash, userType string) (int64, error) {
	f.nextID++
	f.users[f.nextID] = &model.PortalUser{
		UserID:       f.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		UserType:     userType,
		IsVerified:   true,
	}
	return f.nextID, nil
}

func (f *fakeUserStore) GetByEmailAndType(ctx context.Context, email, userType string) (*model.PortalUser, error) {
	for _, u := range f.users {
		if u.Email == email && u.UserType == userType {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*model.PortalUser, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeUserStore) TouchLastLogin(ctx context.Context, userID int64) error {
	u, ok := f.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	now := time.Now()
	u.LastLogin = &now
	return nil
}

type fakeOTPStore struct {
	recs        []*model.OTPRecord
	nextID      int64
	markUsedErr error
}

func (f *fakeOTPStore) Create(ctx context.Context, rec *model.OTPRecord) (int64, error) {
	f.nextID++
	cp := *rec
	cp.OTPID = f.nextID
	f.recs = append(f.recs, &cp)
	return cp.OTPID, nil
}

func (f *fakeOTPStore) FindActive(ctx context.Context, email, code, otpType string, now time.Time) (*model.OTPRecord, error) {
	var candidates []*model.OTPRecord
	for _, r := range f.recs {
		if r.Email == email && r.Code == code && r.OTPType == otpType && !r.IsUsed && r.ExpiresAt.After(now) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})
	cp := *candidates[0]
	return &cp, nil
}

func (f *fakeOTPStore) MarkUsed(ctx context.Context, otpID int64) error {
	if f.markUsedErr != nil {
		return f.markUsedErr
	}
	for _, r := range f.recs {
		if r.OTPID == otpID {
			if r.IsUsed {
				return errors.New("otp already consumed")
			}
			r.IsUsed = true
			return nil
		}
	}
	return errors.New("otp not found")
}

func (f *fakeOTPStore) LatestPayload(ctx context.Context, email, otpType string) ([]byte, error) {
	var newest *model.OTPRecord
	for _, r := range f.recs {
		if r.Email == email && r.OTPType == otpType && !r.IsUsed {
			if newest == nil || r.CreatedAt.After(newest.CreatedAt) {
				newest = r
			}
		}
	}
	if newest == nil {
		return nil, nil
	}
	return newest.UserData, nil
}

type sentMail struct {
	To      string
	OTP     string
	OTPType string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendOTPEmail(ctx context.Context, to, name, otp, otpType string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: to, OTP: otp, OTPType: otpType})
	return nil
}

type authFixture struct {
	svc    *AuthService
	users  *fakeUserStore
	codes  *fakeOTPStore
	mailer *fakeMailer
	clock  *time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newFakeUserStore()
	codes := &fakeOTPStore{}
	mailer := &fakeMailer{}
	svc := NewAuthService(users, codes, mailer, NewLocalValidator())

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := &now
	svc.now = func() time.Time { return *clock }

	return &authFixture{svc: svc, users: users, codes: codes, mailer: mailer, clock: clock}
}

func (fx *authFixture) advance(d time.Duration) {
	*fx.clock = fx.clock.Add(d)
}

// lastCode returns the newest issued code for an email.
func (fx *authFixture) lastCode(email string) string {
	var newest *model.OTPRecord
	for _, r := range fx.codes.recs {
		if r.Email == email {
			if newest == nil || r.CreatedAt.After(newest.CreatedAt) || r.OTPID > newest.OTPID {
				newest = r
			}
		}
	}
	if newest == nil {
		return ""
	}
	return newest.Code
}

// --- tests ---

func TestRegistrationFlow(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	err := fx.svc.InitiateRegistration(ctx, "Asha", "a@x.com", "password123", model.RoleCitizen)
	require.NoError(t, err)
	require.Len(t, fx.codes.recs, 1)
	require.Len(t, fx.mailer.sent, 1)
	require.Len(t, fx.mailer.sent[0].OTP, 6)

	code := fx.lastCode("a@x.com")

	// wrong code first
	_, err = fx.svc.VerifyRegistration(ctx, "a@x.com", wrongCode(code))
	require.ErrorIs(t, err, ErrInvalidOrExpiredOTP)

	// right code succeeds and creates a verified account
	u, err := fx.svc.VerifyRegistration(ctx, "a@x.com", code)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", u.Email)
	require.Equal(t, model.RoleCitizen, u.UserType)
	require.True(t, u.IsVerified)

	// same code again is spent
	_, err = fx.svc.VerifyRegistration(ctx, "a@x.com", code)
	require.ErrorIs(t, err, ErrInvalidOrExpiredOTP)
}

// wrongCode returns a valid-looking 6-digit code that differs from c.
func wrongCode(c string) string {
	if c == "123456" {
		return "654321"
	}
	return "123456"
}

func TestRegistrationDuplicateAccount(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	fx.users.CreateUser(ctx, "Asha", "a@x.com", "hash", model.RoleCitizen)

	err := fx.svc.InitiateRegistration(ctx, "Asha", "a@x.com", "password123", model.RoleCitizen)
	require.ErrorIs(t, err, ErrDuplicateAccount)
	require.Empty(t, fx.codes.recs, "no OTP may be issued for a duplicate account")
	require.Len(t, fx.users.users, 1, "no second credential row")
}

func TestRegistrationRejectsBadInput(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	require.Error(t, fx.svc.InitiateRegistration(ctx, "", "a@x.com", "password123", model.RoleCitizen))
	require.Error(t, fx.svc.InitiateRegistration(ctx, "Asha", "not-an-email", "password123", model.RoleCitizen))
	require.Error(t, fx.svc.InitiateRegistration(ctx, "Asha", "a@x.com", "short", model.RoleCitizen))
	require.Error(t, fx.svc.InitiateRegistration(ctx, "Asha", "a@x.com", "password123", "overlord"))
	require.Empty(t, fx.codes.recs)
}

func TestLoginWrongPasswordIssuesNoOTP(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	registerVerified(t, fx, "Asha", "a@x.com", "password123", model.RoleCitizen)
	mails := len(fx.mailer.sent)

	err := fx.svc.InitiateLogin(ctx, "a@x.com", "wrong-password", model.RoleCitizen)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, fx.mailer.sent, mails, "no OTP mail on bad password")

	// wrong role is indistinguishable from wrong password
	err = fx.svc.InitiateLogin(ctx, "a@x.com", "password123", model.RoleAdmin)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginFlow(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	u := registerVerified(t, fx, "Asha", "a@x.com", "password123", model.RoleCitizen)
	require.Nil(t, u.LastLogin)

	require.NoError(t, fx.svc.InitiateLogin(ctx, "a@x.com", "password123", model.RoleCitizen))
	code := fx.lastCode("a@x.com")

	got, err := fx.svc.VerifyLogin(ctx, "a@x.com", code)
	require.NoError(t, err)
	require.Equal(t, u.UserID, got.UserID)
	require.NotNil(t, fx.users.users[u.UserID].LastLogin)
}

func TestLoginOTPExpires(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	registerVerified(t, fx, "Asha", "a@x.com", "password123", model.RoleCitizen)
	require.NoError(t, fx.svc.InitiateLogin(ctx, "a@x.com", "password123", model.RoleCitizen))
	code := fx.lastCode("a@x.com")

	fx.advance(11 * time.Minute)

	_, err := fx.svc.VerifyLogin(ctx, "a@x.com", code)
	require.ErrorIs(t, err, ErrInvalidOrExpiredOTP)
}

func TestResendCarriesPayloadForward(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.svc.InitiateRegistration(ctx, "Asha", "a@x.com", "password123", model.RoleCitizen))
	first := fx.lastCode("a@x.com")

	fx.advance(time.Minute)
	require.NoError(t, fx.svc.ResendOTP(ctx, "a@x.com", model.OTPTypeRegistration))
	require.Len(t, fx.codes.recs, 2)

	second := fx.lastCode("a@x.com")

	// prior codes are not invalidated by a resend
	if first != second {
		u, err := fx.svc.VerifyRegistration(ctx, "a@x.com", first)
		require.NoError(t, err)
		require.Equal(t, "Asha", u.Name, "resent OTP keeps the original signup data")
	} else {
		u, err := fx.svc.VerifyRegistration(ctx, "a@x.com", second)
		require.NoError(t, err)
		require.Equal(t, "Asha", u.Name)
	}
}

func TestResendWithoutPendingFlow(t *testing.T) {
	fx := newAuthFixture(t)
	err := fx.svc.ResendOTP(context.Background(), "nobody@x.com", model.OTPTypeLogin)
	require.ErrorIs(t, err, ErrNoPendingOTP)
}

func TestDeliveryFailureDoesNotAbortFlow(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()
	fx.mailer.err = errors.New("smtp down")

	require.NoError(t, fx.svc.InitiateRegistration(ctx, "Asha", "a@x.com", "password123", model.RoleCitizen))
	require.Len(t, fx.codes.recs, 1, "OTP is issued even when mail fails")

	u, err := fx.svc.VerifyRegistration(ctx, "a@x.com", fx.lastCode("a@x.com"))
	require.NoError(t, err)
	require.True(t, u.IsVerified)
}

func TestFailedCodeClaimLeavesNoAccountBehind(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.svc.InitiateRegistration(ctx, "Asha", "a@x.com", "password123", model.RoleCitizen))
	code := fx.lastCode("a@x.com")

	fx.codes.markUsedErr = errors.New("store unavailable")
	_, err := fx.svc.VerifyRegistration(ctx, "a@x.com", code)
	require.Error(t, err)
	require.Empty(t, fx.users.users, "no credential row behind a failed verification")

	// the code was never claimed, so the retry completes cleanly
	fx.codes.markUsedErr = nil
	u, err := fx.svc.VerifyRegistration(ctx, "a@x.com", code)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", u.Email)
}

func TestFailedCodeClaimSkipsLoginStamp(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	u := registerVerified(t, fx, "Asha", "a@x.com", "password123", model.RoleCitizen)
	require.NoError(t, fx.svc.InitiateLogin(ctx, "a@x.com", "password123", model.RoleCitizen))

	fx.codes.markUsedErr = errors.New("store unavailable")
	_, err := fx.svc.VerifyLogin(ctx, "a@x.com", fx.lastCode("a@x.com"))
	require.Error(t, err)
	require.Nil(t, fx.users.users[u.UserID].LastLogin)
}

func TestGeneratedCodesStayInRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := generateOTP()
		require.Len(t, code, 6)
		require.GreaterOrEqual(t, code, "100000")
		require.LessOrEqual(t, code, "999999")
	}
}

func TestRedirectTarget(t *testing.T) {
	require.Equal(t, "/citizen/dashboard", RedirectTarget(model.RoleCitizen))
	require.Equal(t, "/agency/dashboard", RedirectTarget(model.RoleAgency))
	require.Equal(t, "/admin/dashboard", RedirectTarget(model.RoleAdmin))
}

// registerVerified drives the whole registration handshake.
func registerVerified(t *testing.T, fx *authFixture, name, email, password, role string) *model.PortalUser {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, fx.svc.InitiateRegistration(ctx, name, email, password, role))
	u, err := fx.svc.VerifyRegistration(ctx, email, fx.lastCode(email))
	require.NoError(t, err)
	return fx.users.users[u.UserID]
}
