package user_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/learnsmart-app/learnsmart-api/internal/auth"
	"github.com/learnsmart-app/learnsmart-api/internal/otp"
	"github.com/learnsmart-app/learnsmart-api/internal/user"
)

type fakeMailer struct {
	sent []sentMail
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func newTestService(t *testing.T) (user.Service, *gorm.DB, *fakeMailer) {
	t.Helper()

	os.Setenv("JWT_SECRET", "a-long-and-secure-secret-key-for-tests")
	auth.Init()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &otp.OTP{}))

	mailer := &fakeMailer{}
	svc := user.NewService(user.NewRepository(db), otp.NewStore(db), mailer)
	return svc, db, mailer
}

func issuedCode(t *testing.T, db *gorm.DB, email string) (string, *user.User) {
	t.Helper()

	var u user.User
	require.NoError(t, db.First(&u, "email = ?", email).Error)

	var record otp.OTP
	require.NoError(t, db.First(&record, "user_id = ?", u.ID).Error)
	return record.Code, &u
}

func TestRegisterVerifyLogin(t *testing.T) {
	svc, db, mailer := newTestService(t)
	ctx := context.Background()

	response, err := svc.Register(ctx, user.RegisterDTO{
		Email:    "Student@Example.com",
		Username: "student",
		Password: "super-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", response.Email)
	assert.False(t, response.IsActive)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "student@example.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].subject, "Verification")

	code, created := issuedCode(t, db, "student@example.com")
	assert.Contains(t, mailer.sent[0].body, code)

	t.Run("LoginBeforeVerificationFails", func(t *testing.T) {
		_, _, err := svc.Login(ctx, user.LoginDTO{Email: "student@example.com", Password: "super-secret"})
		assert.ErrorIs(t, err, user.ErrInactiveAccount)
	})

	t.Run("WrongOTPRejected", func(t *testing.T) {
		_, err := svc.VerifyOTP(ctx, created.ID, "000000")
		assert.ErrorIs(t, err, user.ErrInvalidOTP)
	})

	token, err := svc.VerifyOTP(ctx, created.ID, code)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), claims.UserID)

	t.Run("OTPConsumedAfterUse", func(t *testing.T) {
		_, err := svc.VerifyOTP(ctx, created.ID, code)
		assert.ErrorIs(t, err, user.ErrInvalidOTP)
	})

	t.Run("LoginAfterVerification", func(t *testing.T) {
		token, response, err := svc.Login(ctx, user.LoginDTO{
			Email:    "student@example.com",
			Password: "super-secret",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, response.IsActive)
	})

	t.Run("WrongPasswordRejected", func(t *testing.T) {
		_, _, err := svc.Login(ctx, user.LoginDTO{Email: "student@example.com", Password: "nope"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	t.Run("ShortPassword", func(t *testing.T) {
		_, err := svc.Register(ctx, user.RegisterDTO{Email: "a@b.com", Username: "a", Password: "short"})
		assert.ErrorIs(t, err, user.ErrValidation)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := svc.Register(ctx, user.RegisterDTO{Email: "dup@b.com", Username: "a", Password: "super-secret"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, user.RegisterDTO{Email: "dup@b.com", Username: "b", Password: "super-secret"})
		assert.ErrorIs(t, err, user.ErrEmailTaken)
	})
}

func TestPasswordReset(t *testing.T) {
	svc, db, mailer := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, user.RegisterDTO{
		Email:    "reset@example.com",
		Username: "resetter",
		Password: "super-secret",
	})
	require.NoError(t, err)

	code, created := issuedCode(t, db, "reset@example.com")
	_, err = svc.VerifyOTP(ctx, created.ID, code)
	require.NoError(t, err)

	response, err := svc.RequestPasswordReset(ctx, "reset@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, response.ID)
	require.Len(t, mailer.sent, 2)

	resetCode, _ := issuedCode(t, db, "reset@example.com")

	t.Run("ExpiredCodeRejected", func(t *testing.T) {
		require.NoError(t, db.Model(&otp.OTP{}).
			Where("user_id = ?", created.ID).
			Update("expires_at", time.Now().Add(-time.Minute)).Error)

		err := svc.ConfirmPasswordReset(ctx, created.ID, resetCode, "brand-new-pass")
		assert.ErrorIs(t, err, user.ErrInvalidOTP)
	})

	// Re-issue and complete the flow.
	_, err = svc.RequestPasswordReset(ctx, "reset@example.com")
	require.NoError(t, err)
	resetCode, _ = issuedCode(t, db, "reset@example.com")

	require.NoError(t, svc.ConfirmPasswordReset(ctx, created.ID, resetCode, "brand-new-pass"))

	_, _, err = svc.Login(ctx, user.LoginDTO{Email: "reset@example.com", Password: "super-secret"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, user.LoginDTO{Email: "reset@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)
}
