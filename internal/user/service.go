package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/learnsmart-app/learnsmart-api/internal/auth"
	"github.com/learnsmart-app/learnsmart-api/internal/config"
	"github.com/learnsmart-app/learnsmart-api/internal/otp"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account not verified")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrValidation         = errors.New("validation failed")
)

type Service interface {
	Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error)
	VerifyOTP(ctx context.Context, userID uuid.UUID, code string) (string, error)
	Login(ctx context.Context, dto LoginDTO) (string, *UserResponse, error)
	RequestPasswordReset(ctx context.Context, email string) (*UserResponse, error)
	ConfirmPasswordReset(ctx context.Context, userID uuid.UUID, code, newPassword string) error
	GoogleLogin(ctx context.Context, code string) (string, *UserResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error)
}

type service struct {
	repo     UserRepository
	otpStore otp.Store
	mailer   otp.Mailer
	oauthCfg *oauth2.Config
}

func NewService(repo UserRepository, otpStore otp.Store, mailer otp.Mailer) Service {
	return &service{
		repo:     repo,
		otpStore: otpStore,
		mailer:   mailer,
		oauthCfg: &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://accounts.google.com/o/oauth2/auth",
				TokenURL: "https://oauth2.googleapis.com/token",
			},
		},
	}
}

func (s *service) Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error) {
	log := config.WithContext(ctx)

	dto.Email = strings.TrimSpace(strings.ToLower(dto.Email))
	if dto.Email == "" || dto.Username == "" || len(dto.Password) < 8 {
		return nil, fmt.Errorf("%w: email, username and a password of at least 8 characters are required", ErrValidation)
	}

	if _, err := s.repo.FindByEmail(dto.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Email:        dto.Email,
		Username:     dto.Username,
		PasswordHash: string(hash),
		IsActive:     false,
	}
	if err := s.repo.Create(u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	if err := s.sendOTP(u, "Your LearnSmart Verification Code",
		"Your OTP code is: %s"); err != nil {
		log.WithError(err).Error("Failed to send verification OTP")
		return nil, err
	}

	log.Infof("User %s registered, verification OTP sent", u.ID)
	return toResponse(u), nil
}

func (s *service) VerifyOTP(ctx context.Context, userID uuid.UUID, code string) (string, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.FindByID(userID)
	if err != nil {
		return "", err
	}

	record, err := s.otpStore.FindByUser(userID)
	if err != nil {
		if errors.Is(err, otp.ErrNotFound) {
			return "", ErrInvalidOTP
		}
		return "", err
	}

	if !record.IsValid(code, time.Now()) {
		log.Warnf("Invalid or expired OTP for user %s", userID)
		return "", ErrInvalidOTP
	}

	u.IsActive = true
	if err := s.repo.Update(u); err != nil {
		return "", err
	}
	if err := s.otpStore.Delete(userID); err != nil {
		log.WithError(err).Warn("Failed to delete consumed OTP")
	}

	return auth.GenerateJWT(u.ID.String(), "student", auth.TokenDuration)
}

func (s *service) Login(ctx context.Context, dto LoginDTO) (string, *UserResponse, error) {
	u, err := s.repo.FindByEmail(strings.TrimSpace(strings.ToLower(dto.Email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return "", nil, ErrInactiveAccount
	}

	token, err := auth.GenerateJWT(u.ID.String(), "student", auth.TokenDuration)
	if err != nil {
		return "", nil, err
	}
	return token, toResponse(u), nil
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) (*UserResponse, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.FindByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, err
	}

	if err := s.sendOTP(u, "Your Password Reset Code",
		"Your OTP code for password reset is: %s"); err != nil {
		log.WithError(err).Error("Failed to send password reset OTP")
		return nil, err
	}

	return toResponse(u), nil
}

func (s *service) ConfirmPasswordReset(ctx context.Context, userID uuid.UUID, code, newPassword string) error {
	log := config.WithContext(ctx)

	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must have at least 8 characters", ErrValidation)
	}

	u, err := s.repo.FindByID(userID)
	if err != nil {
		return err
	}

	record, err := s.otpStore.FindByUser(userID)
	if err != nil {
		if errors.Is(err, otp.ErrNotFound) {
			return ErrInvalidOTP
		}
		return err
	}
	if !record.IsValid(code, time.Now()) {
		log.Warnf("Invalid or expired password reset OTP for user %s", userID)
		return ErrInvalidOTP
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	if err := s.repo.Update(u); err != nil {
		return err
	}
	if err := s.otpStore.Delete(userID); err != nil {
		log.WithError(err).Warn("Failed to delete consumed OTP")
	}
	return nil
}

type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *service) GoogleLogin(ctx context.Context, code string) (string, *UserResponse, error) {
	log := config.WithContext(ctx)

	oauthToken, err := s.oauthCfg.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Warn("Google code exchange failed")
		return "", nil, ErrInvalidCredentials
	}

	info, err := s.fetchGoogleUserInfo(ctx, oauthToken)
	if err != nil {
		log.WithError(err).Error("Failed to fetch Google user info")
		return "", nil, err
	}

	u, err := s.repo.FindByEmail(info.Email)
	if errors.Is(err, ErrUserNotFound) {
		u = &User{
			ID:       uuid.New(),
			Email:    info.Email,
			Username: info.Name,
			IsActive: true,
		}
		if err := s.repo.Create(u); err != nil {
			return "", nil, err
		}
	} else if err != nil {
		return "", nil, err
	}

	if oauthToken.RefreshToken != "" {
		encrypted, err := config.Encrypt(oauthToken.RefreshToken)
		if err != nil {
			log.WithError(err).Error("Failed to encrypt refresh token")
			return "", nil, err
		}
		u.RefreshToken = encrypted
		u.IsActive = true
		if err := s.repo.Update(u); err != nil {
			return "", nil, err
		}
	}

	token, err := auth.GenerateJWT(u.ID.String(), "student", auth.TokenDuration)
	if err != nil {
		return "", nil, err
	}
	return token, toResponse(u), nil
}

func (s *service) fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauthCfg.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("userinfo response missing email")
	}
	return &info, nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return toResponse(u), nil
}

func (s *service) sendOTP(u *User, subject, bodyFormat string) error {
	code, err := s.otpStore.Issue(u.ID)
	if err != nil {
		return err
	}
	return s.mailer.Send(u.Email, subject, fmt.Sprintf(bodyFormat, code))
}
