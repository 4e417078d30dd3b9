package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/learnsmart-app/learnsmart-api/internal/auth"
	"github.com/learnsmart-app/learnsmart-api/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body for register")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.service.Register(r.Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			config.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrEmailTaken):
			config.Error(w, http.StatusBadRequest, "email already registered")
		default:
			log.WithError(err).Error("Failed to register user")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"user_id": response.ID,
		"message": "Registration successful. Please check your email for the OTP to verify your account.",
	})
}

func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto VerifyOTPDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.service.VerifyOTP(r.Context(), userID, dto.OTP)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			config.Error(w, http.StatusNotFound, "user not found")
		case errors.Is(err, ErrInvalidOTP):
			config.Error(w, http.StatusBadRequest, "Invalid or expired OTP.")
		default:
			log.WithError(err).Error("Failed to verify OTP")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	auth.SetTokenCookie(w, token)
	config.JSON(w, http.StatusOK, map[string]string{
		"message": "Account verified successfully.",
		"token":   token,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, response, err := h.service.Login(r.Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			config.Error(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, ErrInactiveAccount):
			config.Error(w, http.StatusUnauthorized, "account not verified")
		default:
			log.WithError(err).Error("Failed to log in")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	auth.SetTokenCookie(w, token)
	config.JSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  response,
	})
}

func (h *Handler) PasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto PasswordResetRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.service.RequestPasswordReset(r.Context(), dto.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			config.Error(w, http.StatusNotFound, "user not found")
			return
		}
		log.WithError(err).Error("Failed to request password reset")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"user_id": response.ID,
		"message": "OTP for password reset has been sent to your email.",
	})
}

func (h *Handler) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto PasswordResetConfirmDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.ConfirmPasswordReset(r.Context(), userID, dto.OTP, dto.NewPassword); err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			config.Error(w, http.StatusNotFound, "user not found")
		case errors.Is(err, ErrInvalidOTP):
			config.Error(w, http.StatusBadRequest, "Invalid or expired OTP.")
		case errors.Is(err, ErrValidation):
			config.Error(w, http.StatusBadRequest, err.Error())
		default:
			log.WithError(err).Error("Failed to confirm password reset")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "Password has been reset successfully.",
	})
}

func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto GoogleLoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.Code == "" {
		config.Error(w, http.StatusBadRequest, "authorization code required")
		return
	}

	token, response, err := h.service.GoogleLogin(r.Context(), dto.Code)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			config.Error(w, http.StatusUnauthorized, "invalid authorization code")
			return
		}
		log.WithError(err).Error("Google login failed")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	auth.SetTokenCookie(w, token)
	config.JSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  response,
	})
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated for token refresh")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	token, err := auth.GenerateJWT(claims.UserID, claims.Role, auth.TokenDuration)
	if err != nil {
		log.WithError(err).Error("Failed to refresh token")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	auth.SetTokenCookie(w, token)
	config.JSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	response, err := h.service.Me(r.Context(), uuid.MustParse(claims.UserID))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			config.Error(w, http.StatusNotFound, "user not found")
			return
		}
		log.WithError(err).Error("Failed to fetch user")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, response)
}
