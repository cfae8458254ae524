package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/cloudcost/internal/api/dto"
	"github.com/pratik-mahalle/cloudcost/internal/api/middleware"
	"github.com/pratik-mahalle/cloudcost/internal/config"
	"github.com/pratik-mahalle/cloudcost/internal/domain/user"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/utils"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/validator"
)

const refreshTokenCookie = "refreshToken"

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService user.Service
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	userService user.Service,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

// Register handles user registration
// @Summary User registration
// @Description Register a new user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse "User successfully registered"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or validation error"
// @Failure 409 {object} utils.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	session, err := h.userService.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to register user")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id": session.User.ID,
		"email":   session.User.Email,
	}).Info("User registered")

	h.setAuthCookies(w, session.AccessToken, session.RefreshToken)
	utils.WriteSuccess(w, http.StatusCreated, toAuthResponse(session))
}

// Login handles user login
// @Summary User login
// @Description Authenticate user with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Successfully authenticated"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	session, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).Warn("Authentication failed")
		writeServiceError(w, h.logger, err, "Failed to log in")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id": session.User.ID,
	}).Info("User logged in successfully")

	h.setAuthCookies(w, session.AccessToken, session.RefreshToken)
	utils.WriteSuccess(w, http.StatusOK, toAuthResponse(session))
}

// Refresh exchanges a refresh token for a new access token
// @Summary Refresh access token
// @Description Exchange a refresh token from the body or cookie for a new access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "Refresh token"
// @Success 200 {object} dto.RefreshResponse
// @Failure 400 {object} utils.ErrorResponse "Refresh token is required"
// @Failure 401 {object} utils.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
			req.RefreshToken = cookie.Value
		}
	}
	if req.RefreshToken == "" {
		utils.WriteError(w, errors.BadRequest("Refresh token is required"))
		return
	}

	accessToken, err := h.userService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to refresh token")
		return
	}

	http.SetCookie(w, h.cookie(middleware.AccessTokenCookie, accessToken, int(h.config.Auth.AccessTokenExpiry.Seconds())))
	utils.WriteSuccess(w, http.StatusOK, dto.RefreshResponse{AccessToken: accessToken})
}

// Me returns the current user's profile
// @Summary Get current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse "User not found"
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get user")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ToUserDTO(u))
}

// Logout clears the auth cookies
// @Summary Log out
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookie(middleware.AccessTokenCookie, "", -1))
	http.SetCookie(w, h.cookie(refreshTokenCookie, "", -1))
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, h.cookie(middleware.AccessTokenCookie, accessToken, int(h.config.Auth.AccessTokenExpiry.Seconds())))
	http.SetCookie(w, h.cookie(refreshTokenCookie, refreshToken, int(h.config.Auth.RefreshTokenExpiry.Seconds())))
}

func (h *AuthHandler) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   maxAge,
	}
}

func toAuthResponse(s *user.Session) dto.AuthResponse {
	return dto.AuthResponse{
		User:         dto.ToUserDTO(s.User),
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}
}
