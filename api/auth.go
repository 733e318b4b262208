package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ironledger/ironledger/internal/models"
	"github.com/ironledger/ironledger/internal/validation"
	"github.com/ironledger/ironledger/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

// request bodies are capped; nothing legitimate comes close
const maxBodySize = 64 * 1024

type AuthHandler struct {
	userRepo      repository.UserRepo
	profileRepo   repository.ProfileRepo
	jwtSecret     string
	tokenDuration time.Duration
	bcryptCost    int
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, pr repository.ProfileRepo, jwtSecret string, tokenDuration time.Duration, bcryptCost int) *AuthHandler {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthHandler{userRepo: ur, profileRepo: pr, jwtSecret: jwtSecret, tokenDuration: tokenDuration, bcryptCost: bcryptCost}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	ctx := r.Context()

	fieldErrs, err := validation.Validate(ctx, validation.Signup, body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if len(fieldErrs) > 0 {
		respondValidation(w, fieldErrs)
		return
	}

	var req signupRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	// Duplicate check before hashing; the UNIQUE constraint still backs
	// this up under concurrent signups.
	if existing, err := h.userRepo.GetUserByEmail(ctx, req.Email); err != nil {
		logger.Error("signup email lookup", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	} else if existing != nil {
		respondError(w, http.StatusBadRequest, "User with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		logger.Error("hash password", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	userID, err := h.userRepo.CreateUser(ctx, &user)
	if err != nil {
		if err == repository.ErrDuplicateEmail {
			respondError(w, http.StatusBadRequest, "User with this email already exists")
			return
		}
		logger.Error("create user", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Empty profile row linked to the new user
	profile := models.Profile{UserID: userID}
	if _, err := h.profileRepo.CreateProfile(ctx, &profile); err != nil {
		logger.Error("create profile", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, map[string]any{"message": "User created successfully", "userId": userID}, http.StatusCreated)
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	ctx := r.Context()

	fieldErrs, err := validation.Validate(ctx, validation.Signin, body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if len(fieldErrs) > 0 {
		respondValidation(w, fieldErrs)
		return
	}

	var req signinRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	user, err := h.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		logger.Error("signin email lookup", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Credentials not found")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "Credentials not found")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(h.tokenDuration).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		logger.Error("sign token", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, authResponse{Token: tokenStr}, http.StatusOK)
}

func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	// For stateless JWT, signout is client-side (just delete token)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, `{"message":"signed out"}`)
}

// Me returns the authenticated user and their profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Error("get user", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	profile, err := h.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		logger.Error("get profile", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, map[string]any{"user": user, "profile": profile}, http.StatusOK)
}
