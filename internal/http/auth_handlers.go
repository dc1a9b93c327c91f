package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"dhulbeeg-backend/internal/repository"
	"dhulbeeg-backend/internal/store"
)

// AuthHandler account endpoints under /api/auth. Sessions are opaque tokens
// held in the KV store; there is no signed-token middleware, each handler
// resolves the bearer token itself.
type AuthHandler struct {
	users    repository.UsersRepository
	sessions *store.SessionStore
	logger   *zap.Logger
}

func NewAuthHandler(users repository.UsersRepository, sessions *store.SessionStore, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		Name       string `json:"name"`
		Phone      string `json:"phone"`
		Role       string `json:"role"`
		Department string `json:"department"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, fail("invalid request body"))
		return
	}
	if payload.Email == "" || payload.Password == "" || payload.Name == "" {
		writeJSON(w, http.StatusBadRequest, fail("email, password and name are required"))
		return
	}
	if len(payload.Password) < 6 {
		writeJSON(w, http.StatusBadRequest, fail("password must be at least 6 characters"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), 10)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, fail("internal server error"))
		return
	}

	user, err := h.users.Create(r.Context(), repository.NewUser{
		Email:        strings.ToLower(strings.TrimSpace(payload.Email)),
		PasswordHash: string(hash),
		Name:         payload.Name,
		Phone:        payload.Phone,
		Role:         payload.Role,
		Department:   payload.Department,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			writeJSON(w, http.StatusConflict, fail("user already exists"))
			return
		}
		h.logger.Error("failed to register user", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, fail("internal server error"))
		return
	}

	token, err := h.issueSession(r, user.ID)
	if err != nil {
		h.logger.Error("failed to store session", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, fail("internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, okMessage("User registered successfully", map[string]any{
		"token": token,
		"user":  user.ToJSON(),
	}))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, fail("invalid request body"))
		return
	}

	user, err := h.users.GetByEmail(r.Context(), strings.ToLower(strings.TrimSpace(payload.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.logger.Warn("login failed: unknown email",
				zap.String("ip_address", r.RemoteAddr))
			writeJSON(w, http.StatusUnauthorized, fail("invalid credentials"))
			return
		}
		h.logger.Error("failed to look up user", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, fail("internal server error"))
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)) != nil {
		h.logger.Warn("login failed: bad password",
			zap.Int64("user_id", user.ID),
			zap.String("ip_address", r.RemoteAddr))
		writeJSON(w, http.StatusUnauthorized, fail("invalid credentials"))
		return
	}

	token, err := h.issueSession(r, user.ID)
	if err != nil {
		h.logger.Error("failed to store session", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, fail("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, okMessage("Login successful", map[string]any{
		"token": token,
		"user":  user.ToJSON(),
	}))
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID, okToken := h.authenticate(w, r)
	if !okToken {
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ok(user.ToJSON()))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	token := bearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, fail("missing token"))
		return
	}
	if err := h.sessions.Revoke(r.Context(), token); err != nil {
		h.logger.Error("failed to revoke session", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, fail("internal server error"))
		return
	}
	writeJSON(w, http.StatusOK, okMessage("Logged out", nil))
}

func (h *AuthHandler) issueSession(r *http.Request, userID int64) (string, error) {
	token := uuid.NewString()
	if err := h.sessions.Save(r.Context(), token, userID); err != nil {
		return "", err
	}
	return token, nil
}

// authenticate resolves the bearer token to a user id, writing the 401
// itself on failure.
func (h *AuthHandler) authenticate(w http.ResponseWriter, r *http.Request) (int64, bool) {
	token := bearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, fail("missing token"))
		return 0, false
	}
	userID, err := h.sessions.Resolve(r.Context(), token)
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			writeJSON(w, http.StatusUnauthorized, fail("invalid or expired token"))
			return 0, false
		}
		h.logger.Error("failed to resolve session", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, fail("internal server error"))
		return 0, false
	}
	return userID, true
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(auth[len("Bearer "):])
	}
	return ""
}
