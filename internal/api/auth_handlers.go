package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/limbo/galaxy/internal/service"
	"github.com/limbo/galaxy/pkg/entity"
	"github.com/limbo/galaxy/pkg/httputil"
)

type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success     bool   `json:"success"`
	DisplayName string `json:"displayName"`
}

type MeResponse struct {
	LoggedIn    bool   `json:"loggedIn"`
	DisplayName string `json:"displayName,omitempty"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, logger, "registering", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	user, err := s.authService.Register(ctx, &service.RegisterRequest{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		writeServiceError(w, logger, "registering", err)
		return
	}
	if !s.startSession(w, r, logger, user) {
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, AuthResponse{Success: true, DisplayName: user.DisplayName})
	logger.Info("successful registration", slog.String("uid", user.ID.String()))
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, logger, "login", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	user, err := s.authService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, logger, "login", err)
		return
	}
	if !s.startSession(w, r, logger, user) {
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, AuthResponse{Success: true, DisplayName: user.DisplayName})
	logger.Info("successful login", slog.String("uid", user.ID.String()))
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.sessions.End(GetSessionToken(r))
	s.clearSessionCookie(w)
	httputil.WriteSuccess(w)
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	user, err := s.sessions.Resolve(GetSessionToken(r))
	if err != nil {
		httputil.WriteJSONResponse(w, http.StatusOK, MeResponse{LoggedIn: false})
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, MeResponse{LoggedIn: true, DisplayName: user.DisplayName})
}

// startSession replaces the caller's session with a new one for user.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, logger *slog.Logger, user *entity.User) bool {
	if old := GetSessionToken(r); old != "" {
		s.sessions.End(old)
	}
	token, err := s.sessions.Start(user)
	if err != nil {
		logger.Error("starting session error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating session", nil)
		return false
	}
	s.setSessionCookie(w, token)
	return true
}
