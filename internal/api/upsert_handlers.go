package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/galaxy/pkg/entity"
	"github.com/limbo/galaxy/pkg/httputil"
)

type ToggleRequest struct {
	HabitID string `json:"habitId"`
	Date    string `json:"date"`
	Checked bool   `json:"checked"`
}

func (s *Server) ListHabitLogs(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		writeUnauthorized(w)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	logs, err := s.upserts.ListToggles(ctx, uid)
	if err != nil {
		writeServiceError(w, logger, "listing habit logs", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, logs)
}

func (s *Server) ToggleHabitLog(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		writeUnauthorized(w)
		return
	}
	var req ToggleRequest
	if err = httputil.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, logger, "toggling habit log", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err = s.upserts.SetToggle(ctx, uid, req.HabitID, req.Date, req.Checked); err != nil {
		writeServiceError(w, logger, "toggling habit log", err)
		return
	}
	httputil.WriteSuccess(w)
}

func (s *Server) ListReflections(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		writeUnauthorized(w)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	list, err := s.upserts.ListReflections(ctx, uid)
	if err != nil {
		writeServiceError(w, logger, "listing reflections", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, list)
}

func (s *Server) SetReflection(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		writeUnauthorized(w)
		return
	}
	var refl entity.Reflection
	if err = httputil.DecodeJSON(r, &refl); err != nil {
		writeBadBody(w, logger, "saving reflection", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err = s.upserts.SetReflection(ctx, uid, &refl); err != nil {
		writeServiceError(w, logger, "saving reflection", err)
		return
	}
	httputil.WriteSuccess(w)
}

func (s *Server) DeleteReflection(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		writeUnauthorized(w)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err = s.upserts.DeleteReflection(ctx, uid, chi.URLParam(r, "date")); err != nil {
		writeServiceError(w, logger, "deleting reflection", err)
		return
	}
	httputil.WriteSuccess(w)
}

func (s *Server) ListCalendarNotes(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		writeUnauthorized(w)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	list, err := s.upserts.ListCalendarNotes(ctx, uid)
	if err != nil {
		writeServiceError(w, logger, "listing calendar notes", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, list)
}

func (s *Server) SetCalendarNote(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		writeUnauthorized(w)
		return
	}
	var note entity.CalendarNote
	if err = httputil.DecodeJSON(r, &note); err != nil {
		writeBadBody(w, logger, "saving calendar note", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err = s.upserts.SetCalendarNote(ctx, uid, &note); err != nil {
		writeServiceError(w, logger, "saving calendar note", err)
		return
	}
	httputil.WriteSuccess(w)
}

func (s *Server) DeleteCalendarNote(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		writeUnauthorized(w)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err = s.upserts.DeleteCalendarNote(ctx, uid, chi.URLParam(r, "date")); err != nil {
		writeServiceError(w, logger, "deleting calendar note", err)
		return
	}
	httputil.WriteSuccess(w)
}
