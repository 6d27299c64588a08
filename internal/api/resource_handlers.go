package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/galaxy/internal/service"
	"github.com/limbo/galaxy/pkg/entity"
	"github.com/limbo/galaxy/pkg/httputil"
)

type bodyDecoder[T any] func(r *http.Request) (*T, error)

func decodeBody[T any](r *http.Request) (*T, error) {
	var rec T
	if err := httputil.DecodeJSON(r, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// goalRequest also accepts the target date under "target".
type goalRequest struct {
	entity.Goal
	Target string `json:"target"`
}

func decodeGoal(r *http.Request) (*entity.Goal, error) {
	var req goalRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return nil, err
	}
	if req.TargetDate == "" {
		req.TargetDate = req.Target
	}
	return &req.Goal, nil
}

func listOwned[T any](svc service.ResourceServiceI[T], kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		uid, err := GetUIDFromContext(r)
		if err != nil {
			writeUnauthorized(w)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		list, err := svc.List(ctx, uid)
		if err != nil {
			writeServiceError(w, logger, "listing "+kind, err)
			return
		}
		httputil.WriteJSONResponse(w, http.StatusOK, list)
	}
}

func createOwned[T any](svc service.ResourceServiceI[T], kind string, decode bodyDecoder[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		uid, err := GetUIDFromContext(r)
		if err != nil {
			writeUnauthorized(w)
			return
		}
		rec, err := decode(r)
		if err != nil {
			writeBadBody(w, logger, "creating "+kind, err)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		if err = svc.Create(ctx, uid, rec); err != nil {
			writeServiceError(w, logger, "creating "+kind, err)
			return
		}
		httputil.WriteSuccess(w)
		logger.Debug(kind + " created")
	}
}

func updateOwned[T any, P entity.Patch[T]](svc service.ResourceServiceI[T], kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		uid, err := GetUIDFromContext(r)
		if err != nil {
			writeUnauthorized(w)
			return
		}
		var patch P
		if err = httputil.DecodeJSON(r, &patch); err != nil {
			writeBadBody(w, logger, "updating "+kind, err)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		if err = svc.Update(ctx, uid, chi.URLParam(r, "id"), patch); err != nil {
			writeServiceError(w, logger, "updating "+kind, err)
			return
		}
		httputil.WriteSuccess(w)
	}
}

func deleteOwned[T any](svc service.ResourceServiceI[T], kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		uid, err := GetUIDFromContext(r)
		if err != nil {
			writeUnauthorized(w)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		if err = svc.Delete(ctx, uid, chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, logger, "deleting "+kind, err)
			return
		}
		httputil.WriteSuccess(w)
	}
}
