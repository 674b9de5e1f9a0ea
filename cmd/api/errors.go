package main

import (
	"errors"
	"net/http"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusNotFound, "not found")
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("conflict", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusConflict, err.Error())
}

func (app *application) unauthorizedResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusUnauthorized, err.Error())
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.logger.Warnw("forbidden", "method", r.Method, "path", r.URL.Path)

	writeJsonError(w, http.StatusForbidden, "forbidden")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)
	writeJsonError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

// serviceErrorResponse maps the domain error taxonomy onto HTTP statuses.
func (app *application) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var transitionErr *domain.InvalidTransitionError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		app.notFoundError(w, r, err)
	case errors.As(err, &transitionErr):
		app.conflictResponse(w, r, err)
	case errors.Is(err, domain.ErrInvalidOrder):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, domain.ErrTableBilled):
		app.conflictResponse(w, r, err)
	case errors.Is(err, domain.ErrManagerActive):
		app.conflictResponse(w, r, err)
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrNoSession):
		app.unauthorizedResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}
