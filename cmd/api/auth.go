package main

import (
	"errors"
	"net/http"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"github.com/go-chi/chi"
)

type LoginRequest struct {
	Role    string `json:"role" validate:"required,oneof=WAITER KITCHEN MANAGER SUB_MANAGER waiter kitchen manager sub_manager"`
	StaffID string `json:"staff_id" validate:"required"`
	Secret  string `json:"secret,omitempty"`
	Name    string `json:"name,omitempty"`
}

type CreateStaffRequest struct {
	Role   string `json:"role" validate:"required,oneof=WAITER KITCHEN MANAGER SUB_MANAGER"`
	Name   string `json:"name" validate:"required"`
	Secret string `json:"secret" validate:"required"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	Photo  string `json:"photo,omitempty"`
}

// loginHandler godoc
//
//	@Summary		Staff login
//	@Description	Authenticates a staff identity. WAITER/KITCHEN may supply a display name instead of a secret. Only one MANAGER session may be active at a time.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Login request"
//	@Success		200		{object}	domain.Session
//	@Failure		401		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/auth/login [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.authService.Login(r.Context(), domain.StaffRole(req.Role), req.StaffID, req.Secret, req.Name)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

// logoutHandler godoc
//
//	@Summary	Staff logout
//	@Tags		auth
//	@Produce	json
//	@Success	204
//	@Router		/auth/logout [post]
//	@Security	ApiKeyAuth
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		app.unauthorizedResponse(w, r, errors.New("missing authorization token"))
		return
	}

	if err := app.authService.Logout(r.Context(), token); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getSessionHandler godoc
//
//	@Summary		Get current session
//	@Description	Returns the session behind the bearer token; expired sessions are cleared lazily on this read
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	domain.Session
//	@Failure		401	{object}	map[string]string
//	@Router			/auth/session [get]
//	@Security		ApiKeyAuth
func (app *application) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		app.unauthorizedResponse(w, r, errors.New("missing authorization token"))
		return
	}

	session, err := app.authService.GetSession(r.Context(), token)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createStaffHandler godoc
//
//	@Summary	Create staff profile
//	@Tags		staff
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateStaffRequest	true	"Staff profile"
//	@Success	201		{object}	domain.StaffProfile
//	@Failure	400		{object}	map[string]string
//	@Router		/staff [post]
//	@Security	ApiKeyAuth
func (app *application) createStaffHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateStaffRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	profile, err := app.authService.CreateStaff(r.Context(), domain.StaffRole(req.Role), req.Name, req.Secret, req.Email, req.Photo)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, profile); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listStaffHandler godoc
//
//	@Summary	List staff profiles
//	@Tags		staff
//	@Produce	json
//	@Success	200	{array}	domain.StaffProfile
//	@Router		/staff [get]
//	@Security	ApiKeyAuth
func (app *application) listStaffHandler(w http.ResponseWriter, r *http.Request) {
	profiles, err := app.authService.ListStaff(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, profiles); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteStaffHandler godoc
//
//	@Summary	Delete staff profile
//	@Tags		staff
//	@Param		staff_id	path	string	true	"Staff ID"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/staff/{staff_id} [delete]
//	@Security	ApiKeyAuth
func (app *application) deleteStaffHandler(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staff_id")
	if staffID == "" {
		app.badRequestResponse(w, r, errors.New("staff_id is required"))
		return
	}

	if err := app.authService.DeleteStaff(r.Context(), staffID); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
