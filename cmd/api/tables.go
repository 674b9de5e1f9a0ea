package main

import (
	"errors"
	"net/http"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"github.com/go-chi/chi"
)

var ErrMissingTableNumber = errors.New("table_number is required")

type CreateTableRequest struct {
	Number   string `json:"table_number" validate:"required"`
	Capacity int    `json:"capacity" validate:"gte=1"`
	QRCode   string `json:"qr_code,omitempty"`
}

type UpdateTableStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available active billed"`
}

// createTableHandler godoc
//
//	@Summary		Create table
//	@Tags			tables
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateTableRequest	true	"Table creation request"
//	@Success		201		{object}	domain.Table
//	@Failure		400		{object}	map[string]string
//	@Router			/tables [post]
//	@Security		ApiKeyAuth
func (app *application) createTableHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateTableRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	table, err := app.tableService.Create(r.Context(), req.Number, req.Capacity, req.QRCode)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, table); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listTablesHandler godoc
//
//	@Summary		List tables
//	@Tags			tables
//	@Produce		json
//	@Success		200	{array}	domain.Table
//	@Router			/tables [get]
func (app *application) listTablesHandler(w http.ResponseWriter, r *http.Request) {
	tables, err := app.tableService.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, tables); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateTableStatusHandler godoc
//
//	@Summary		Update table status
//	@Description	Billing a table pushes a payment request to its display; clearing it pushes a thank-you
//	@Tags			tables
//	@Accept			json
//	@Produce		json
//	@Param			table_number	path		string						true	"Table number"
//	@Param			request			body		UpdateTableStatusRequest	true	"Status update request"
//	@Success		200				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Router			/tables/{table_number}/status [patch]
//	@Security		ApiKeyAuth
func (app *application) updateTableStatusHandler(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "table_number")
	if number == "" {
		app.badRequestResponse(w, r, ErrMissingTableNumber)
		return
	}

	var req UpdateTableStatusRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.tableService.SetStatus(r.Context(), number, domain.TableStatus(req.Status)); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, map[string]string{"table_number": number, "status": req.Status}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteTableHandler godoc
//
//	@Summary	Delete table
//	@Tags		tables
//	@Param		table_number	path	string	true	"Table number"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/tables/{table_number} [delete]
//	@Security	ApiKeyAuth
func (app *application) deleteTableHandler(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "table_number")
	if number == "" {
		app.badRequestResponse(w, r, ErrMissingTableNumber)
		return
	}

	if err := app.tableService.Delete(r.Context(), number); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
