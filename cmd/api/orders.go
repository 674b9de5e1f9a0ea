package main

import (
	"errors"
	"net/http"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/repo"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/service"
	"github.com/go-chi/chi"
)

var ErrMissingID = errors.New("order_id is required")

type PlaceOrderItemRequest struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=1"`
	Notes    string  `json:"notes,omitempty"`
}

type PlaceOrderRequest struct {
	TableNumber    string                  `json:"table_number" validate:"required"`
	Items          []PlaceOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	CustomerName   string                  `json:"customer_name,omitempty"`
	CustomerMobile string                  `json:"customer_mobile,omitempty"`
	Notes          string                  `json:"notes,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending preparing ready served completed cancelled"`
}

type AssignWaiterRequest struct {
	StaffID string `json:"staff_id" validate:"required"`
}

// placeOrderHandler godoc
//
//	@Summary		Place an order
//	@Description	Places a new order for a table; the total is computed server-side and the status is always pending
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PlaceOrderRequest	true	"Order placement request"
//	@Success		201		{object}	domain.Order
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/orders [post]
func (app *application) placeOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Notes:    item.Notes,
		})
	}

	order, err := app.orderService.Place(r.Context(), service.PlaceOrderInput{
		TableNumber:    req.TableNumber,
		Items:          items,
		CustomerName:   req.CustomerName,
		CustomerMobile: req.CustomerMobile,
		Notes:          req.Notes,
	})
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listOrdersHandler godoc
//
//	@Summary		List orders
//	@Description	Lists orders, optionally filtered by table number and status
//	@Tags			orders
//	@Produce		json
//	@Param			table	query		string	false	"Table number"
//	@Param			status	query		string	false	"Order status"
//	@Success		200		{array}		domain.Order
//	@Failure		500		{object}	map[string]string
//	@Router			/orders [get]
func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	filter := repo.OrderFilter{
		TableNumber: r.URL.Query().Get("table"),
		Status:      domain.OrderStatus(r.URL.Query().Get("status")),
	}

	orders, err := app.orderService.List(r.Context(), filter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, orders); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOrderHandler godoc
//
//	@Summary		Get order
//	@Description	Get one order by its correlation id
//	@Tags			orders
//	@Produce		json
//	@Param			order_id	path		string	true	"Order ID"
//	@Success		200			{object}	domain.Order
//	@Failure		404			{object}	map[string]string
//	@Router			/orders/{order_id} [get]
func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrMissingID)
		return
	}

	order, err := app.orderService.Get(r.Context(), orderID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateOrderStatusHandler godoc
//
//	@Summary		Update order status
//	@Description	Moves an order through its lifecycle; illegal transitions are rejected with 409
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string						true	"Order ID"
//	@Param			request		body		UpdateOrderStatusRequest	true	"Status update request"
//	@Success		200			{object}	domain.Order
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Router			/orders/{order_id}/status [patch]
//	@Security		ApiKeyAuth
func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrMissingID)
		return
	}

	var req UpdateOrderStatusRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	changedBy := ""
	if session := sessionFromContext(r.Context()); session != nil {
		changedBy = session.StaffID
	}

	order, err := app.orderService.UpdateStatus(r.Context(), orderID, domain.OrderStatus(req.Status), changedBy)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// assignWaiterHandler godoc
//
//	@Summary		Assign waiter
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string				true	"Order ID"
//	@Param			request		body		AssignWaiterRequest	true	"Waiter assignment"
//	@Success		200			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/orders/{order_id}/waiter [patch]
//	@Security		ApiKeyAuth
func (app *application) assignWaiterHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrMissingID)
		return
	}

	var req AssignWaiterRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.orderService.AssignWaiter(r.Context(), orderID, req.StaffID); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, map[string]string{"order_id": orderID, "assigned_waiter": req.StaffID}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeOrderHandler godoc
//
//	@Summary		Remove order record
//	@Description	Hard-deletes an order regardless of status. Irreversible; the client must confirm with the user first.
//	@Tags			orders
//	@Produce		json
//	@Param			order_id	path	string	true	"Order ID"
//	@Success		204
//	@Failure		404	{object}	map[string]string
//	@Router			/orders/{order_id} [delete]
//	@Security		ApiKeyAuth
func (app *application) removeOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrMissingID)
		return
	}

	if err := app.orderService.Remove(r.Context(), orderID); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getOrderAuditHandler godoc
//
//	@Summary		Get order status history
//	@Tags			orders
//	@Produce		json
//	@Param			order_id	path		string	true	"Order ID"
//	@Success		200			{array}		domain.OrderStatusAudit
//	@Failure		404			{object}	map[string]string
//	@Router			/orders/{order_id}/audit [get]
//	@Security		ApiKeyAuth
func (app *application) getOrderAuditHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrMissingID)
		return
	}

	audits, err := app.orderService.GetAudit(r.Context(), orderID, 50)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, audits); err != nil {
		app.internalServerError(w, r, err)
	}
}
