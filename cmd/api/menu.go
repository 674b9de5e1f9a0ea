package main

import (
	"errors"
	"net/http"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidItemID = errors.New("invalid item ID format")

type MenuItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image,omitempty"`
	Available   bool    `json:"available"`
	Description string  `json:"description,omitempty"`
}

type AvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// listMenuHandler godoc
//
//	@Summary		List menu items
//	@Tags			menu
//	@Produce		json
//	@Success		200	{array}	domain.MenuItem
//	@Router			/menu [get]
func (app *application) listMenuHandler(w http.ResponseWriter, r *http.Request) {
	items, err := app.menuService.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, items); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createMenuItemHandler godoc
//
//	@Summary		Create menu item
//	@Tags			menu
//	@Accept			json
//	@Produce		json
//	@Param			request	body		MenuItemRequest	true	"Menu item"
//	@Success		201		{object}	domain.MenuItem
//	@Failure		400		{object}	map[string]string
//	@Router			/menu [post]
//	@Security		ApiKeyAuth
func (app *application) createMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	var req MenuItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	item, err := app.menuService.Create(r.Context(), &domain.MenuItem{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Image:       req.Image,
		Available:   req.Available,
		Description: req.Description,
	})
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, item); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateMenuItemHandler godoc
//
//	@Summary		Update menu item
//	@Tags			menu
//	@Accept			json
//	@Produce		json
//	@Param			item_id	path		string			true	"Item ID"
//	@Param			request	body		MenuItemRequest	true	"Menu item"
//	@Success		200		{object}	domain.MenuItem
//	@Failure		404		{object}	map[string]string
//	@Router			/menu/{item_id} [put]
//	@Security		ApiKeyAuth
func (app *application) updateMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "item_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidItemID)
		return
	}

	var req MenuItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	item := &domain.MenuItem{
		ID:          itemID,
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Image:       req.Image,
		Available:   req.Available,
		Description: req.Description,
	}

	if err := app.menuService.Update(r.Context(), item); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, item); err != nil {
		app.internalServerError(w, r, err)
	}
}

// setMenuItemAvailabilityHandler godoc
//
//	@Summary		Toggle menu item availability
//	@Description	Availability toggling never deletes the item
//	@Tags			menu
//	@Accept			json
//	@Produce		json
//	@Param			item_id	path		string				true	"Item ID"
//	@Param			request	body		AvailabilityRequest	true	"Availability"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		404		{object}	map[string]string
//	@Router			/menu/{item_id}/availability [patch]
//	@Security		ApiKeyAuth
func (app *application) setMenuItemAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "item_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidItemID)
		return
	}

	var req AvailabilityRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.menuService.SetAvailability(r.Context(), itemID, *req.Available); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	response := map[string]interface{}{
		"item_id":   itemID.Hex(),
		"available": *req.Available,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteMenuItemHandler godoc
//
//	@Summary	Delete menu item
//	@Tags		menu
//	@Param		item_id	path	string	true	"Item ID"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/menu/{item_id} [delete]
//	@Security	ApiKeyAuth
func (app *application) deleteMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "item_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidItemID)
		return
	}

	if err := app.menuService.Delete(r.Context(), itemID); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
