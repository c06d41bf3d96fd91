package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/afras-tabs/catalog-backend/database"
	"github.com/afras-tabs/catalog-backend/models"
)

type tabberHandler struct {
	responder  Responder
	logger     zerolog.Logger
	tabberRepo *database.TabberRepo
}

func newTabberHandler(tabberRepo *database.TabberRepo) tabberHandler {
	logger := log.With().Str("handlerName", "tabberHandler").Logger()

	return tabberHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		tabberRepo: tabberRepo,
	}
}

// getAllTabbers retrieves all tabbers
// @Summary Get all tabbers
// @Tags Tabbers
// @Produce json
// @Success 200 {array} models.Tabber
// @Router /admin/tabbers [get]
func (h tabberHandler) getAllTabbers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tabbers, err := h.tabberRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tabbers", err))
			return
		}
		h.responder.WriteJSON(w, tabbers)
	}
}

// getTabber retrieves a tabber by ID
// @Summary Get tabber
// @Tags Tabbers
// @Produce json
// @Param tabberID path string true "Tabber ID" format(uuid)
// @Success 200 {object} models.Tabber
// @Failure 404 {object} ErrorResponse
// @Router /admin/tabbers/{tabberID} [get]
func (h tabberHandler) getTabber() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tabberID, err := uuidParam(r, "tabberID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tabber, err := h.tabberRepo.FindByID(r.Context(), tabberID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tabber", err))
			return
		}
		h.responder.WriteJSON(w, tabber)
	}
}

// createTabber creates a new tabber
// @Summary Create tabber
// @Tags Tabbers
// @Accept json
// @Produce json
// @Param tabber body tabberInput true "Tabber data"
// @Success 201 {object} models.Tabber
// @Failure 400 {object} ErrorResponse
// @Router /admin/tabbers [post]
func (h tabberHandler) createTabber() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in tabberInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := in.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var tabber models.Tabber
		in.apply(&tabber)
		if err := h.tabberRepo.Add(r.Context(), &tabber); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "tabber", err))
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, tabber)
	}
}

// updateTabber updates an existing tabber
// @Summary Update tabber
// @Tags Tabbers
// @Accept json
// @Produce json
// @Param tabberID path string true "Tabber ID" format(uuid)
// @Param tabber body tabberInput true "Tabber data"
// @Success 200 {object} models.Tabber
// @Failure 404 {object} ErrorResponse
// @Router /admin/tabbers/{tabberID} [put]
func (h tabberHandler) updateTabber() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tabberID, err := uuidParam(r, "tabberID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in tabberInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := in.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tabber := models.Tabber{ID: tabberID}
		in.apply(&tabber)
		if err := h.tabberRepo.Update(r.Context(), &tabber); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "tabber", err))
			return
		}
		h.responder.WriteJSON(w, tabber)
	}
}

// deleteTabber deletes a tabber and removes its song credits
// @Summary Delete tabber
// @Tags Tabbers
// @Produce json
// @Param tabberID path string true "Tabber ID" format(uuid)
// @Success 200 {object} StatusResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/tabbers/{tabberID} [delete]
func (h tabberHandler) deleteTabber() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tabberID, err := uuidParam(r, "tabberID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.tabberRepo.Delete(r.Context(), tabberID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "tabber", err))
			return
		}
		h.responder.writeDeleted(w, "tabber")
	}
}
