package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jand19081/ladle/internal/model"
	"github.com/jand19081/ladle/internal/store"
	ws "github.com/jand19081/ladle/internal/websocket"
)

type PantryHandler struct {
	pantryStore *store.PantryStore
	hub         *ws.Hub
	logger      *slog.Logger
}

func NewPantryHandler(ps *store.PantryStore, hub *ws.Hub, logger *slog.Logger) *PantryHandler {
	return &PantryHandler{pantryStore: ps, hub: hub, logger: logger}
}

func (h *PantryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.pantryStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list pantry"})
		return
	}
	if items == nil {
		items = []model.PantryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Set records the on-hand quantity of an ingredient. An amount of zero
// clears the entry.
func (h *PantryHandler) Set(w http.ResponseWriter, r *http.Request) {
	ingredientID, err := strconv.ParseInt(r.PathValue("ingredient_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ingredient_id"})
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
		UnitID int64   `json:"unit_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Amount < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount cannot be negative"})
		return
	}

	item, err := h.pantryStore.Set(ingredientID, req.Amount, req.UnitID)
	if err != nil {
		h.logger.Error("set pantry item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to set pantry item"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("pantry", "updated", ingredientID, nil))
	if item == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *PantryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ingredientID, err := strconv.ParseInt(r.PathValue("ingredient_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ingredient_id"})
		return
	}

	if err := h.pantryStore.Delete(ingredientID); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete pantry item"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("pantry", "deleted", ingredientID, nil))
	w.WriteHeader(http.StatusNoContent)
}
