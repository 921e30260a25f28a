package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jand19081/ladle/internal/model"
	"github.com/jand19081/ladle/internal/store"
	ws "github.com/jand19081/ladle/internal/websocket"
)

type UnitHandler struct {
	unitStore *store.UnitStore
	hub       *ws.Hub
	logger    *slog.Logger
}

func NewUnitHandler(us *store.UnitStore, hub *ws.Hub, logger *slog.Logger) *UnitHandler {
	return &UnitHandler{unitStore: us, hub: hub, logger: logger}
}

func (h *UnitHandler) List(w http.ResponseWriter, r *http.Request) {
	units, err := h.unitStore.List()
	if err != nil {
		h.logger.Error("list units", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list units"})
		return
	}
	if units == nil {
		units = []model.Unit{}
	}
	writeJSON(w, http.StatusOK, units)
}

type unitRequest struct {
	Type         model.UnitType `json:"type"`
	Abbrev       string         `json:"abbrev"`
	FactorToBase float64        `json:"factor_to_base"`
}

// Create adds a custom unit. A factor_to_base of zero means the unit stands
// alone and converts only through ingredient bridges.
func (h *UnitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Abbrev = strings.TrimSpace(req.Abbrev)
	if req.Abbrev == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "abbrev is required"})
		return
	}
	switch req.Type {
	case model.UnitWeight, model.UnitVolume, model.UnitCount, model.UnitCustom:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type must be weight, volume, count, or custom"})
		return
	}
	if req.FactorToBase < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "factor_to_base cannot be negative"})
		return
	}

	unit, err := h.unitStore.CreateCustom(req.Type, req.Abbrev, req.FactorToBase)
	if err != nil {
		h.logger.Error("create unit", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create unit"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("unit", "created", unit.ID, nil))
	writeJSON(w, http.StatusCreated, unit)
}

func (h *UnitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.unitStore.Delete(id); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}

	h.hub.Broadcast(ws.NewMessage("unit", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
