package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jand19081/ladle/internal/costing"
	"github.com/jand19081/ladle/internal/model"
	"github.com/jand19081/ladle/internal/store"
	ws "github.com/jand19081/ladle/internal/websocket"
)

type PlanHandler struct {
	planStore     *store.PlanStore
	snapshotStore *store.SnapshotStore
	hub           *ws.Hub
	logger        *slog.Logger
}

func NewPlanHandler(ps *store.PlanStore, snap *store.SnapshotStore, hub *ws.Hub, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{planStore: ps, snapshotStore: snap, hub: hub, logger: logger}
}

func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "dates must be YYYY-MM-DD"})
		return
	}

	entries, err := h.planStore.ListRange(from, to)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list plan entries"})
		return
	}
	if entries == nil {
		entries = []model.PlanEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

type planEntryRequest struct {
	MealID     *int64  `json:"meal_id"`
	Restaurant *string `json:"restaurant"`
	Date       string  `json:"date"`
	Servings   int     `json:"servings"`
}

func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req planEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}
	if req.Servings <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "servings must be positive"})
		return
	}

	entry, err := h.planStore.Create(model.PlanEntry{
		MealID:     req.MealID,
		Restaurant: req.Restaurant,
		Date:       date,
		Servings:   req.Servings,
	})
	if errors.Is(err, model.ErrPlanTarget) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("create plan entry", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create plan entry"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("plan", "created", entry.ID, nil))
	writeJSON(w, http.StatusCreated, entry)
}

// SetConsumed marks an entry as eaten, which drops it out of shopping
// aggregation.
func (h *PlanHandler) SetConsumed(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req struct {
		Consumed bool `json:"consumed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	existing, err := h.planStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get plan entry"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan entry not found"})
		return
	}

	if err := h.planStore.SetConsumed(id, req.Consumed); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update plan entry"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("plan", "updated", id, nil))
	entry, _ := h.planStore.GetByID(id)
	writeJSON(w, http.StatusOK, entry)
}

func (h *PlanHandler) UpdateServings(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req struct {
		Servings int `json:"servings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Servings <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "servings must be positive"})
		return
	}

	existing, err := h.planStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get plan entry"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan entry not found"})
		return
	}

	if err := h.planStore.UpdateServings(id, req.Servings); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update plan entry"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("plan", "updated", id, nil))
	entry, _ := h.planStore.GetByID(id)
	writeJSON(w, http.StatusOK, entry)
}

func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.planStore.Delete(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete plan entry"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("plan", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// Cost prices a single scheduled entry, scaled to its servings. Restaurant
// entries cost zero; eating out is tracked by what was actually spent.
func (h *PlanHandler) Cost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	entry, err := h.planStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get plan entry"})
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan entry not found"})
		return
	}

	snap, err := h.snapshotStore.Load()
	if err != nil {
		h.logger.Error("load snapshot", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load data"})
		return
	}

	calc := costing.NewCalculator(snap, h.logger)
	writeJSON(w, http.StatusOK, map[string]int64{
		"plan_entry_id": id,
		"cost_cents":    calc.PlannedCost(*entry),
	})
}

// RangeCost sums the estimated cost of every entry in a date range, the
// number behind "what will this week cost us".
func (h *PlanHandler) RangeCost(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "dates must be YYYY-MM-DD"})
		return
	}

	entries, err := h.planStore.ListRange(from, to)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list plan entries"})
		return
	}

	snap, err := h.snapshotStore.Load()
	if err != nil {
		h.logger.Error("load snapshot", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load data"})
		return
	}

	calc := costing.NewCalculator(snap, h.logger)
	var total int64
	for _, entry := range entries {
		total += calc.PlannedCost(entry)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"from":       from.Format("2006-01-02"),
		"to":         to.Format("2006-01-02"),
		"entries":    len(entries),
		"cost_cents": total,
	})
}
