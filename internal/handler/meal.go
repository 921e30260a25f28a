package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jand19081/ladle/internal/costing"
	"github.com/jand19081/ladle/internal/model"
	"github.com/jand19081/ladle/internal/store"
	ws "github.com/jand19081/ladle/internal/websocket"
)

type MealHandler struct {
	mealStore     *store.MealStore
	snapshotStore *store.SnapshotStore
	hub           *ws.Hub
	logger        *slog.Logger
}

func NewMealHandler(ms *store.MealStore, snap *store.SnapshotStore, hub *ws.Hub, logger *slog.Logger) *MealHandler {
	return &MealHandler{mealStore: ms, snapshotStore: snap, hub: hub, logger: logger}
}

func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	meals, err := h.mealStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list meals"})
		return
	}
	if meals == nil {
		meals = []model.Meal{}
	}
	writeJSON(w, http.StatusOK, meals)
}

func (h *MealHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	meal, err := h.mealStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get meal"})
		return
	}
	if meal == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "meal not found"})
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	meal, err := h.mealStore.Create(req.Name)
	if err != nil {
		h.logger.Error("create meal", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create meal"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("meal", "created", meal.ID, nil))
	writeJSON(w, http.StatusCreated, meal)
}

func (h *MealHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.mealStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get meal"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "meal not found"})
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	meal, err := h.mealStore.Update(id, req.Name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update meal"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("meal", "updated", id, nil))
	writeJSON(w, http.StatusOK, meal)
}

func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.mealStore.Delete(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete meal"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("meal", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// --- Components ---

type componentRequest struct {
	RecipeID     *int64  `json:"recipe_id"`
	IngredientID *int64  `json:"ingredient_id"`
	Amount       float64 `json:"amount"`
	UnitID       int64   `json:"unit_id"`
}

func (h *MealHandler) ListComponents(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	comps, err := h.mealStore.ListComponents(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list components"})
		return
	}
	if comps == nil {
		comps = []model.MealComponent{}
	}
	writeJSON(w, http.StatusOK, comps)
}

func (h *MealHandler) AddComponent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req componentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	added, err := h.mealStore.AddComponent(id, model.MealComponent{
		RecipeID:     req.RecipeID,
		IngredientID: req.IngredientID,
		Quantity:     model.Measure{Amount: req.Amount, UnitID: req.UnitID},
	})
	if errors.Is(err, model.ErrComponentTarget) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("add component", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add component"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("meal", "updated", id, nil))
	writeJSON(w, http.StatusCreated, added)
}

func (h *MealHandler) DeleteComponent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.mealStore.DeleteComponent(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete component"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Costing ---

func (h *MealHandler) Cost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	snap, err := h.snapshotStore.Load()
	if err != nil {
		h.logger.Error("load snapshot", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load data"})
		return
	}
	if _, ok := snap.Meals[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "meal not found"})
		return
	}

	calc := costing.NewCalculator(snap, h.logger)
	writeJSON(w, http.StatusOK, map[string]int64{
		"meal_id":    id,
		"cost_cents": calc.MealCost(id),
	})
}

func (h *MealHandler) Warnings(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	snap, err := h.snapshotStore.Load()
	if err != nil {
		h.logger.Error("load snapshot", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load data"})
		return
	}
	if _, ok := snap.Meals[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "meal not found"})
		return
	}

	warnings := snap.ValidateMeal(id)
	if warnings == nil {
		warnings = []costing.Warning{}
	}
	writeJSON(w, http.StatusOK, warnings)
}
