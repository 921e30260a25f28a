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

type RecipeHandler struct {
	recipeStore   *store.RecipeStore
	snapshotStore *store.SnapshotStore
	hub           *ws.Hub
	logger        *slog.Logger
}

func NewRecipeHandler(rs *store.RecipeStore, snap *store.SnapshotStore, hub *ws.Hub, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{recipeStore: rs, snapshotStore: snap, hub: hub, logger: logger}
}

type recipeRequest struct {
	Name         string `json:"name"`
	Servings     int    `json:"servings"`
	Instructions string `json:"instructions"`
}

func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipeStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list recipes"})
		return
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	recipe, err := h.recipeStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get recipe"})
		return
	}
	if recipe == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.Servings < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "servings cannot be negative"})
		return
	}

	recipe, err := h.recipeStore.Create(req.Name, req.Servings, req.Instructions)
	if err != nil {
		h.logger.Error("create recipe", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create recipe"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("recipe", "created", recipe.ID, nil))
	writeJSON(w, http.StatusCreated, recipe)
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.recipeStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get recipe"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
		return
	}

	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	recipe, err := h.recipeStore.Update(id, req.Name, req.Servings, req.Instructions)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update recipe"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("recipe", "updated", id, nil))
	writeJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.recipeStore.Delete(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete recipe"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("recipe", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// --- Requirements ---

type requirementRequest struct {
	IngredientID *int64  `json:"ingredient_id"`
	SubRecipeID  *int64  `json:"sub_recipe_id"`
	Amount       float64 `json:"amount"`
	UnitID       int64   `json:"unit_id"`
	SortOrder    int     `json:"sort_order"`
}

func (h *RecipeHandler) ListRequirements(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	reqs, err := h.recipeStore.ListRequirements(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list requirements"})
		return
	}
	if reqs == nil {
		reqs = []model.Requirement{}
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *RecipeHandler) AddRequirement(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req requirementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	added, err := h.recipeStore.AddRequirement(id, model.Requirement{
		IngredientID: req.IngredientID,
		SubRecipeID:  req.SubRecipeID,
		Quantity:     model.Measure{Amount: req.Amount, UnitID: req.UnitID},
		SortOrder:    req.SortOrder,
	})
	if errors.Is(err, model.ErrRequirementTarget) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("add requirement", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add requirement"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("recipe", "updated", id, nil))
	writeJSON(w, http.StatusCreated, added)
}

func (h *RecipeHandler) DeleteRequirement(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.recipeStore.DeleteRequirement(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete requirement"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Costing ---

// Cost prices one batch of the recipe against current purchase data.
func (h *RecipeHandler) Cost(w http.ResponseWriter, r *http.Request) {
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
	if _, ok := snap.Recipes[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
		return
	}

	calc := costing.NewCalculator(snap, h.logger)
	writeJSON(w, http.StatusOK, map[string]int64{
		"recipe_id":  id,
		"cost_cents": calc.RecipeCost(id),
	})
}

// Warnings reports the data gaps that would make the recipe's cost estimate
// incomplete.
func (h *RecipeHandler) Warnings(w http.ResponseWriter, r *http.Request) {
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
	if _, ok := snap.Recipes[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
		return
	}

	warnings := snap.ValidateRecipe(id)
	if warnings == nil {
		warnings = []costing.Warning{}
	}
	writeJSON(w, http.StatusOK, warnings)
}
