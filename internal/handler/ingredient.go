package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jand19081/ladle/internal/ingredient"
	"github.com/jand19081/ladle/internal/model"
	"github.com/jand19081/ladle/internal/store"
	ws "github.com/jand19081/ladle/internal/websocket"
)

type IngredientHandler struct {
	ingredientStore *store.IngredientStore
	hub             *ws.Hub
	logger          *slog.Logger
}

func NewIngredientHandler(is *store.IngredientStore, hub *ws.Hub, logger *slog.Logger) *IngredientHandler {
	return &IngredientHandler{ingredientStore: is, hub: hub, logger: logger}
}

func (h *IngredientHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.ingredientStore.ListCategories()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list categories"})
		return
	}
	if categories == nil {
		categories = []model.IngredientCategory{}
	}
	writeJSON(w, http.StatusOK, categories)
}

type ingredientRequest struct {
	Name       string `json:"name"`
	CategoryID *int64 `json:"category_id"`
}

func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.ingredientStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list ingredients"})
		return
	}
	if ingredients == nil {
		ingredients = []model.Ingredient{}
	}
	writeJSON(w, http.StatusOK, ingredients)
}

func (h *IngredientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	ing, err := h.ingredientStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get ingredient"})
		return
	}
	if ing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "ingredient not found"})
		return
	}
	writeJSON(w, http.StatusOK, ing)
}

func (h *IngredientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ingredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	// Auto-categorize if no category provided
	if req.CategoryID == nil {
		if cat, err := h.ingredientStore.GetCategoryByName(ingredient.Categorize(req.Name)); err == nil && cat != nil {
			req.CategoryID = &cat.ID
		}
	}

	ing, err := h.ingredientStore.Create(req.Name, req.CategoryID)
	if err != nil {
		h.logger.Error("create ingredient", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create ingredient"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("ingredient", "created", ing.ID, nil))
	writeJSON(w, http.StatusCreated, ing)
}

func (h *IngredientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.ingredientStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get ingredient"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "ingredient not found"})
		return
	}

	var req ingredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	ing, err := h.ingredientStore.Update(id, req.Name, req.CategoryID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update ingredient"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("ingredient", "updated", id, nil))
	writeJSON(w, http.StatusOK, ing)
}

func (h *IngredientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.ingredientStore.Delete(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete ingredient"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("ingredient", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// --- Markets ---

func (h *IngredientHandler) ListMarkets(w http.ResponseWriter, r *http.Request) {
	markets, err := h.ingredientStore.ListMarkets()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list markets"})
		return
	}
	if markets == nil {
		markets = []model.Market{}
	}
	writeJSON(w, http.StatusOK, markets)
}

func (h *IngredientHandler) CreateMarket(w http.ResponseWriter, r *http.Request) {
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

	market, err := h.ingredientStore.CreateMarket(req.Name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create market"})
		return
	}
	writeJSON(w, http.StatusCreated, market)
}

// --- Purchase options ---

type optionRequest struct {
	MarketID   *int64  `json:"market_id"`
	PriceCents int64   `json:"price_cents"`
	Amount     float64 `json:"amount"`
	UnitID     int64   `json:"unit_id"`
}

func (h *IngredientHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	ingredientID, err := strconv.ParseInt(r.PathValue("ingredient_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ingredient_id"})
		return
	}

	options, err := h.ingredientStore.ListOptions(ingredientID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list options"})
		return
	}
	if options == nil {
		options = []model.PurchaseOption{}
	}
	writeJSON(w, http.StatusOK, options)
}

func (h *IngredientHandler) CreateOption(w http.ResponseWriter, r *http.Request) {
	ingredientID, err := strconv.ParseInt(r.PathValue("ingredient_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ingredient_id"})
		return
	}

	var req optionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.PriceCents < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price_cents cannot be negative"})
		return
	}
	if req.Amount <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount must be positive"})
		return
	}

	opt, err := h.ingredientStore.CreateOption(ingredientID, req.MarketID, req.PriceCents, req.Amount, req.UnitID)
	if err != nil {
		h.logger.Error("create option", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create option"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("ingredient", "updated", ingredientID, nil))
	writeJSON(w, http.StatusCreated, opt)
}

func (h *IngredientHandler) DeleteOption(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.ingredientStore.DeleteOption(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete option"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Bridges ---

type bridgeRequest struct {
	FromAmount float64 `json:"from_amount"`
	FromUnitID int64   `json:"from_unit_id"`
	ToAmount   float64 `json:"to_amount"`
	ToUnitID   int64   `json:"to_unit_id"`
}

func (h *IngredientHandler) ListBridges(w http.ResponseWriter, r *http.Request) {
	ingredientID, err := strconv.ParseInt(r.PathValue("ingredient_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ingredient_id"})
		return
	}

	bridges, err := h.ingredientStore.ListBridges(ingredientID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list bridges"})
		return
	}
	if bridges == nil {
		bridges = []model.Bridge{}
	}
	writeJSON(w, http.StatusOK, bridges)
}

func (h *IngredientHandler) CreateBridge(w http.ResponseWriter, r *http.Request) {
	ingredientID, err := strconv.ParseInt(r.PathValue("ingredient_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ingredient_id"})
		return
	}

	var req bridgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.FromAmount <= 0 || req.ToAmount <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bridge amounts must be positive"})
		return
	}

	bridge, err := h.ingredientStore.CreateBridge(ingredientID, req.FromAmount, req.FromUnitID, req.ToAmount, req.ToUnitID)
	if err != nil {
		h.logger.Error("create bridge", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create bridge"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("ingredient", "updated", ingredientID, nil))
	writeJSON(w, http.StatusCreated, bridge)
}

func (h *IngredientHandler) DeleteBridge(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.ingredientStore.DeleteBridge(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete bridge"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
