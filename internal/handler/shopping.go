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

type ShoppingHandler struct {
	shoppingStore *store.ShoppingStore
	planStore     *store.PlanStore
	pantryStore   *store.PantryStore
	snapshotStore *store.SnapshotStore
	hub           *ws.Hub
	logger        *slog.Logger
}

func NewShoppingHandler(ss *store.ShoppingStore, ps *store.PlanStore, pan *store.PantryStore, snap *store.SnapshotStore, hub *ws.Hub, logger *slog.Logger) *ShoppingHandler {
	return &ShoppingHandler{
		shoppingStore: ss,
		planStore:     ps,
		pantryStore:   pan,
		snapshotStore: snap,
		hub:           hub,
		logger:        logger,
	}
}

func (h *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.shoppingStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list shopping items"})
		return
	}
	if items == nil {
		items = []model.ShoppingItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type shoppingItemRequest struct {
	IngredientID *int64  `json:"ingredient_id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	UnitID       *int64  `json:"unit_id"`
}

// Create adds a manual line item, for things like "birthday candles" that
// are not tracked ingredients.
func (h *ShoppingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req shoppingItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	item, err := h.shoppingStore.Create(req.IngredientID, req.Name, req.Amount, req.UnitID, 0)
	if err != nil {
		h.logger.Error("create shopping item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create item"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("shopping", "created", item.ID, nil))
	writeJSON(w, http.StatusCreated, item)
}

// Generate turns the plan for a date range into shopping-list items: the
// aggregated ingredient needs of every unconsumed entry, net of pantry
// stock, each priced at the cheapest known purchase option.
func (h *ShoppingHandler) Generate(w http.ResponseWriter, r *http.Request) {
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

	pantry, err := h.pantryStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list pantry"})
		return
	}

	snap, err := h.snapshotStore.Load()
	if err != nil {
		h.logger.Error("load snapshot", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load data"})
		return
	}

	suggestions := snap.SuggestShopping(entries, pantry, h.logger)

	items := make([]model.ShoppingItem, 0, len(suggestions))
	for _, sug := range suggestions {
		ingredientID := sug.IngredientID
		unitID := sug.Quantity.UnitID
		item, err := h.shoppingStore.Create(&ingredientID, sug.Name, sug.Quantity.Amount, &unitID, sug.EstimatedCents)
		if err != nil {
			h.logger.Error("create generated shopping item", "ingredient", sug.Name, "error", err)
			continue
		}
		items = append(items, *item)
	}

	h.hub.Broadcast(ws.NewMessage("shopping", "generated", 0, map[string]any{"count": len(items)}))
	writeJSON(w, http.StatusCreated, items)
}

// Check marks an item bought and records the paid price for the spending
// report.
func (h *ShoppingHandler) Check(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req struct {
		PaidCents int64 `json:"paid_cents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.PaidCents < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "paid_cents cannot be negative"})
		return
	}

	existing, err := h.shoppingStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get item"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	item, err := h.shoppingStore.Check(id, req.PaidCents)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check item"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("shopping", "updated", id, nil))
	writeJSON(w, http.StatusOK, item)
}

func (h *ShoppingHandler) Uncheck(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.shoppingStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get item"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	item, err := h.shoppingStore.Uncheck(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to uncheck item"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("shopping", "updated", id, nil))
	writeJSON(w, http.StatusOK, item)
}

func (h *ShoppingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.shoppingStore.Delete(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete item"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("shopping", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShoppingHandler) ClearChecked(w http.ResponseWriter, r *http.Request) {
	if err := h.shoppingStore.ClearChecked(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to clear checked items"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("shopping", "cleared", 0, nil))
	w.WriteHeader(http.StatusNoContent)
}

// Spending reports what was actually paid for items checked off in a date
// range.
func (h *ShoppingHandler) Spending(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "dates must be YYYY-MM-DD"})
		return
	}

	cents, err := h.shoppingStore.SpentBetween(from, to)
	if err != nil {
		h.logger.Error("sum spending", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to compute spending"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"from":        from.Format("2006-01-02"),
		"to":          to.Format("2006-01-02"),
		"spent_cents": cents,
	})
}
