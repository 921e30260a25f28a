package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jand19081/ladle/internal/backup"
	"github.com/jand19081/ladle/internal/handler"
	"github.com/jand19081/ladle/internal/middleware"
	"github.com/jand19081/ladle/internal/store"
	ws "github.com/jand19081/ladle/internal/websocket"
)

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	authH         *handler.AuthHandler
	unitH         *handler.UnitHandler
	ingredientH   *handler.IngredientHandler
	recipeH       *handler.RecipeHandler
	mealH         *handler.MealHandler
	planH         *handler.PlanHandler
	pantryH       *handler.PantryHandler
	shoppingH     *handler.ShoppingHandler
	settingsH     *handler.SettingsHandler
	sessionStore  *store.SessionStore
	rateLimiter   *middleware.RateLimiter
	backupManager *backup.Manager
	logger        *slog.Logger
}

func New(db *sql.DB, backupCfg backup.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	unitStore := store.NewUnitStore(db)
	ingredientStore := store.NewIngredientStore(db)
	recipeStore := store.NewRecipeStore(db)
	mealStore := store.NewMealStore(db)
	planStore := store.NewPlanStore(db)
	pantryStore := store.NewPantryStore(db)
	shoppingStore := store.NewShoppingStore(db)
	snapshotStore := store.NewSnapshotStore(db)
	settingsStore := store.NewSettingsStore(db)

	// Auth stores
	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)

	// Backup store + manager
	backupStore := store.NewBackupStore(db)
	backupMgr := backup.NewManager(backupCfg, db, backupStore, settingsStore, func(s backup.Status) {
		hub.Broadcast(ws.Message{
			Type:   "backup_status",
			Entity: "backup",
			Action: string(s.State),
			Extra: map[string]any{
				"in_progress": s.InProgress,
				"error":       s.Error,
			},
		})
	}, logger.With("component", "backup"))

	return &Server{
		db:            db,
		hub:           hub,
		authH:         handler.NewAuthHandler(userStore, sessionStore, logger.With("component", "auth")),
		unitH:         handler.NewUnitHandler(unitStore, hub, logger.With("component", "unit")),
		ingredientH:   handler.NewIngredientHandler(ingredientStore, hub, logger.With("component", "ingredient")),
		recipeH:       handler.NewRecipeHandler(recipeStore, snapshotStore, hub, logger.With("component", "recipe")),
		mealH:         handler.NewMealHandler(mealStore, snapshotStore, hub, logger.With("component", "meal")),
		planH:         handler.NewPlanHandler(planStore, snapshotStore, hub, logger.With("component", "plan")),
		pantryH:       handler.NewPantryHandler(pantryStore, hub, logger.With("component", "pantry")),
		shoppingH:     handler.NewShoppingHandler(shoppingStore, planStore, pantryStore, snapshotStore, hub, logger.With("component", "shopping")),
		settingsH:     handler.NewSettingsHandler(settingsStore, backupStore, backupMgr, hub, logger.With("component", "settings")),
		sessionStore:  sessionStore,
		rateLimiter:   middleware.NewRateLimiter(),
		backupManager: backupMgr,
		logger:        logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// BackupManager returns the backup manager.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/auth/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	// Apply request logging middleware
	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Auth routes that require authentication
	mux.HandleFunc("POST /api/auth/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/auth/me", s.authH.Me)

	// Unit API routes
	mux.HandleFunc("GET /api/units", s.unitH.List)
	mux.HandleFunc("POST /api/units", s.unitH.Create)
	mux.HandleFunc("DELETE /api/units/{id}", s.unitH.Delete)

	// Ingredient API routes
	mux.HandleFunc("GET /api/categories", s.ingredientH.ListCategories)
	mux.HandleFunc("GET /api/markets", s.ingredientH.ListMarkets)
	mux.HandleFunc("POST /api/markets", s.ingredientH.CreateMarket)
	mux.HandleFunc("GET /api/ingredients", s.ingredientH.List)
	mux.HandleFunc("POST /api/ingredients", s.ingredientH.Create)
	mux.HandleFunc("GET /api/ingredients/{id}", s.ingredientH.Get)
	mux.HandleFunc("PUT /api/ingredients/{id}", s.ingredientH.Update)
	mux.HandleFunc("DELETE /api/ingredients/{id}", s.ingredientH.Delete)

	// Purchase options and unit bridges, nested under their ingredient
	mux.HandleFunc("GET /api/ingredients/{ingredient_id}/options", s.ingredientH.ListOptions)
	mux.HandleFunc("POST /api/ingredients/{ingredient_id}/options", s.ingredientH.CreateOption)
	mux.HandleFunc("DELETE /api/options/{id}", s.ingredientH.DeleteOption)
	mux.HandleFunc("GET /api/ingredients/{ingredient_id}/bridges", s.ingredientH.ListBridges)
	mux.HandleFunc("POST /api/ingredients/{ingredient_id}/bridges", s.ingredientH.CreateBridge)
	mux.HandleFunc("DELETE /api/bridges/{id}", s.ingredientH.DeleteBridge)

	// Recipe API routes
	mux.HandleFunc("GET /api/recipes", s.recipeH.List)
	mux.HandleFunc("POST /api/recipes", s.recipeH.Create)
	mux.HandleFunc("GET /api/recipes/{id}", s.recipeH.Get)
	mux.HandleFunc("PUT /api/recipes/{id}", s.recipeH.Update)
	mux.HandleFunc("DELETE /api/recipes/{id}", s.recipeH.Delete)
	mux.HandleFunc("GET /api/recipes/{id}/requirements", s.recipeH.ListRequirements)
	mux.HandleFunc("POST /api/recipes/{id}/requirements", s.recipeH.AddRequirement)
	mux.HandleFunc("DELETE /api/requirements/{id}", s.recipeH.DeleteRequirement)
	mux.HandleFunc("GET /api/recipes/{id}/cost", s.recipeH.Cost)
	mux.HandleFunc("GET /api/recipes/{id}/warnings", s.recipeH.Warnings)

	// Meal API routes
	mux.HandleFunc("GET /api/meals", s.mealH.List)
	mux.HandleFunc("POST /api/meals", s.mealH.Create)
	mux.HandleFunc("GET /api/meals/{id}", s.mealH.Get)
	mux.HandleFunc("PUT /api/meals/{id}", s.mealH.Update)
	mux.HandleFunc("DELETE /api/meals/{id}", s.mealH.Delete)
	mux.HandleFunc("GET /api/meals/{id}/components", s.mealH.ListComponents)
	mux.HandleFunc("POST /api/meals/{id}/components", s.mealH.AddComponent)
	mux.HandleFunc("DELETE /api/components/{id}", s.mealH.DeleteComponent)
	mux.HandleFunc("GET /api/meals/{id}/cost", s.mealH.Cost)
	mux.HandleFunc("GET /api/meals/{id}/warnings", s.mealH.Warnings)

	// Plan API routes
	mux.HandleFunc("GET /api/plan", s.planH.List)
	mux.HandleFunc("POST /api/plan", s.planH.Create)
	mux.HandleFunc("GET /api/plan/cost", s.planH.RangeCost)
	mux.HandleFunc("GET /api/plan/{id}/cost", s.planH.Cost)
	mux.HandleFunc("POST /api/plan/{id}/consumed", s.planH.SetConsumed)
	mux.HandleFunc("PUT /api/plan/{id}/servings", s.planH.UpdateServings)
	mux.HandleFunc("DELETE /api/plan/{id}", s.planH.Delete)

	// Pantry API routes
	mux.HandleFunc("GET /api/pantry", s.pantryH.List)
	mux.HandleFunc("PUT /api/pantry/{ingredient_id}", s.pantryH.Set)
	mux.HandleFunc("DELETE /api/pantry/{ingredient_id}", s.pantryH.Delete)

	// Shopping list API routes
	mux.HandleFunc("GET /api/shopping", s.shoppingH.List)
	mux.HandleFunc("POST /api/shopping", s.shoppingH.Create)
	mux.HandleFunc("POST /api/shopping/generate", s.shoppingH.Generate)
	mux.HandleFunc("POST /api/shopping/clear-checked", s.shoppingH.ClearChecked)
	mux.HandleFunc("GET /api/shopping/spending", s.shoppingH.Spending)
	mux.HandleFunc("POST /api/shopping/{id}/check", s.shoppingH.Check)
	mux.HandleFunc("POST /api/shopping/{id}/uncheck", s.shoppingH.Uncheck)
	mux.HandleFunc("DELETE /api/shopping/{id}", s.shoppingH.Delete)

	// Settings + backup API routes
	mux.HandleFunc("GET /api/settings", s.settingsH.List)
	mux.HandleFunc("PUT /api/settings/{key}", s.settingsH.Set)
	mux.HandleFunc("GET /api/backups", s.settingsH.ListBackups)
	mux.HandleFunc("POST /api/backups", s.settingsH.BackupNow)
	mux.HandleFunc("GET /api/backups/status", s.settingsH.BackupStatus)
	mux.HandleFunc("POST /api/backups/{id}/restore", s.settingsH.RestoreBackup)
	mux.HandleFunc("GET /api/backups/{id}/download", s.settingsH.DownloadBackup)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
