package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mkondo/kajiboard/internal/handler"
	"github.com/mkondo/kajiboard/internal/middleware"
	"github.com/mkondo/kajiboard/internal/runner"
	"github.com/mkondo/kajiboard/internal/store"
	"github.com/mkondo/kajiboard/internal/transfer"
	ws "github.com/mkondo/kajiboard/internal/websocket"
)

type Config struct {
	UploadDir string
}

type Server struct {
	db             *sql.DB
	hub            *ws.Hub
	authH          *handler.AuthHandler
	taskH          *handler.TaskHandler
	templateH      *handler.TemplateHandler
	rewardH        *handler.RewardHandler
	pointsH        *handler.PointsHandler
	menuH          *handler.MenuHandler
	mealSetH       *handler.MealSetHandler
	mealPlanH      *handler.MealPlanHandler
	settingsH      *handler.SettingsHandler
	transferH      *handler.TransferHandler
	uploadH        *handler.UploadHandler
	sessionStore   *store.SessionStore
	userStore      *store.UserStore
	householdStore *store.HouseholdStore
	rateLimiter    *middleware.RateLimiter
	uploadDir      string
	logger         *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger)

	userStore := store.NewUserStore(db)
	householdStore := store.NewHouseholdStore(db)
	sessionStore := store.NewSessionStore(db)
	taskStore := store.NewTaskStore(db)
	categoryStore := store.NewCategoryStore(db)
	templateStore := store.NewTemplateStore(db)
	recurringStore := store.NewRecurringStore(db)
	rewardStore := store.NewRewardStore(db)
	pointStore := store.NewPointStore(db)
	ingredientStore := store.NewIngredientStore(db)
	menuStore := store.NewMenuStore(db)
	mealSetStore := store.NewMealSetStore(db)
	mealPlanStore := store.NewMealPlanStore(db)

	taskRunner := runner.New(taskStore, templateStore, recurringStore, mealPlanStore, menuStore, mealSetStore, logger)
	transferMgr := transfer.NewManager(ingredientStore, menuStore, mealSetStore, categoryStore, templateStore, recurringStore, rewardStore, logger)

	renderer := handler.NewRenderer(logger)

	return &Server{
		db:             db,
		hub:            hub,
		authH:          handler.NewAuthHandler(userStore, householdStore, sessionStore, renderer, logger.With("component", "auth")),
		taskH:          handler.NewTaskHandler(taskStore, categoryStore, templateStore, userStore, pointStore, taskRunner, hub, renderer, logger.With("component", "task")),
		templateH:      handler.NewTemplateHandler(templateStore, recurringStore, taskRunner, renderer, logger.With("component", "template")),
		rewardH:        handler.NewRewardHandler(rewardStore, pointStore, userStore, hub, renderer, logger.With("component", "reward")),
		pointsH:        handler.NewPointsHandler(pointStore, userStore, householdStore, hub, renderer, logger.With("component", "points")),
		menuH:          handler.NewMenuHandler(menuStore, ingredientStore, mealSetStore, renderer, logger.With("component", "menu")),
		mealSetH:       handler.NewMealSetHandler(mealSetStore, renderer, logger.With("component", "meal_set")),
		mealPlanH:      handler.NewMealPlanHandler(mealPlanStore, menuStore, mealSetStore, taskRunner, renderer, logger.With("component", "meal_plan")),
		settingsH:      handler.NewSettingsHandler(userStore, householdStore, sessionStore, renderer, logger.With("component", "settings")),
		transferH:      handler.NewTransferHandler(transferMgr, renderer, logger.With("component", "transfer")),
		uploadH:        handler.NewUploadHandler(taskStore, cfg.UploadDir, logger.With("component", "upload")),
		sessionStore:   sessionStore,
		userStore:      userStore,
		householdStore: householdStore,
		rateLimiter:    middleware.NewRateLimiter(),
		uploadDir:      cfg.UploadDir,
		logger:         logger,
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

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("GET /login", s.authH.LoginPage)
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /register", s.authH.RegisterPage)
	outerMux.HandleFunc("POST /register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("GET /join", s.authH.JoinPage)
	outerMux.HandleFunc("POST /join", s.rateLimitedHandler(s.authH.Join))
	outerMux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.userStore, s.householdStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

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
	mux.HandleFunc("POST /logout", s.authH.Logout)

	// Task board
	mux.HandleFunc("GET /", s.taskH.Dashboard)
	mux.HandleFunc("GET /tasks/new", s.taskH.NewPage)
	mux.HandleFunc("POST /tasks", s.taskH.Create)
	mux.HandleFunc("GET /tasks/history", s.taskH.History)
	mux.HandleFunc("GET /tasks/order-sheet", s.taskH.OrderSheet)
	mux.HandleFunc("GET /tasks/{id}", s.taskH.Detail)
	mux.HandleFunc("GET /tasks/{id}/edit", s.taskH.EditPage)
	mux.HandleFunc("POST /tasks/{id}", s.taskH.Update)
	mux.HandleFunc("POST /tasks/{id}/action", s.taskH.Action)
	mux.HandleFunc("POST /tasks/{id}/delete", s.taskH.Delete)
	mux.HandleFunc("POST /tasks/{id}/image", s.uploadH.UploadTaskImage)

	// Task templates and recurring rules
	mux.HandleFunc("GET /templates", s.templateH.List)
	mux.HandleFunc("POST /templates", s.templateH.Create)
	mux.HandleFunc("GET /templates/{id}/edit", s.templateH.EditPage)
	mux.HandleFunc("POST /templates/{id}", s.templateH.Update)
	mux.HandleFunc("POST /templates/{id}/delete", s.templateH.Delete)
	mux.HandleFunc("POST /recurring", s.templateH.CreateRule)
	mux.HandleFunc("POST /recurring/{id}/toggle", s.templateH.ToggleRule)
	mux.HandleFunc("POST /recurring/{id}/delete", s.templateH.DeleteRule)
	mux.HandleFunc("POST /recurring/run", s.templateH.RunRules)

	// Rewards
	mux.HandleFunc("GET /rewards", s.rewardH.List)
	mux.Handle("POST /rewards", middleware.RequireAdmin(http.HandlerFunc(s.rewardH.Create)))
	mux.Handle("POST /rewards/{id}", middleware.RequireAdmin(http.HandlerFunc(s.rewardH.Update)))
	mux.Handle("POST /rewards/{id}/delete", middleware.RequireAdmin(http.HandlerFunc(s.rewardH.Delete)))
	mux.HandleFunc("POST /rewards/{id}/request", s.rewardH.Request)
	mux.Handle("POST /reward-uses/{id}/approve", middleware.RequireAdmin(http.HandlerFunc(s.rewardH.Approve)))
	mux.Handle("POST /reward-uses/{id}/reject", middleware.RequireAdmin(http.HandlerFunc(s.rewardH.Reject)))

	// Points
	mux.HandleFunc("GET /points", s.pointsH.Page)
	mux.Handle("POST /points/adjust", middleware.RequireAdmin(http.HandlerFunc(s.pointsH.Adjust)))

	// Menus and ingredients
	mux.HandleFunc("GET /menus", s.menuH.List)
	mux.HandleFunc("GET /menus/new", s.menuH.NewPage)
	mux.HandleFunc("POST /menus", s.menuH.Create)
	mux.HandleFunc("GET /menus/{id}/edit", s.menuH.EditPage)
	mux.HandleFunc("POST /menus/{id}", s.menuH.Update)
	mux.HandleFunc("POST /menus/{id}/delete", s.menuH.Delete)
	mux.HandleFunc("GET /ingredients", s.menuH.Ingredients)
	mux.HandleFunc("POST /ingredients", s.menuH.CreateIngredient)
	mux.HandleFunc("POST /ingredients/{id}/delete", s.menuH.DeleteIngredient)
	mux.HandleFunc("POST /unit-options", s.menuH.SaveUnitOption)

	// Meal sets and dish types
	mux.HandleFunc("GET /meal-sets", s.mealSetH.List)
	mux.HandleFunc("POST /meal-sets", s.mealSetH.Create)
	mux.HandleFunc("POST /meal-sets/{id}/requirements", s.mealSetH.UpdateRequirements)
	mux.HandleFunc("POST /meal-sets/{id}/delete", s.mealSetH.Delete)
	mux.HandleFunc("POST /dish-types", s.mealSetH.SaveDishType)

	// Meal plans
	mux.HandleFunc("GET /meal-plans", s.mealPlanH.List)
	mux.HandleFunc("POST /meal-plans", s.mealPlanH.Create)
	mux.HandleFunc("GET /meal-plans/{id}", s.mealPlanH.Detail)
	mux.HandleFunc("POST /meal-plans/{id}/delete", s.mealPlanH.Delete)
	mux.HandleFunc("GET /meal-plans/{id}/days/{day}", s.mealPlanH.DayEditPage)
	mux.HandleFunc("POST /meal-plans/{id}/days/{day}", s.mealPlanH.DayUpdate)
	mux.HandleFunc("POST /meal-plans/run-tasks", s.mealPlanH.RunTasks)

	// Settings
	mux.HandleFunc("GET /settings", s.settingsH.Page)
	mux.HandleFunc("POST /settings/profile", s.settingsH.UpdateProfile)
	mux.HandleFunc("POST /settings/password", s.settingsH.UpdatePassword)
	mux.HandleFunc("POST /settings/appearance", s.settingsH.UpdateAppearance)
	mux.Handle("POST /settings/household", middleware.RequireAdmin(http.HandlerFunc(s.settingsH.UpdateHousehold)))
	mux.Handle("POST /settings/join-code", middleware.RequireAdmin(http.HandlerFunc(s.settingsH.RegenerateJoinCode)))
	mux.Handle("POST /settings/members/{id}/delete", middleware.RequireAdmin(http.HandlerFunc(s.settingsH.RemoveMember)))

	// Export / import
	mux.HandleFunc("GET /transfer", s.transferH.Page)
	mux.HandleFunc("GET /export", s.transferH.Export)
	mux.Handle("POST /import", middleware.RequireAdmin(http.HandlerFunc(s.transferH.Import)))

	// Uploaded instruction images
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadDir))))

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))
}
