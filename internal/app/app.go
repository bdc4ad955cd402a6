package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/aidar/hackathon-teams/internal/config"
	"github.com/aidar/hackathon-teams/internal/domain"
	"github.com/aidar/hackathon-teams/internal/handler"
	"github.com/aidar/hackathon-teams/internal/middleware"
	"github.com/aidar/hackathon-teams/internal/repository/postgres"
	"github.com/aidar/hackathon-teams/internal/service"
	"github.com/aidar/hackathon-teams/internal/teamstate"
	"github.com/aidar/hackathon-teams/internal/web"
	"github.com/aidar/hackathon-teams/migrations"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config *config.Config
	db     *pgxpool.Pool
	server *http.Server
	logger *slog.Logger
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер (JSON формат)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	app := &App{
		config: cfg,
		logger: logger,
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Подключаемся к базе данных
	if err := a.connectDB(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if a.config.Database.Migrate {
		if err := a.migrate(); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully")
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// migrate применяет встроенные миграции через database/sql поверх пула
func (a *App) migrate() error {
	db := stdlib.OpenDBFromPool(a.db)
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		return err
	}

	a.logger.Info("Migrations applied")
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	// Инициализируем слой репозиториев (работа с БД)
	userRepo := postgres.NewUserRepository(a.db)
	teamRepo := postgres.NewTeamRepository(a.db)
	statsRepo := postgres.NewStatsRepository(a.db)

	// Инициализируем слой сервисов (бизнес-логика)
	userService := service.NewUserService(userRepo)
	teamService := service.NewTeamService(teamRepo, userRepo)
	statsService := service.NewStatsService(statsRepo)
	authService := service.NewAuthService(
		userRepo,
		a.config.JWT.Secret,
		a.config.JWT.GetSessionExpiration(),
		a.config.JWT.GetIDTokenExpiration(),
	)

	// Текущая команда участника для страниц хакатона
	teams := teamstate.NewStore()
	teams.OnUpdate(func(ctx context.Context, userID string, team domain.Team) {
		a.logger.Info("Current team updated", "user_id", userID, "team_id", team.ID)
	})

	// Инициализируем HTTP обработчики API
	authHandler := handler.NewAuthHandler(authService)
	teamHandler := handler.NewTeamHandler(teamService)
	statsHandler := handler.NewStatsHandler(statsService)

	// Страницы ходят в API команд по HTTP, как внешний клиент
	teamClient := web.NewTeamClient(a.config.ResolveBackendURL(), &http.Client{
		Timeout: a.config.Web.BackendTimeout,
	})
	workflow := web.NewWorkflow(authService, teamClient, teams, a.config.Web.NavigationDelay, a.logger)
	pages := web.NewHandler(
		authService,
		userService,
		workflow,
		teams,
		teamService,
		web.CookieConfig{Name: a.config.Web.SessionCookie, Secure: a.config.Web.CookieSecure},
		a.config.Web.AuthLookupTimeout,
		a.logger,
	)

	// Инициализируем middleware для проверки ID токенов
	authMiddleware := middleware.AuthMiddleware(authService)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Страницы хакатона (сессия в cookie)
	pages.Routes(r)

	r.Route("/api/v1", func(r chi.Router) {
		// Публичные эндпоинты (без авторизации)
		r.Post("/auth/login", authHandler.Login)

		// Защищенные эндпоинты (требуют ID токен в заголовке Authorization)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.Post("/team/create", teamHandler.CreateTeam)
			r.Get("/team/get", teamHandler.GetTeam)
			r.Get("/stats", statsHandler.GetStats)
		})
	})

	// Создаем HTTP сервер с настройками таймаутов
	addr := a.config.Server.Addr()
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr)
}

// Handler возвращает корневой HTTP обработчик (используется в тестах)
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
