package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shreyas-k-p/SCANV2-sub000/docs"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/coordinator"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/queue"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/ratelimiter"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/service"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/store/mongo"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config       config
	logger       *zap.SugaredLogger
	rateLimiter  ratelimiter.Limiter
	storage      *mongo.Storage
	broker       queue.Broker
	orderService *service.OrderService
	menuService  *service.MenuService
	tableService *service.TableService
	authService  *service.AuthService
	coordinator  *coordinator.Coordinator
	deviceWorker *worker.DeviceNotifyWorker
}

type config struct {
	addr        string
	env         string
	apiURL      string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
	auth        service.AuthConfig
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	anyStaff := app.requireRole()
	managers := app.requireRole(domain.RoleManager, domain.RoleSubManager)
	kitchenOrManagers := app.requireRole(domain.RoleKitchen, domain.RoleManager, domain.RoleSubManager)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Post("/auth/login", app.loginHandler)
		r.Post("/auth/logout", app.logoutHandler)
		r.Get("/auth/session", app.getSessionHandler)

		r.Post("/orders", app.placeOrderHandler)
		r.Get("/orders/{order_id}", app.getOrderHandler)
		r.With(anyStaff).Get("/orders", app.listOrdersHandler)
		r.With(anyStaff).Patch("/orders/{order_id}/status", app.updateOrderStatusHandler)
		r.With(anyStaff).Patch("/orders/{order_id}/waiter", app.assignWaiterHandler)
		r.With(anyStaff).Get("/orders/{order_id}/audit", app.getOrderAuditHandler)
		r.With(managers).Delete("/orders/{order_id}", app.removeOrderHandler)

		r.Get("/tables", app.listTablesHandler)
		r.With(managers).Post("/tables", app.createTableHandler)
		r.With(anyStaff).Patch("/tables/{table_number}/status", app.updateTableStatusHandler)
		r.With(managers).Delete("/tables/{table_number}", app.deleteTableHandler)

		r.Get("/menu", app.listMenuHandler)
		r.With(kitchenOrManagers).Post("/menu", app.createMenuItemHandler)
		r.With(kitchenOrManagers).Put("/menu/{item_id}", app.updateMenuItemHandler)
		r.With(kitchenOrManagers).Patch("/menu/{item_id}/availability", app.setMenuItemAvailabilityHandler)
		r.With(kitchenOrManagers).Delete("/menu/{item_id}", app.deleteMenuItemHandler)

		r.With(managers).Get("/staff", app.listStaffHandler)
		r.With(managers).Post("/staff", app.createStaffHandler)
		r.With(managers).Delete("/staff/{staff_id}", app.deleteStaffHandler)

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "SCANV2"
	docs.SwaggerInfo.Description = "QR table-ordering API"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// coordinator + workers
	if app.coordinator != nil {
		if err := app.coordinator.Start(); err != nil {
			return fmt.Errorf("failed to start coordinator: %w", err)
		}
	}
	if app.deviceWorker != nil {
		if err := app.deviceWorker.Start(); err != nil {
			return fmt.Errorf("failed to start device worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.deviceWorker != nil {
			app.deviceWorker.Stop()
		}
		if app.coordinator != nil {
			app.coordinator.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
