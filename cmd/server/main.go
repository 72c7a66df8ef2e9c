package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"caribpay/internal/db"
	"caribpay/internal/domain/payroll"
	"caribpay/internal/platform/config"
	"caribpay/internal/ratestore"
	authhandler "caribpay/internal/transport/http/handlers/auth"
	payrollhandler "caribpay/internal/transport/http/handlers/payroll"
	"caribpay/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	var pool *pgxpool.Pool
	var tableSource payroll.TableSource
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db connect failed: %v", err)
		}
		defer pool.Close()

		if err := ratestore.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("schema setup failed: %v", err)
		}
		tableSource = ratestore.New(pool, payroll.JurisdictionCuracao, cfg.TaxTableYear)
	} else {
		tableSource = payroll.CSVTableSource{Path: cfg.TaxTablePath}
	}

	engine := payroll.NewEngine(
		payroll.NewCuracao(payroll.FixedCuracaoRates(payroll.CuracaoRates2026()), payroll.NewTableProvider(tableSource)),
		payroll.NewStMaarten(payroll.FixedStMaartenRates(payroll.StMaartenRates2026())),
		payroll.NewAruba(payroll.FixedBracketRates(payroll.ArubaRates2026())),
		payroll.NewBonaire(payroll.FixedBracketRates(payroll.BonaireRates2026())),
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.RequestSize(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if pool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := pool.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthEnabled() {
			authHandler := authhandler.NewHandler(cfg.JWTSecret, cfg.APIClientID, cfg.APIClientSecretHash, cfg.TokenTTL)
			authHandler.RegisterRoutes(r)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))
			payrollHandler := payrollhandler.NewHandler(engine, cfg.PayslipDir)
			payrollHandler.RegisterRoutes(r)
		})
	})

	log.Printf("payroll server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
