package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/export"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	"github.com/MrJamesThe3rd/tally/internal/http/auth"
	budgetHandler "github.com/MrJamesThe3rd/tally/internal/http/budget"
	exportHandler "github.com/MrJamesThe3rd/tally/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	reportHandler "github.com/MrJamesThe3rd/tally/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/ledger/store"
	"github.com/MrJamesThe3rd/tally/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)

	budget, err := cfg.DefaultBudgetAmount()
	if err != nil {
		slog.Error("invalid default budget", "error", err)
		os.Exit(1)
	}

	st := store.New(cfg.Data.File,
		store.WithLogger(logger),
		store.WithDefaultBudget(ledger.NewAmount(budget)),
		store.WithAdmin(ledger.User{
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
			Role:     ledger.RoleAdministrator,
		}),
	)
	st.Load()

	var (
		ledgerService = ledger.NewService(st)
		exportService = export.NewService(ledgerService)
	)

	var (
		authH        = auth.NewHandler(ledgerService, auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TTL))
		transactionH = txHandler.NewHandler(ledgerService)
		budgetH      = budgetHandler.NewHandler(ledgerService)
		reportH      = reportHandler.NewHandler(ledgerService)
		importH      = importHandler.NewHandler(importer.NewParser(), ledgerService)
		exportH      = exportHandler.NewHandler(exportService)
	)

	router := tallyHttp.New(
		tallyHttp.Options{CORSOrigins: cfg.Server.CORSOrigins, Timeout: cfg.Server.Timeout},
		authH, transactionH, budgetH, reportH, importH, exportH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port, "data_file", st.Path())

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
