package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/diddle/cliparse"
	"github.com/danielhkuo/diddle/db"
	"github.com/danielhkuo/diddle/mailer"
	"github.com/danielhkuo/diddle/middleware"
	"github.com/danielhkuo/diddle/router"
	"github.com/danielhkuo/diddle/store"
)

func main() {
	var err error

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Apply pending migrations
	applied, err := db.Migrate(dbConn)
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "migrations_applied", applied)

	st := store.NewStore(dbConn)
	m := mailer.NewMailer(cfg.Email, cfg.BaseURL, st)
	if m.Enabled() {
		slog.Info("SMTP email client enabled", "host", cfg.Email.Host)
	} else {
		slog.Info("SMTP email client not enabled")
	}

	// Create router
	mux := router.NewRouter(st, cfg, m)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
