package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	clientapi "github.com/iudanet/shelfctl/internal/client/api"
	"github.com/iudanet/shelfctl/internal/client/auth"
	"github.com/iudanet/shelfctl/internal/client/books"
	"github.com/iudanet/shelfctl/internal/client/cli"
	"github.com/iudanet/shelfctl/internal/client/iocli"
	"github.com/iudanet/shelfctl/internal/client/loans"
	"github.com/iudanet/shelfctl/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const defaultServerURL = "http://localhost:8000/api"

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", defaultServer(), "API base URL")
	dbPath := flag.String("db", "shelfctl.db", "Path to local database")
	pageSize := flag.Int("page-size", 12, "Items per page for listings")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]
	ctx := context.Background()

	// Открываем BoltDB storage
	store, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Создаем API клиент
	apiClient := clientapi.NewClient(*serverURL, store)
	apiClient.SetClientID(ensureClientID(ctx, store))

	session := auth.NewSession(store, apiClient)
	apiClient.OnAuthExpired(func() {
		session.Expire()
		fmt.Fprintln(os.Stderr, "Session expired. Please run 'shelfctl login' again.")
	})

	authSvc := auth.NewService(apiClient, store, session)
	booksSvc := books.NewService(apiClient)
	loansSvc := loans.NewService(apiClient)

	app := cli.New(iocli.NewStdio(), session, authSvc, booksSvc, loansSvc, store, *pageSize)
	if err := app.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// defaultServer возвращает адрес сервера из окружения или по умолчанию
func defaultServer() string {
	if url := os.Getenv("SHELFCTL_SERVER"); url != "" {
		return url
	}
	return defaultServerURL
}

// ensureClientID возвращает сохраненный ID клиента или создает новый
func ensureClientID(ctx context.Context, store *boltdb.Storage) string {
	id, err := store.GetClientID(ctx)
	if err != nil {
		slog.Warn("failed to read client id", "error", err)
		return uuid.NewString()
	}
	if id != "" {
		return id
	}

	id = uuid.NewString()
	if err := store.SaveClientID(ctx, id); err != nil {
		slog.Warn("failed to save client id", "error", err)
	}
	return id
}

func printVersion() {
	fmt.Printf("shelfctl\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
