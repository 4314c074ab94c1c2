package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/survey/api/internal/adapters/handler/http"
	repository "github.com/survey/api/internal/adapters/repository/postgres"
	"github.com/survey/api/internal/config"
	"github.com/survey/api/internal/core/services"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

type testApp struct {
	Server    *httptest.Server
	Client    *http.Client
	DB        *sql.DB
	container testcontainers.Container
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	ctx := context.Background()
	container, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)

	require.NoError(t, applyMigrations(db))

	cfg := config.Config{
		Environment:    "test",
		CORSOrigin:     "*",
		RequestTimeout: 30 * time.Second,
	}

	responseRepo := repository.NewResponseRepository(db)
	responseService := services.NewResponseService(responseRepo)
	healthService := services.NewHealthService(db)

	h := handler.NewHandler(cfg,
		handler.NewResponseHandler(responseService, false),
		handler.NewHealthHandler(healthService, cfg.Environment),
	)

	server := httptest.NewServer(h)

	return &testApp{
		Server:    server,
		Client:    server.Client(),
		DB:        db,
		container: container,
	}
}

func (a *testApp) Teardown(t *testing.T) {
	t.Helper()

	a.Server.Close()
	a.DB.Close()
	if err := a.container.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
