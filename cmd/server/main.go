package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sightshare/reflections/internal/api"
	dbstore "github.com/sightshare/reflections/internal/db"
	"github.com/sightshare/reflections/internal/middleware"
	"github.com/sightshare/reflections/internal/services"
	"github.com/sightshare/reflections/internal/utils"
)

func main() {
	addr := utils.SafeEnv("SIGHTSHARE_ADDR", ":8080")
	commit := os.Getenv("SIGHTSHARE_COMMIT")
	buildTime := os.Getenv("SIGHTSHARE_BUILD_TIME")

	store, err := openStore()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	// Inference settings come from the environment; the bearer token is
	// never stored in source or in the database.
	assistant := services.NewAssistantService(services.AssistantConfig{
		Endpoint:      os.Getenv("SIGHTSHARE_INFERENCE_URL"),
		Model:         os.Getenv("SIGHTSHARE_CHAT_MODEL"),
		FallbackModel: os.Getenv("SIGHTSHARE_CHAT_FALLBACK_MODEL"),
		Token:         os.Getenv("SIGHTSHARE_HF_TOKEN"),
	}, nil)

	mux := http.NewServeMux()
	api.NewRouter(store, assistant).Register(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "Sightshare Reflections API",
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	// Serve the static frontend when bundled into the same image.
	if staticDir := os.Getenv("SIGHTSHARE_STATIC_DIR"); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	handler := middleware.NoStore(middleware.SecureHeaders(middleware.CORS(mux)))

	log.Printf("Sightshare reflections server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore picks SQLite persistence when a path is configured, otherwise a
// volatile in-memory store.
func openStore() (api.Store, error) {
	sqlitePath := os.Getenv("SIGHTSHARE_SQLITE_PATH")
	if sqlitePath == "" {
		log.Printf("SIGHTSHARE_SQLITE_PATH not set, reflections are kept in memory only")
		return api.NewMemoryStore(), nil
	}
	if err := MigrateIfNeeded(os.Getenv("SIGHTSHARE_SNAPSHOT_PATH"), sqlitePath); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	sqlDB, err := sql.Open("sqlite3", sqliteDSN(sqlitePath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := dbstore.RunMigrations(sqlDB); err != nil {
		return nil, err
	}
	return dbstore.NewStore(sqlDB)
}

func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(path))
}
