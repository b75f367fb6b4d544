package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/AnshRaj112/voice-journal/internal/config"
	"github.com/AnshRaj112/voice-journal/internal/database"
	"github.com/AnshRaj112/voice-journal/internal/handlers"
	"github.com/AnshRaj112/voice-journal/internal/middleware"
	"github.com/AnshRaj112/voice-journal/internal/routes"
	"github.com/AnshRaj112/voice-journal/internal/services"
	"github.com/AnshRaj112/voice-journal/pkg/utils"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %v", cfg.Timezone, err)
	}
	clock := services.Clock{Location: loc}

	key, err := encryptionKey(cfg)
	if err != nil {
		log.Fatal("Failed to configure encryption:", err)
	}

	kv, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal("Failed to open storage:", err)
	}
	defer closeStore()

	kv, err = wrapEncryption(kv, key)
	if err != nil {
		closeStore()
		log.Fatal("Failed to configure encryption:", err)
	}

	var audio services.AudioStore
	if cfg.HasCloudinary() {
		cld, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			log.Printf("⚠️  WARNING: failed to initialize Cloudinary: %v", err)
			log.Println("   Audio uploads will not be available")
		} else {
			audio = cld
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Audio uploads will not be available")
	}

	journal := services.NewJournalStore(kv, clock)
	profiles := services.NewProfileStore(kv, nil, clock)
	capture := services.NewCaptureService(journal, nil, audio)

	// Load in the background; routes answer 503 until each store is ready.
	loadCtx, stopLoading := context.WithCancel(context.Background())
	defer stopLoading()
	go loadWithRetry(loadCtx, "journal", journal.Load, func() {
		log.Printf("✅ Journal loaded (%d entries)", len(journal.Entries()))
	})
	go loadWithRetry(loadCtx, "profile", profiles.Load, func() {
		log.Printf("✅ Profile loaded (%s)", profiles.State())
	})

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP rate limiting)")
	}

	routes.SetupRoutes(r, handlers.New(journal, profiles, capture))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Voice journal backend running on :%s (storage: %s)", cfg.Port, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

// loadWithRetry calls load until it succeeds, backing off between attempts.
func loadWithRetry(ctx context.Context, name string, load func(context.Context) error, onReady func()) {
	backoff := 2 * time.Second
	for {
		attemptCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err := load(attemptCtx)
		cancel()
		if err == nil {
			onReady()
			return
		}
		log.Printf("⚠️  WARNING: %s failed to load, retrying in %s: %v", name, backoff, err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < time.Minute {
			backoff *= 2
		}
	}
}

// openStore connects the configured backend and returns it with its closer.
func openStore(cfg *config.Config) (database.KeyValueStore, func(), error) {
	noop := func() {}
	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Println("⚠️  WARNING: using in-memory storage; data is lost on restart")
		return database.NewMemoryStore(), noop, nil

	case config.BackendFile:
		s, err := database.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case config.BackendRedis:
		log.Printf("Connecting to Redis...")
		client, err := database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			return nil, noop, err
		}
		s := database.NewRedisStore(client)
		return s, func() {
			if err := s.Close(); err != nil {
				log.Printf("Error closing Redis: %v", err)
			}
		}, nil

	case config.BackendPostgres:
		log.Printf("Connecting to PostgreSQL...")
		db, err := database.ConnectPostgres(cfg.PostgresURI)
		if err != nil {
			return nil, noop, err
		}
		s := database.NewPostgresStore(db)
		return s, func() {
			if err := s.Close(); err != nil {
				log.Printf("Error closing PostgreSQL: %v", err)
			}
		}, nil

	case config.BackendMongo:
		log.Printf("Connecting to MongoDB...")
		client, db, err := database.ConnectMongo(cfg.MongoURI)
		if err != nil {
			return nil, noop, err
		}
		return database.NewMongoStore(db), func() {
			if err := database.DisconnectMongo(client); err != nil {
				log.Printf("Error disconnecting MongoDB: %v", err)
			}
		}, nil
	}
	return nil, noop, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
}

// encryptionKey derives the at-rest key from config. It returns nil when
// neither a key nor a passphrase is set.
func encryptionKey(cfg *config.Config) ([]byte, error) {
	switch {
	case cfg.EncryptionKey != "":
		return utils.ParseEncryptionKey(cfg.EncryptionKey)
	case cfg.EncryptionPassphrase != "":
		return utils.KeyFromPassphrase(cfg.EncryptionPassphrase, cfg.EncryptionSalt)
	}
	return nil, nil
}

// wrapEncryption encrypts stored values at rest when key is set.
func wrapEncryption(kv database.KeyValueStore, key []byte) (database.KeyValueStore, error) {
	if key == nil {
		log.Println("⚠️  WARNING: ENCRYPTION_KEY not set. Journal data is stored unencrypted.")
		log.Println("   To generate a key, run: openssl rand -base64 32")
		return kv, nil
	}

	enc, err := database.NewEncryptedStore(kv, key)
	if err != nil {
		return nil, err
	}
	log.Println("✅ Encryption at rest enabled")
	return enc, nil
}
