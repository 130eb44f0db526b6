package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	api "github.com/quovadis/examdb/internal/api/http"
	"github.com/quovadis/examdb/internal/auth"
	"github.com/quovadis/examdb/internal/config"
	"github.com/quovadis/examdb/internal/db"
	"github.com/quovadis/examdb/internal/ingest"
	"github.com/quovadis/examdb/internal/question"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- Store ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var store question.Store
	if cfg.DBDriver == "memory" {
		store = question.NewInMemoryStore()
	} else {
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		store = question.NewSQLStore(dbh, cfg.DBDriver)
	}

	// --- Dataset ingest (only when the store is empty) ---
	if n, err := store.Count(ctx); err != nil {
		log.Fatalf("store count: %v", err)
	} else if n == 0 {
		if err := loadDataset(ctx, store, cfg.DataCSV); err != nil {
			log.Fatalf("load dataset %s: %v", cfg.DataCSV, err)
		}
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	// PDF export fetches one remote image per record; give long hit
	// lists room to finish.
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mount := func(gr chi.Router) {
		gr.Get("/questions", api.ListQuestionsHandler(store, cfg.SearchLimit))
		gr.Route("/export", func(er chi.Router) {
			er.Get("/csv", api.ExportCSVHandler(store))
			er.Get("/flashcards", api.ExportFlashcardsHandler(store))
			er.Get("/txt", api.ExportTextHandler(store))
			er.Get("/pdf", api.ExportPDFHandler(store, cfg.PDFFontPath))
		})
	}

	if cfg.EnableAuth {
		authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.AdminUser, cfg.AdminPassHash)
		r.Post("/auth/login", auth.LoginHandler(authSvc))
		r.Group(func(pr chi.Router) {
			pr.Use(auth.JWTMiddleware(authSvc))
			mount(pr)
		})
	} else {
		mount(r)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("examdb listening on %s (driver=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

func loadDataset(ctx context.Context, store question.Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("dataset %s not found; starting with an empty store", path)
			return nil
		}
		return err
	}
	defer f.Close()

	recs, err := ingest.LoadCSV(f)
	if err != nil {
		return err
	}
	if err := store.PutBatch(ctx, recs); err != nil {
		return err
	}
	log.Printf("loaded %d questions from %s", len(recs), path)
	return nil
}
