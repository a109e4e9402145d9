// Command server runs the proof-service HTTP API: validation, prover9 proof
// search, mace4 model finding, axiom templates, proof history, and metrics.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"github.com/angrysky56/mcp-logic/internal/config"
	"github.com/angrysky56/mcp-logic/internal/metrics"
	"github.com/angrysky56/mcp-logic/internal/prover"
	"github.com/angrysky56/mcp-logic/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional; env overrides apply)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = initDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
	} else {
		log.Println("DATABASE_URL is not set; running without persistence or auth")
	}

	m := metrics.New()
	engine, err := prover.NewEngine(cfg.ProverConfig(), m)
	if err != nil {
		log.Fatal(err)
	}

	srv := web.NewServer(db, engine, m)
	httpSrv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: web.NewRouter(srv),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("HTTP server listening on %s", cfg.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

func initDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := web.NewStore(db).InitSchema(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
