// Command api runs the catalog HTTP server. It wires the Postgres-backed
// store, the Redis category cache, the Cloudinary image store, and the
// observable feature handlers behind the gin router.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog/oteladapters"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog/postgresengine"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/createcategory"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/createproduct"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/removecategory"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/removeproduct"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/updatecategory"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/command/updateproduct"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/categorybyid"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/categorybytitle"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/listcategories"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/productbyid"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/features/query/searchproducts"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/httpapi"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/shared/shell"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/shared/shell/auth"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/shared/shell/categorycache"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/shared/shell/config"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/shared/shell/imagestore"
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/shared/shell/observable"
)

const (
	instrumentationName = "nordic-nest-api"
	shutdownTimeout     = 10 * time.Second
)

// observability bundles the collectors shared by all handler wrappers.
type observability struct {
	metrics shell.MetricsCollector
	tracing shell.TracingCollector
	logger  shell.ContextualLogger
}

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgxPool := mustConnectPostgres(ctx, cfg.PostgresDSN)
	defer pgxPool.Close()

	redisClient := mustConnectRedis(cfg.RedisURL)
	defer func() { _ = redisClient.Close() }()

	obs := observability{
		metrics: oteladapters.NewMetricsCollector(otel.Meter(instrumentationName)),
		tracing: oteladapters.NewTracingCollector(otel.Tracer(instrumentationName)),
		logger:  oteladapters.NewSlogBridgeLogger(instrumentationName),
	}

	store, err := postgresengine.NewCatalogStoreFromPGXPool(pgxPool,
		postgresengine.WithContextualLogger(obs.logger))
	if err != nil {
		log.Fatalf("Failed to create catalog store: %v", err)
	}

	categoryCache := categorycache.New(redisClient, cfg.CategoryTTL, obs.logger)
	authService := auth.NewService(store, cfg.JWTSecret, cfg.TokenTTL)

	deps := buildDeps(store, categoryCache, buildImageStore(cfg.CloudinaryURL), obs)
	deps.Login = authService
	deps.Tokens = authService
	deps.Ready = pgxPool.Ping

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	log.Printf("Catalog API listening on %s", cfg.HTTPAddr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down", sig)
	case err := <-errChan:
		log.Printf("HTTP server failed: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown did not complete cleanly: %v", err)
	}
}

func mustConnectPostgres(ctx context.Context, dsn string) *pgxpool.Pool {
	poolConfig, err := config.PostgresPGXPoolConfig(dsn)
	if err != nil {
		log.Fatalf("Invalid Postgres DSN: %v", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("Failed to create pgx pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}

	return pool
}

func mustConnectRedis(redisURL string) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Invalid Redis URL: %v", err)
	}

	return redis.NewClient(opts)
}

// buildImageStore returns nil when Cloudinary is not configured; product
// writes then reject image uploads instead of failing at startup.
func buildImageStore(cloudinaryURL string) *imagestore.Store {
	if cloudinaryURL == "" {
		log.Print("CLOUDINARY_URL not set, image uploads disabled")
		return nil
	}

	store, err := imagestore.NewFromURL(cloudinaryURL)
	if err != nil {
		log.Fatalf("Failed to create Cloudinary store: %v", err)
	}

	return store
}

func buildDeps(
	store postgresengine.CatalogStore,
	cache *categorycache.Cache,
	images *imagestore.Store,
	obs observability,
) httpapi.Deps {

	var createImages createproduct.ImageStore
	var updateImages updateproduct.ImageStore
	var removeImages removeproduct.ImageStore
	var categoryCreateImages createcategory.ImageStore
	var categoryUpdateImages updatecategory.ImageStore
	if images != nil {
		createImages = images
		updateImages = images
		removeImages = images
		categoryCreateImages = images
		categoryUpdateImages = images
	}

	return httpapi.Deps{
		SearchProducts:  wrapQuery(searchproducts.NewQueryHandler(store, cache), obs),
		ProductByID:     wrapQuery(productbyid.NewQueryHandler(store), obs),
		ListCategories:  wrapQuery(listcategories.NewQueryHandler(store), obs),
		CategoryByID:    wrapQuery(categorybyid.NewQueryHandler(store), obs),
		CategoryByTitle: wrapQuery(categorybytitle.NewQueryHandler(store), obs),

		CreateProduct:  wrapCommand(createproduct.NewCommandHandler(store, createImages), obs),
		UpdateProduct:  wrapCommand(updateproduct.NewCommandHandler(store, updateImages), obs),
		RemoveProduct:  wrapCommand(removeproduct.NewCommandHandler(store, removeImages), obs),
		CreateCategory: wrapCommand(createcategory.NewCommandHandler(store, categoryCreateImages), obs),
		UpdateCategory: wrapCommand(updatecategory.NewCommandHandler(store, cache, categoryUpdateImages), obs),
		RemoveCategory: wrapCommand(removecategory.NewCommandHandler(store, cache), obs),
	}
}

func wrapQuery[Q shell.Query, R any](handler shell.QueryHandler[Q, R], obs observability) shell.QueryHandler[Q, R] {
	wrapped, err := observable.NewQueryWrapper(handler,
		observable.WithQueryMetrics[Q, R](obs.metrics),
		observable.WithQueryTracing[Q, R](obs.tracing),
		observable.WithQueryContextualLogging[Q, R](obs.logger),
	)
	if err != nil {
		log.Fatalf("Failed to build query wrapper: %v", err)
	}

	return wrapped
}

func wrapCommand[C shell.Command, R any](handler shell.CommandHandler[C, R], obs observability) shell.CommandHandler[C, R] {
	wrapped, err := observable.NewCommandWrapper(handler,
		observable.WithCommandMetrics[C, R](obs.metrics),
		observable.WithCommandTracing[C, R](obs.tracing),
		observable.WithCommandContextualLogging[C, R](obs.logger),
	)
	if err != nil {
		log.Fatalf("Failed to build command wrapper: %v", err)
	}

	return wrapped
}
