// Package app assembles the full engine from configuration: corpus, registry,
// vectorizer, index, services, and the HTTP server.  It is shared by the
// apiserver binary and the serve CLI command.
package app

import (
	"context"
	"fmt"

	"github.com/swarakshak/vidhaan/internal/application/ask"
	"github.com/swarakshak/vidhaan/internal/application/clause"
	"github.com/swarakshak/vidhaan/internal/config"
	"github.com/swarakshak/vidhaan/internal/domain/corpus"
	"github.com/swarakshak/vidhaan/internal/domain/statute"
	redisdb "github.com/swarakshak/vidhaan/internal/infrastructure/database/redis"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/prometheus"
	"github.com/swarakshak/vidhaan/internal/infrastructure/search/milvus"
	"github.com/swarakshak/vidhaan/internal/intelligence/textgen"
	httpserver "github.com/swarakshak/vidhaan/internal/interfaces/http"
	"github.com/swarakshak/vidhaan/internal/interfaces/http/handlers"
	"github.com/swarakshak/vidhaan/internal/memory"
	"github.com/swarakshak/vidhaan/internal/retrieval"
)

// App holds the assembled components and their shutdown handles.
type App struct {
	Config *config.Config
	Log    logging.Logger

	Corpus *corpus.Corpus
	Ask    *ask.SessionService
	Clause *clause.Pipeline

	Collector prometheus.MetricsCollector
	Metrics   *prometheus.AppMetrics

	Server *httpserver.Server

	redis  *redisdb.Client
	milvus *milvus.Client
}

// New builds the application from configuration.  It fails fast: a corpus or
// registry that cannot be loaded prevents startup.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	a := &App{Config: cfg, Log: log}

	c, err := corpus.Load(cfg.Corpus.DocsPath, cfg.Corpus.VectorsPath)
	if err != nil {
		return nil, err
	}
	a.Corpus = c
	log.Info("corpus loaded",
		logging.Int("documents", c.Len()),
		logging.Bool("vectors", c.HasVectors()),
	)

	registry, err := statute.LoadDir(cfg.Corpus.StatutesDir)
	if err != nil {
		return nil, err
	}

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "vidhaan",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, log)
	if err != nil {
		return nil, err
	}
	a.Collector = collector
	a.Metrics = prometheus.NewAppMetrics(collector)

	vectorizer, index, err := a.buildRetrievalBackend(ctx, c)
	if err != nil {
		a.Close()
		return nil, err
	}

	filter := retrieval.NewCitationFilter(registry, c)
	filter.SetLimits(cfg.Retrieval.TopK, cfg.Retrieval.DocTruncateSize)
	engine := retrieval.NewEngine(c,
		retrieval.NewRanker(vectorizer, index),
		filter,
		cfg.Retrieval.CandidatePool,
		log.Named("retrieval"),
	)

	var rewriteGen textgen.Generator
	if cfg.Generation.RewriteEnabled {
		rewriteGen = textgen.NewObservedGenerator(textgen.NewClient(textgen.Config{
			BaseURL: cfg.Generation.BaseURL,
			Model:   cfg.Generation.Model,
			Timeout: cfg.Generation.RewriteTimeout,
		}), textgen.OpRewrite, a.Metrics)
	}
	rewriter := textgen.NewRewriter(rewriteGen, cfg.Generation.RewriteTimeout)

	embedder := textgen.NewObservedVectorizer(textgen.NewEmbedClient(textgen.Config{
		BaseURL: cfg.Embedding.BaseURL,
		Model:   cfg.Embedding.Model,
		Timeout: cfg.Embedding.Timeout,
	}, cfg.Embedding.Dimension), a.Metrics)

	core := ask.NewService(engine, rewriter, embedder, log.Named("ask"))

	store, err := a.buildMemoryStore()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Ask = ask.NewSessionService(core, store, log.Named("session"))
	a.Ask.SetStoreObserver(a.Metrics, memoryBackendName(cfg))

	drafter := textgen.NewObservedGenerator(textgen.NewClient(textgen.Config{
		BaseURL: cfg.Generation.BaseURL,
		Model:   cfg.Generation.Model,
		Timeout: cfg.Generation.DraftTimeout,
	}), textgen.OpDraft, a.Metrics)
	a.Clause = clause.NewPipeline(drafter, core, log.Named("clause"))

	router := httpserver.NewRouter(httpserver.RouterConfig{
		AskHandler:       handlers.NewAskHandler(a.Ask, a.Metrics, log),
		ClauseHandler:    handlers.NewClauseHandler(a.Clause, a.Metrics, log),
		HealthHandler:    handlers.NewHealthHandler(a.healthChecks(), log),
		Logger:           log.Named("http"),
		Metrics:          a.Metrics,
		MetricsCollector: collectorIfEnabled(cfg, collector),
		Mode:             cfg.Server.Mode,
	})
	a.Server = httpserver.NewServer(cfg.Server, router, log)

	return a, nil
}

// buildRetrievalBackend picks the vector backend.  With Milvus enabled the
// corpus vectors are synced into the external collection and queries are
// embedded remotely; otherwise ranking runs against the in-process exact
// index, falling back to a TF-IDF space when no embedding vectors shipped
// with the corpus.
func (a *App) buildRetrievalBackend(ctx context.Context, c *corpus.Corpus) (retrieval.Vectorizer, retrieval.Index, error) {
	cfg := a.Config

	if cfg.Milvus.Enabled {
		mc, err := milvus.NewClient(milvus.Config{
			Address:    cfg.Milvus.Addr,
			DBName:     cfg.Milvus.DBName,
			Collection: cfg.Milvus.Collection,
			Dimension:  cfg.Milvus.EmbeddingDim,
		}, a.Log.Named("milvus"))
		if err != nil {
			return nil, nil, err
		}
		a.milvus = mc

		idx := milvus.NewIndex(mc, a.Log.Named("milvus"))
		if err := idx.EnsureCollection(ctx); err != nil {
			return nil, nil, err
		}
		if c.HasVectors() {
			if err := idx.Sync(ctx, c); err != nil {
				return nil, nil, err
			}
		}
		embedder := textgen.NewObservedVectorizer(textgen.NewEmbedClient(textgen.Config{
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
			Timeout: cfg.Embedding.Timeout,
		}, cfg.Embedding.Dimension), a.Metrics)
		return embedder, idx, nil
	}

	if c.HasVectors() {
		idx, err := retrieval.NewExactIndex(c)
		if err != nil {
			return nil, nil, err
		}
		embedder := textgen.NewObservedVectorizer(textgen.NewEmbedClient(textgen.Config{
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
			Timeout: cfg.Embedding.Timeout,
		}, cfg.Embedding.Dimension), a.Metrics)
		return embedder, idx, nil
	}

	// No shipped vectors: embed the corpus in TF-IDF space so the engine
	// still works without any external service.
	a.Log.Warn("corpus has no embedding vectors, using tf-idf retrieval")
	texts := make([]string, c.Len())
	docs := make([]corpus.Document, c.Len())
	for i := 0; i < c.Len(); i++ {
		d, _ := c.Document(i)
		docs[i] = d
		texts[i] = d.Text
	}
	vec := retrieval.FitTFIDF(texts)
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = vec.Transform(text)
	}
	fitted, err := corpus.New(docs, vectors)
	if err != nil {
		return nil, nil, err
	}
	a.Corpus = fitted
	idx, err := retrieval.NewExactIndex(fitted)
	if err != nil {
		return nil, nil, err
	}
	return vec, idx, nil
}

func (a *App) buildMemoryStore() (memory.Store, error) {
	cfg := a.Config
	switch cfg.Memory.Backend {
	case "redis":
		rc, err := redisdb.NewClient(cfg.Redis, a.Log.Named("redis"))
		if err != nil {
			return nil, err
		}
		a.redis = rc
		return memory.NewRedisStore(rc.Universal(), cfg.Redis.KeyPrefix, cfg.Memory.MaxTurns, cfg.Memory.TTL), nil
	default:
		return memory.NewLocalStore(cfg.Memory.MaxTurns), nil
	}
}

func (a *App) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"corpus": func(context.Context) error {
			if a.Corpus == nil || a.Corpus.Len() == 0 {
				return fmt.Errorf("corpus is empty")
			}
			return nil
		},
	}
	if a.redis != nil {
		checks["redis"] = a.redis.Ping
	}
	if a.milvus != nil {
		checks["milvus"] = a.milvus.CheckHealth
	}
	return checks
}

func memoryBackendName(cfg *config.Config) string {
	if cfg.Memory.Backend == "redis" {
		return "redis"
	}
	return "local"
}

func collectorIfEnabled(cfg *config.Config, collector prometheus.MetricsCollector) prometheus.MetricsCollector {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return collector
}

// Close releases infrastructure connections.  The HTTP server is shut down
// separately by the caller.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Log.Warn("redis close failed", logging.Err(err))
		}
	}
	if a.milvus != nil {
		a.milvus.Close()
	}
}
