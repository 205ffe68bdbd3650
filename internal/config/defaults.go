// Package config provides configuration loading, defaults, and validation for
// the vidhaan engine.
package config

import "time"

const (
	DefaultServerPort = 8080
	DefaultServerMode = "debug"

	DefaultCorpusDocsPath    = "artifacts/docs.json"
	DefaultCorpusVectorsPath = "artifacts/vectors.json"
	DefaultCorpusStatutesDir = "artifacts/statutes"

	DefaultEmbeddingBaseURL = "http://localhost:11434"
	DefaultEmbeddingModel   = "nomic-embed-text"
	DefaultEmbeddingTimeout = 30 * time.Second

	DefaultGenerationBaseURL = "http://localhost:11434"
	DefaultGenerationModel   = "llama3"
	DefaultDraftTimeout      = 60 * time.Second
	DefaultRewriteTimeout    = 20 * time.Second

	DefaultRetrievalTopK   = 6
	DefaultCandidatePool   = 24
	DefaultDocTruncateSize = 3000

	DefaultMemoryBackend = "local"
	DefaultMemoryTurns   = 5
	DefaultMemoryTTL     = 30 * time.Minute

	DefaultRedisAddr = "localhost:6379"

	DefaultMilvusAddr       = "localhost:19530"
	DefaultMilvusCollection = "statute_sections"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsPath = "/metrics"
)

// ApplyDefaults fills every zero-value field in cfg with the engine default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.  It must be called
// after unmarshalling raw config data and before Validate().
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// Server
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	// Corpus
	if cfg.Corpus.DocsPath == "" {
		cfg.Corpus.DocsPath = DefaultCorpusDocsPath
	}
	if cfg.Corpus.VectorsPath == "" {
		cfg.Corpus.VectorsPath = DefaultCorpusVectorsPath
	}
	if cfg.Corpus.StatutesDir == "" {
		cfg.Corpus.StatutesDir = DefaultCorpusStatutesDir
	}

	// Embedding
	if cfg.Embedding.BaseURL == "" {
		cfg.Embedding.BaseURL = DefaultEmbeddingBaseURL
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = DefaultEmbeddingModel
	}
	if cfg.Embedding.Timeout == 0 {
		cfg.Embedding.Timeout = DefaultEmbeddingTimeout
	}

	// Generation
	if cfg.Generation.BaseURL == "" {
		cfg.Generation.BaseURL = DefaultGenerationBaseURL
	}
	if cfg.Generation.Model == "" {
		cfg.Generation.Model = DefaultGenerationModel
	}
	if cfg.Generation.DraftTimeout == 0 {
		cfg.Generation.DraftTimeout = DefaultDraftTimeout
	}
	if cfg.Generation.RewriteTimeout == 0 {
		cfg.Generation.RewriteTimeout = DefaultRewriteTimeout
	}

	// Retrieval
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = DefaultRetrievalTopK
	}
	if cfg.Retrieval.CandidatePool == 0 {
		cfg.Retrieval.CandidatePool = DefaultCandidatePool
	}
	if cfg.Retrieval.DocTruncateSize == 0 {
		cfg.Retrieval.DocTruncateSize = DefaultDocTruncateSize
	}

	// Memory
	if cfg.Memory.Backend == "" {
		cfg.Memory.Backend = DefaultMemoryBackend
	}
	if cfg.Memory.MaxTurns == 0 {
		cfg.Memory.MaxTurns = DefaultMemoryTurns
	}
	if cfg.Memory.TTL == 0 {
		cfg.Memory.TTL = DefaultMemoryTTL
	}

	// Redis
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "vidhaan:session:"
	}

	// Milvus
	if cfg.Milvus.Addr == "" {
		cfg.Milvus.Addr = DefaultMilvusAddr
	}
	if cfg.Milvus.Collection == "" {
		cfg.Milvus.Collection = DefaultMilvusCollection
	}

	// Log
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// Metrics
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}
