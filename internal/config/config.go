// Package config defines all configuration structures for the vidhaan legal
// question-answering engine.  No I/O or parsing logic lives here, only plain
// data types and validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CorpusConfig locates the statutory corpus artifacts on disk.
// DocsPath points at the JSON document list; VectorsPath at the matching
// embedding matrix.  Both must describe the same number of entries.
type CorpusConfig struct {
	DocsPath    string `mapstructure:"docs_path"`
	VectorsPath string `mapstructure:"vectors_path"`
	StatutesDir string `mapstructure:"statutes_dir"`
}

// EmbeddingConfig holds parameters for the external embedding service.
type EmbeddingConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	Dimension int           `mapstructure:"dimension"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// GenerationConfig holds parameters for the text-generation service used for
// drafting analysis prose and rewriting queries.  Verdicts never depend on
// generated text; a generation failure degrades to template output.
type GenerationConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	DraftTimeout   time.Duration `mapstructure:"draft_timeout"`
	RewriteTimeout time.Duration `mapstructure:"rewrite_timeout"`
	RewriteEnabled bool          `mapstructure:"rewrite_enabled"`
}

// RetrievalConfig holds ranking and filtering tunables.
type RetrievalConfig struct {
	TopK            int `mapstructure:"top_k"`
	CandidatePool   int `mapstructure:"candidate_pool"`
	DocTruncateSize int `mapstructure:"doc_truncate_size"`
}

// MemoryConfig holds session-memory parameters.
// Backend selects the store implementation: "local" keeps turns in-process,
// "redis" shares them across replicas.
type MemoryConfig struct {
	Backend  string        `mapstructure:"backend"` // "local" | "redis"
	MaxTurns int           `mapstructure:"max_turns"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RedisConfig holds Redis connection parameters for the shared session store.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// MilvusConfig holds Milvus vector-store connection parameters, used when the
// retrieval index is backed by an external Milvus deployment instead of the
// in-process exact index.
type MilvusConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Addr         string `mapstructure:"addr"`
	DBName       string `mapstructure:"db_name"`
	Collection   string `mapstructure:"collection"`
	EmbeddingDim int    `mapstructure:"embedding_dim"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "text"
	Output string `mapstructure:"output"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Config is the root configuration structure for the entire engine.
// Every infrastructure component and application service reads its settings
// from the relevant sub-struct.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Corpus     CorpusConfig     `mapstructure:"corpus"`
	Embedding  EmbeddingConfig  `mapstructure:"embedding"`
	Generation GenerationConfig `mapstructure:"generation"`
	Retrieval  RetrievalConfig  `mapstructure:"retrieval"`
	Memory     MemoryConfig     `mapstructure:"memory"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Milvus     MilvusConfig     `mapstructure:"milvus"`
	Log        LogConfig        `mapstructure:"log"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Corpus
	if c.Corpus.DocsPath == "" {
		return fmt.Errorf("config: corpus.docs_path is required")
	}

	// Embedding
	if c.Embedding.BaseURL == "" {
		return fmt.Errorf("config: embedding.base_url is required")
	}
	if c.Embedding.Timeout <= 0 {
		return fmt.Errorf("config: embedding.timeout must be positive, got %v", c.Embedding.Timeout)
	}

	// Generation
	if c.Generation.BaseURL == "" {
		return fmt.Errorf("config: generation.base_url is required")
	}

	// Retrieval
	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("config: retrieval.top_k must be ≥ 1, got %d", c.Retrieval.TopK)
	}
	if c.Retrieval.CandidatePool < c.Retrieval.TopK {
		return fmt.Errorf("config: retrieval.candidate_pool %d must be ≥ top_k %d",
			c.Retrieval.CandidatePool, c.Retrieval.TopK)
	}

	// Memory
	switch c.Memory.Backend {
	case "local", "redis":
	default:
		return fmt.Errorf("config: memory.backend %q is invalid; expected local|redis", c.Memory.Backend)
	}
	if c.Memory.MaxTurns < 1 {
		return fmt.Errorf("config: memory.max_turns must be ≥ 1, got %d", c.Memory.MaxTurns)
	}
	if c.Memory.Backend == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when memory.backend is redis")
	}

	// Milvus
	if c.Milvus.Enabled && c.Milvus.Addr == "" {
		return fmt.Errorf("config: milvus.addr is required when milvus.enabled is true")
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|text", c.Log.Format)
	}

	return nil
}
