package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	Mongo     MongoConfig     `yaml:"mongo"`
	LLM       LLMConfig       `yaml:"llm"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type MongoConfig struct {
	// URI is overridden by the MONGO_URI environment variable when set.
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type LLMConfig struct {
	// ChatModel is the Gemini model used for summarization.
	ChatModel string `yaml:"chat_model"`
	// EmbedModel is the Gemini model used for embeddings.
	EmbedModel string `yaml:"embed_model"`
}

// PipelineConfig holds the retry/backoff policy for the feed-update
// pipeline. Durations are given in seconds; zero values fall back to
// the defaults below.
type PipelineConfig struct {
	FeedBatchSize           int `yaml:"feed_batch_size"`
	RetryBatchSize          int `yaml:"retry_batch_size"`
	FetchTimeoutSeconds     int `yaml:"fetch_timeout_seconds"`
	SummaryTimeoutSeconds   int `yaml:"summary_timeout_seconds"`
	SummaryRetryAttempts    int `yaml:"summary_retry_attempts"`
	SummaryRateLimitSeconds int `yaml:"summary_rate_limit_seconds"`
	SummaryBackoffSeconds   int `yaml:"summary_backoff_seconds"`
}

func (p PipelineConfig) FetchTimeout() time.Duration {
	return time.Duration(p.FetchTimeoutSeconds) * time.Second
}

func (p PipelineConfig) SummaryTimeout() time.Duration {
	return time.Duration(p.SummaryTimeoutSeconds) * time.Second
}

func (p PipelineConfig) SummaryRateLimitWait() time.Duration {
	return time.Duration(p.SummaryRateLimitSeconds) * time.Second
}

func (p PipelineConfig) SummaryBackoff() time.Duration {
	return time.Duration(p.SummaryBackoffSeconds) * time.Second
}

type SchedulerConfig struct {
	Enabled         bool `yaml:"enabled"`
	IntervalMinutes int  `yaml:"interval_minutes"`
}

func (s SchedulerConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMinutes) * time.Minute
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}

	applyDefaults(&c)
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		c.Mongo.URI = uri
	}
	config = &c
}

func applyDefaults(c *AppConfig) {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "rss_news_db"
	}
	if c.LLM.ChatModel == "" {
		c.LLM.ChatModel = "gemini-2.0-flash"
	}
	if c.LLM.EmbedModel == "" {
		c.LLM.EmbedModel = "text-embedding-004"
	}
	if c.Pipeline.FeedBatchSize <= 0 {
		c.Pipeline.FeedBatchSize = 100
	}
	if c.Pipeline.RetryBatchSize <= 0 {
		c.Pipeline.RetryBatchSize = 50
	}
	if c.Pipeline.FetchTimeoutSeconds <= 0 {
		c.Pipeline.FetchTimeoutSeconds = 20
	}
	if c.Pipeline.SummaryTimeoutSeconds <= 0 {
		c.Pipeline.SummaryTimeoutSeconds = 30
	}
	if c.Pipeline.SummaryRetryAttempts <= 0 {
		c.Pipeline.SummaryRetryAttempts = 3
	}
	if c.Pipeline.SummaryRateLimitSeconds <= 0 {
		c.Pipeline.SummaryRateLimitSeconds = 20
	}
	if c.Pipeline.SummaryBackoffSeconds <= 0 {
		c.Pipeline.SummaryBackoffSeconds = 2
	}
	if c.Scheduler.IntervalMinutes <= 0 {
		c.Scheduler.IntervalMinutes = 60
	}
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
