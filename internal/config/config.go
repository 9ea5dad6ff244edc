package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/xxxsen/common/logger"
)

const envPrefix = "GLBPICK_"

type Config struct {
	Port              int              `json:"port"`
	LogConfig         logger.LogConfig `json:"log_config"`
	Inventory         InventoryConfig  `json:"inventory"`
	FileStore         FileStoreConfig  `json:"file_store"`
	AI                AIConfig         `json:"ai"`
	CORSOrigins       []string         `json:"cors_origins"`
	PromptRateLimit   float64          `json:"prompt_rate_limit"`
	PromptRateBurst   int              `json:"prompt_rate_burst"`
	EnableMetrics     bool             `json:"enable_metrics"`
	EnableCompression bool             `json:"enable_compression"`
}

type InventoryConfig struct {
	Path            string `json:"path"`
	VocabularyLimit int    `json:"vocabulary_limit"`
	// ReloadSpec is a five field cron spec; empty disables reloading.
	ReloadSpec string `json:"reload_spec"`
}

type FileStoreConfig struct {
	Type      string      `json:"type"`
	Extension string      `json:"extension"`
	Data      interface{} `json:"data"`
}

type AIConfig struct {
	Provider      string             `json:"provider"`
	Model         string             `json:"model"`
	Data          interface{}        `json:"data"`
	Fallbacks     []AIProviderConfig `json:"fallbacks"`
	Timeout       int                `json:"timeout"`
	MaxInputChars int                `json:"max_input_chars"`
	MaxInflight   int                `json:"max_inflight"`
	RateLimit     float64            `json:"rate_limit"`
	Burst         int                `json:"burst"`
	CacheSize     int                `json:"cache_size"`
	CacheTTL      int                `json:"cache_ttl"`
}

type AIProviderConfig struct {
	Provider string      `json:"provider"`
	Model    string      `json:"model"`
	Data     interface{} `json:"data"`
}

// Load reads a JSON config file. A .env file next to the working directory
// is loaded first when present, and GLBPICK_* variables override file values.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) error {
	if cfg.Port == 0 {
		cfg.Port = 5000
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("port out of range: %d", cfg.Port)
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Inventory.Path == "" {
		cfg.Inventory.Path = "inventory.csv"
	}
	if cfg.Inventory.VocabularyLimit <= 0 {
		cfg.Inventory.VocabularyLimit = 150
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
	}
	if cfg.FileStore.Extension == "" {
		cfg.FileStore.Extension = ".glb"
	}
	if !strings.HasPrefix(cfg.FileStore.Extension, ".") {
		cfg.FileStore.Extension = "." + cfg.FileStore.Extension
	}
	switch cfg.FileStore.Type {
	case "local":
		if cfg.FileStore.Data == nil {
			cfg.FileStore.Data = map[string]interface{}{"dir": "GLB"}
		}
	case "s3":
		if cfg.FileStore.Data == nil {
			return fmt.Errorf("file_store.data is required for s3 store")
		}
	default:
		return fmt.Errorf("file_store.type must be local or s3")
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "ollama"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "llama3.2:3b"
	}
	if cfg.AI.Timeout <= 0 {
		cfg.AI.Timeout = 60
	}
	if cfg.AI.MaxInputChars <= 0 {
		cfg.AI.MaxInputChars = 2000
	}
	if cfg.AI.MaxInflight < 0 || cfg.AI.RateLimit < 0 || cfg.AI.CacheSize < 0 {
		return fmt.Errorf("ai limits must not be negative")
	}
	if cfg.AI.CacheSize > 0 && cfg.AI.CacheTTL <= 0 {
		cfg.AI.CacheTTL = 600
	}
	for i, fb := range cfg.AI.Fallbacks {
		if fb.Provider == "" || fb.Model == "" {
			return fmt.Errorf("ai.fallbacks[%d] requires provider and model", i)
		}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookupEnv("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %sPORT: %w", envPrefix, err)
		}
		cfg.Port = port
	}
	if v, ok := lookupEnv("INVENTORY_PATH"); ok {
		cfg.Inventory.Path = v
	}
	if v, ok := lookupEnv("ASSET_DIR"); ok {
		cfg.FileStore.Type = "local"
		cfg.FileStore.Data = map[string]interface{}{"dir": v}
	}
	if v, ok := lookupEnv("AI_PROVIDER"); ok {
		cfg.AI.Provider = v
	}
	if v, ok := lookupEnv("AI_MODEL"); ok {
		cfg.AI.Model = v
	}
	if v, ok := lookupEnv("AI_ENDPOINT"); ok {
		cfg.AI.Data = withEndpoint(cfg.AI.Data, v)
	}
	if v, ok := lookupEnv("AI_API_KEY"); ok {
		cfg.AI.Data = withField(cfg.AI.Data, "api_key", v)
	}
	return nil
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// withEndpoint sets both endpoint spellings used by providers so the override
// works for ollama (server_url) and OpenAI compatible services (base_url).
func withEndpoint(data interface{}, endpoint string) interface{} {
	data = withField(data, "server_url", endpoint)
	return withField(data, "base_url", endpoint)
}

func withField(data interface{}, key, value string) interface{} {
	m, ok := data.(map[string]interface{})
	if !ok || m == nil {
		m = map[string]interface{}{}
	}
	m[key] = value
	return m
}
