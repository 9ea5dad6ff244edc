package ai

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const defaultOllamaServerURL = "http://127.0.0.1:11434"

type ollamaConfig struct {
	ServerURL   string  `json:"server_url"`
	KeepAlive   string  `json:"keep_alive"`
	Temperature float64 `json:"temperature"`
	Format      string  `json:"format"`
}

type langchainProvider struct {
	name        string
	llm         llms.Model
	temperature float64
}

// NewLangchainProvider adapts any langchaingo model. Generation runs with the
// given temperature and the per-call model name, when one is set.
func NewLangchainProvider(name string, llm llms.Model, temperature float64) IProvider {
	return &langchainProvider{name: name, llm: llm, temperature: temperature}
}

func (p *langchainProvider) Name() string {
	return p.name
}

func (p *langchainProvider) Generate(ctx context.Context, model string, prompt string) (string, error) {
	if p.llm == nil {
		return "", ErrUnavailable
	}
	opts := []llms.CallOption{llms.WithTemperature(p.temperature)}
	if model != "" {
		opts = append(opts, llms.WithModel(model))
	}
	out, err := llms.GenerateFromSinglePrompt(ctx, p.llm, prompt, opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func createOllamaFactory(args interface{}) (IProvider, error) {
	cfg := &ollamaConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	serverURL := strings.TrimSpace(cfg.ServerURL)
	if serverURL == "" {
		serverURL = defaultOllamaServerURL
	}
	opts := []ollama.Option{
		ollama.WithServerURL(serverURL),
		ollama.WithHTTPClient(&http.Client{Timeout: 5 * time.Minute}),
	}
	if cfg.KeepAlive != "" {
		opts = append(opts, ollama.WithKeepAlive(cfg.KeepAlive))
	}
	if cfg.Format != "" {
		opts = append(opts, ollama.WithFormat(cfg.Format))
	}
	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, err
	}
	return NewLangchainProvider("ollama", llm, cfg.Temperature), nil
}

func init() {
	Register("ollama", createOllamaFactory)
}
