package llm

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

func apiKey(cfg Config, envVars ...string) string {
	if cfg.APIKey != "" {
		return cfg.APIKey
	}
	for _, k := range envVars {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func newOllama(cfg Config) (llms.Model, error) {
	var opts []ollama.Option
	if cfg.Model != "" {
		opts = append(opts, ollama.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
	}
	return ollama.New(opts...)
}

func newOpenAI(cfg Config) (llms.Model, error) {
	var opts []openai.Option
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if token := apiKey(cfg, "MUDABBIR_OPENAI_API_KEY", "OPENAI_API_KEY"); token != "" {
		opts = append(opts, openai.WithToken(token))
	}
	return openai.New(opts...)
}

func newAnthropic(cfg Config) (llms.Model, error) {
	var opts []anthropic.Option
	if cfg.Model != "" {
		opts = append(opts, anthropic.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}
	if token := apiKey(cfg, "MUDABBIR_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"); token != "" {
		opts = append(opts, anthropic.WithToken(token))
	}
	return anthropic.New(opts...)
}

func newGemini(ctx context.Context, cfg Config) (llms.Model, string, error) {
	model := cfg.Model
	if model == "" {
		model = googleai.DefaultOptions().DefaultModel
	}
	opts := []googleai.Option{googleai.WithDefaultModel(model)}
	if cfg.BaseURL != "" {
		opts = append(opts, googleai.WithRest())
	}
	if key := apiKey(cfg, "MUDABBIR_GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY"); key != "" {
		opts = append(opts, googleai.WithAPIKey(key))
	}
	client, err := googleai.New(ctx, opts...)
	if err != nil {
		return nil, "", err
	}
	return client, model, nil
}
