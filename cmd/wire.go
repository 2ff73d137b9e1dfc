package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	aiclient "github.com/bnema/aicalc/internal/adapters/ai/openai"
	csvexport "github.com/bnema/aicalc/internal/adapters/export/csvfile"
	xlsxexport "github.com/bnema/aicalc/internal/adapters/export/xlsxfile"
	tomlregistry "github.com/bnema/aicalc/internal/adapters/registry/toml"
	historyrender "github.com/bnema/aicalc/internal/adapters/render/history"
	chainstore "github.com/bnema/aicalc/internal/adapters/secrets/chain"
	"github.com/bnema/aicalc/internal/application"
	"github.com/bnema/aicalc/internal/domain"
	"github.com/bnema/aicalc/internal/ports"
	"github.com/spf13/viper"
)

const apiKeySecretRef = "openai/api_key"

type app struct {
	registry        *domain.Registry
	secretStore     ports.SecretStore
	exporters       map[application.ExportFormat]ports.LogExporter
	historyRenderer func([]domain.Record, historyrender.RenderOptions) (string, error)
	openAI          openAIConfig
	httpClient      *http.Client
	now             func() time.Time
}

type openAIConfig struct {
	BaseURL     string
	Model       string
	Temperature float64
}

func wireApp() (*app, error) {
	registry, err := tomlregistry.LoadRegistry(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire constant registry: %w", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config directory: %w", err)
	}

	secretStore, err := chainstore.NewEnvFirstWithFileFallback(filepath.Join(configDir, "aicalc", "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	return &app{
		registry:    registry,
		secretStore: secretStore,
		exporters: map[application.ExportFormat]ports.LogExporter{
			application.ExportCSV:  csvexport.NewExporter(),
			application.ExportXLSX: xlsxexport.NewExporter(),
		},
		historyRenderer: historyrender.Render,
		openAI: openAIConfig{
			BaseURL:     envOrDefault("AICALC_OPENAI_BASE_URL", aiclient.DefaultBaseURL),
			Model:       envOrDefault("AICALC_OPENAI_MODEL", aiclient.DefaultModel),
			Temperature: envFloatOrDefault("AICALC_OPENAI_TEMPERATURE", 0),
		},
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}, nil
}

// newService builds a fresh calculator session over the wired adapters.
func (a *app) newService(ctx context.Context, approximatePlaceholders bool) *application.Service {
	return application.NewService(application.ServiceConfig{
		Registry:                a.registry,
		Explainer:               a.newExplainer(ctx),
		Exporters:               a.exporters,
		Clock:                   ports.SystemClock{},
		ApproximatePlaceholders: approximatePlaceholders,
	})
}

// newExplainer resolves the credential at wiring time. A missing key yields
// a client that fails fast with ErrUnconfiguredClient, without network IO.
func (a *app) newExplainer(ctx context.Context) ports.Explainer {
	apiKey, err := a.secretStore.Get(ctx, apiKeySecretRef)
	if err != nil {
		apiKey = ""
	}

	return aiclient.NewClient(aiclient.Config{
		BaseURL:     a.openAI.BaseURL,
		Model:       a.openAI.Model,
		APIKey:      apiKey,
		Temperature: a.openAI.Temperature,
		HTTPClient:  a.httpClient,
	})
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envFloatOrDefault(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}

	return value
}
