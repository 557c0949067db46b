package pricing

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/AreteDriver/agent-audit/internal/logger"
	"github.com/AreteDriver/agent-audit/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed providers.yaml
var defaultCatalogYAML []byte

type rawModel struct {
	Input   float64 `yaml:"input"`
	Output  float64 `yaml:"output"`
	Context int     `yaml:"context"`
	Notes   string  `yaml:"notes"`
}

type rawProvider struct {
	DefaultModel string              `yaml:"default_model"`
	Models       map[string]rawModel `yaml:"models"`
}

type rawCatalog struct {
	Providers map[string]rawProvider `yaml:"providers"`
}

// Catalog is a caller-owned pricing lookup. Loading is lazy and memoized;
// Invalidate forces a reload on next use. An empty path means the embedded
// default catalog.
type Catalog struct {
	path string

	mu        sync.Mutex
	providers map[string]model.ProviderConfig
}

// NewCatalog builds a catalog backed by the YAML file at path, or the
// embedded defaults when path is empty.
func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

// Providers returns the full provider map, loading it on first use.
func (c *Catalog) Providers() (map[string]model.ProviderConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.providers != nil {
		return c.providers, nil
	}

	data := defaultCatalogYAML
	if c.path != "" {
		fileData, err := os.ReadFile(c.path)
		if err != nil {
			return nil, &model.PricingError{Msg: "failed to load pricing data", Err: err}
		}
		data = fileData
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &model.PricingError{Msg: "failed to load pricing data", Err: err}
	}
	if err := validateCatalog(doc); err != nil {
		return nil, &model.PricingError{Msg: "invalid pricing data", Err: err}
	}

	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &model.PricingError{Msg: "failed to decode pricing data", Err: err}
	}

	providers := make(map[string]model.ProviderConfig, len(raw.Providers))
	for providerName, providerData := range raw.Providers {
		models := make(map[string]model.ModelPricing, len(providerData.Models))
		for modelName, modelData := range providerData.Models {
			models[modelName] = model.ModelPricing{
				Name:          modelName,
				Provider:      providerName,
				InputPer1K:    modelData.Input,
				OutputPer1K:   modelData.Output,
				ContextWindow: modelData.Context,
				Notes:         modelData.Notes,
			}
		}
		providers[providerName] = model.ProviderConfig{
			Name:         providerName,
			Models:       models,
			DefaultModel: providerData.DefaultModel,
		}
	}

	source := "embedded"
	if c.path != "" {
		source = c.path
	}
	logger.Debug("loaded pricing catalog", "source", source, "providers", len(providers))

	c.providers = providers
	return c.providers, nil
}

// Invalidate clears the memoized catalog so the next call reloads from
// source.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers = nil
}

// Resolve looks up pricing for a provider and model. An empty model selects
// the provider's default model.
func (c *Catalog) Resolve(provider, modelName string) (model.ModelPricing, error) {
	providers, err := c.Providers()
	if err != nil {
		return model.ModelPricing{}, err
	}

	config, ok := providers[provider]
	if !ok {
		return model.ModelPricing{}, &model.PricingError{
			Msg: fmt.Sprintf("unknown provider: %q", provider),
		}
	}

	if modelName == "" {
		modelName = config.DefaultModel
	}
	pricing, ok := config.Models[modelName]
	if !ok {
		available := make([]string, 0, len(config.Models))
		for name := range config.Models {
			available = append(available, name)
		}
		sort.Strings(available)
		return model.ModelPricing{}, &model.PricingError{
			Msg: fmt.Sprintf("unknown model %q for provider %q. Available: %s",
				modelName, provider, strings.Join(available, ", ")),
		}
	}
	return pricing, nil
}

// DefaultModel returns the configured default model for a provider, or
// "unknown" when the provider is not in the catalog.
func (c *Catalog) DefaultModel(provider string) string {
	providers, err := c.Providers()
	if err != nil {
		return "unknown"
	}
	if config, ok := providers[provider]; ok && config.DefaultModel != "" {
		return config.DefaultModel
	}
	return "unknown"
}

// ListProviders returns sorted provider names.
func (c *Catalog) ListProviders() ([]string, error) {
	providers, err := c.Providers()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ListModels returns sorted model names for a provider; unknown providers
// yield an empty list.
func (c *Catalog) ListModels(provider string) ([]string, error) {
	providers, err := c.Providers()
	if err != nil {
		return nil, err
	}
	config, ok := providers[provider]
	if !ok {
		return nil, nil
	}
	names := make([]string, 0, len(config.Models))
	for name := range config.Models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// CalculateCost returns the USD cost for the given token counts, rounded to
// six decimal places.
func CalculateCost(inputTokens, outputTokens int, pricing model.ModelPricing) float64 {
	inputCost := float64(inputTokens) / 1000 * pricing.InputPer1K
	outputCost := float64(outputTokens) / 1000 * pricing.OutputPer1K
	return round6(inputCost + outputCost)
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
