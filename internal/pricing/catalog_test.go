package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/AreteDriver/agent-audit/internal/logger"
	"github.com/AreteDriver/agent-audit/internal/model"
)

func TestProvidersLogsSource(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Logger
	logger.Logger = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Logger = prev })

	_, err := NewCatalog("").Providers()
	require.NoError(t, err)

	entries := logs.FilterMessage("loaded pricing catalog").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "embedded", entries[0].ContextMap()["source"])
}

func TestEmbeddedCatalogLoads(t *testing.T) {
	catalog := NewCatalog("")

	providers, err := catalog.Providers()
	require.NoError(t, err)
	require.Contains(t, providers, "anthropic")
	require.Contains(t, providers, "openai")
	require.Contains(t, providers, "ollama")

	anthropic := providers["anthropic"]
	assert.Equal(t, "claude-sonnet-4", anthropic.DefaultModel)
	sonnet := anthropic.Models["claude-sonnet-4"]
	assert.Equal(t, 0.003, sonnet.InputPer1K)
	assert.Equal(t, 0.015, sonnet.OutputPer1K)
	assert.Equal(t, 200000, sonnet.ContextWindow)
	assert.Equal(t, "anthropic", sonnet.Provider)
}

func TestResolve(t *testing.T) {
	catalog := NewCatalog("")

	t.Run("explicit model", func(t *testing.T) {
		p, err := catalog.Resolve("openai", "gpt-4o-mini")
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", p.Name)
	})

	t.Run("empty model selects default", func(t *testing.T) {
		p, err := catalog.Resolve("anthropic", "")
		require.NoError(t, err)
		assert.Equal(t, "claude-sonnet-4", p.Name)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := catalog.Resolve("acme", "")
		require.Error(t, err)
		var perr *model.PricingError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, err.Error(), "acme")
	})

	t.Run("unknown model lists alternatives", func(t *testing.T) {
		_, err := catalog.Resolve("anthropic", "claude-nonexistent")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "claude-nonexistent")
		// Available models are sorted for stable messages.
		assert.Contains(t, err.Error(), "claude-haiku-3-5, claude-opus-4, claude-sonnet-4")
	})
}

func TestDefaultModel(t *testing.T) {
	catalog := NewCatalog("")
	assert.Equal(t, "llama3", catalog.DefaultModel("ollama"))
	assert.Equal(t, "unknown", catalog.DefaultModel("acme"))
}

func TestListProvidersAndModelsSorted(t *testing.T) {
	catalog := NewCatalog("")

	providers, err := catalog.ListProviders()
	require.NoError(t, err)
	assert.Equal(t, []string{"anthropic", "ollama", "openai"}, providers)

	models, err := catalog.ListModels("openai")
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o", "gpt-4o-mini", "o3-mini"}, models)

	models, err = catalog.ListModels("acme")
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestCatalogFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
providers:
  custom:
    default_model: tiny
    models:
      tiny:
        input: 0.001
        output: 0.002
        context: 4096
`), 0o644))

	catalog := NewCatalog(path)
	p, err := catalog.Resolve("custom", "")
	require.NoError(t, err)
	assert.Equal(t, 0.001, p.InputPer1K)

	_, err = catalog.Resolve("anthropic", "")
	assert.Error(t, err, "file catalog replaces the embedded defaults")
}

func TestCatalogFileMissing(t *testing.T) {
	catalog := NewCatalog("/nonexistent/pricing.yaml")
	_, err := catalog.Providers()
	require.Error(t, err)
	var perr *model.PricingError
	assert.ErrorAs(t, err, &perr)
}

func TestCatalogRejectsInvalidShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
providers:
  broken:
    models:
      x:
        input: "not a number"
`), 0o644))

	catalog := NewCatalog(path)
	_, err := catalog.Providers()
	require.Error(t, err)
}

func TestInvalidateReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pricing.yaml")

	require.NoError(t, os.WriteFile(path, []byte(`
providers:
  custom:
    default_model: tiny
    models:
      tiny:
        input: 0.001
        output: 0.002
        context: 4096
`), 0o644))

	catalog := NewCatalog(path)
	p, err := catalog.Resolve("custom", "tiny")
	require.NoError(t, err)
	assert.Equal(t, 0.001, p.InputPer1K)

	// A rewrite is invisible until Invalidate.
	require.NoError(t, os.WriteFile(path, []byte(`
providers:
  custom:
    default_model: tiny
    models:
      tiny:
        input: 0.005
        output: 0.002
        context: 4096
`), 0o644))

	p, err = catalog.Resolve("custom", "tiny")
	require.NoError(t, err)
	assert.Equal(t, 0.001, p.InputPer1K)

	catalog.Invalidate()
	p, err = catalog.Resolve("custom", "tiny")
	require.NoError(t, err)
	assert.Equal(t, 0.005, p.InputPer1K)
}

func TestCalculateCost(t *testing.T) {
	pricing := model.ModelPricing{InputPer1K: 0.003, OutputPer1K: 0.015}

	assert.InDelta(t, 0.057, CalculateCost(1500, 3500, pricing), 1e-9)
	assert.Zero(t, CalculateCost(0, 0, pricing))
	assert.Zero(t, CalculateCost(100000, 100000, model.ModelPricing{}))

	// Rounded to six decimals.
	got := CalculateCost(1, 1, model.ModelPricing{InputPer1K: 0.0004, OutputPer1K: 0.0004})
	assert.Equal(t, 0.000001, got)
}
