package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/agentdir/agent-directory/internal/errors"
	"github.com/agentdir/agent-directory/model"
)

const testCSV = `Agent Name,Domains,Use Cases,Short Desc,Long Desc,Creator,URL,Platform,Pricing,Underlying Model,Deployment,Legitimacy,What Users Think
ChatGPT,Writing;Research,Content Writing;Research Assistance,Conversational AI assistant,A general purpose assistant.,OpenAI,chat.openai.com,Web;API,Freemium,GPT-4,Cloud,Established,Positive
Midjourney,Image Generation,Art;Design,Generates images from prompts,A generative art service.,Midjourney Inc,midjourney.com,Web,Paid,Proprietary,Cloud,Established,Positive
Copilot,Software Development,Code Completion,AI pair programmer,Suggests code in your editor.,GitHub,github.com/features/copilot,VS Code Extension,Paid subscription,Codex,Cloud,Established,Positive
`

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agents.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	return New(Options{
		CSVPath:        writeTestCSV(t, testCSV),
		UserAgentsPath: filepath.Join(t.TempDir(), "user_agents.json"),
		Logger:         zap.NewNop(),
	})
}

func TestNewLoadsCSV(t *testing.T) {
	c := newTestCatalog(t)

	require.Equal(t, 3, c.Count())
	agents := c.All()
	assert.Equal(t, "chatgpt", agents[0].Slug)
	assert.Equal(t, "midjourney", agents[1].Slug)
	assert.Equal(t, "Freemium", agents[0].PricingClean)
	assert.Equal(t, "https://chat.openai.com", agents[0].URL)
}

func TestNewMissingCSVIsNotFatal(t *testing.T) {
	c := New(Options{
		CSVPath:        filepath.Join(t.TempDir(), "missing.csv"),
		UserAgentsPath: filepath.Join(t.TempDir(), "user_agents.json"),
		Logger:         zap.NewNop(),
	})
	assert.Equal(t, 0, c.Count())
}

func TestLoadSkipsRowsWithoutName(t *testing.T) {
	csv := `Agent Name,Short Desc
ChatGPT,Assistant
,No name here
!!!,Only punctuation
Copilot,Pair programmer
`
	c := New(Options{
		CSVPath: writeTestCSV(t, csv),
		Logger:  zap.NewNop(),
	})

	require.Equal(t, 2, c.Count())
	assert.Equal(t, "chatgpt", c.All()[0].Slug)
	assert.Equal(t, "copilot", c.All()[1].Slug)
}

func TestGetBySlug(t *testing.T) {
	c := newTestCatalog(t)

	agent, err := c.GetBySlug("midjourney")
	require.NoError(t, err)
	assert.Equal(t, "Midjourney", agent.Name)

	_, err = c.GetBySlug("does-not-exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAgentNotFound)
}

func TestSearchFilterIsSubsetAndOrderPreserving(t *testing.T) {
	c := newTestCatalog(t)
	all := c.All()

	filtered := c.Search("", Filters{Pricing: "Paid"})
	assert.Len(t, filtered, 1)
	assert.Equal(t, "midjourney", filtered[0].Slug)

	// Subset property: every filtered agent exists in the full list, in order.
	idx := 0
	for _, agent := range filtered {
		found := false
		for ; idx < len(all); idx++ {
			if all[idx].Slug == agent.Slug {
				found = true
				idx++
				break
			}
		}
		assert.True(t, found, "filtered result %s not found in order", agent.Slug)
	}
}

func TestSearchPricingFilterNoMatchesIsEmptyNotError(t *testing.T) {
	c := newTestCatalog(t)

	// No test agent normalizes to exactly "Free".
	results := c.Search("", Filters{Pricing: "Free"})
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchCombinesQueryAndFilters(t *testing.T) {
	c := newTestCatalog(t)

	// The query alone ranks ChatGPT first; the platform filter then
	// removes everything that is not a VS Code extension.
	results := c.Search("coding assistant", Filters{Platform: "VS Code Extension"})
	require.Len(t, results, 1)
	assert.Equal(t, "copilot", results[0].Slug)
}

func TestSearchFilterFieldSemantics(t *testing.T) {
	c := newTestCatalog(t)

	t.Run("domain is exact membership", func(t *testing.T) {
		assert.Len(t, c.Search("", Filters{Domain: "Writing"}), 1)
		assert.Empty(t, c.Search("", Filters{Domain: "Writ"}))
	})

	t.Run("model is case-insensitive substring", func(t *testing.T) {
		results := c.Search("", Filters{Model: "gpt"})
		require.Len(t, results, 1)
		assert.Equal(t, "chatgpt", results[0].Slug)
	})

	t.Run("creator is case-insensitive substring", func(t *testing.T) {
		results := c.Search("", Filters{Creator: "openai"})
		require.Len(t, results, 1)
		assert.Equal(t, "chatgpt", results[0].Slug)
	})

	t.Run("criteria AND together", func(t *testing.T) {
		assert.Empty(t, c.Search("", Filters{Domain: "Writing", Pricing: "Paid"}))
	})
}

func TestFilterOptions(t *testing.T) {
	c := newTestCatalog(t)
	opts := c.FilterOptions()

	assert.Equal(t, []string{"Image Generation", "Research", "Software Development", "Writing"}, opts.Domains)
	assert.Equal(t, []string{"Freemium", "Paid"}, opts.Pricing)
	assert.Contains(t, opts.Platforms, "VS Code Extension")
	assert.Contains(t, opts.Models, "GPT-4")
	assert.Contains(t, opts.Creators, "OpenAI")
}

func TestFilterOptionsEmptyCatalog(t *testing.T) {
	c := New(Options{Logger: zap.NewNop()})
	opts := c.FilterOptions()

	assert.Empty(t, opts.Domains)
	assert.Empty(t, opts.UseCases)
	assert.Empty(t, opts.Platforms)
	assert.Empty(t, opts.Pricing)
}

func TestFilterOptionsReflectAdditions(t *testing.T) {
	c := newTestCatalog(t)
	require.NotContains(t, c.FilterOptions().Domains, "Translation")

	_, err := c.AddUserAgent(model.RawAgent{
		Name:      "LinguaBot",
		ShortDesc: "Translates documents",
		Domains:   "Translation",
	})
	require.NoError(t, err)

	assert.Contains(t, c.FilterOptions().Domains, "Translation")
}

func TestAddUserAgent(t *testing.T) {
	userAgentsPath := filepath.Join(t.TempDir(), "user_agents.json")
	c := New(Options{
		CSVPath:        writeTestCSV(t, testCSV),
		UserAgentsPath: userAgentsPath,
		Logger:         zap.NewNop(),
	})

	agent, err := c.AddUserAgent(model.RawAgent{
		Name:      "My Helper",
		ShortDesc: "Does helpful things",
	})
	require.NoError(t, err)
	assert.Equal(t, "my-helper", agent.Slug)
	assert.Equal(t, "User Submitted", agent.Legitimacy)
	assert.Equal(t, "Web", agent.Platform)
	assert.Equal(t, "Unknown", agent.Pricing)
	assert.Equal(t, 4, c.Count())

	// A fresh catalog pointed at the same stores sees the submission.
	reloaded := New(Options{
		CSVPath:        c.csvPath,
		UserAgentsPath: userAgentsPath,
		Logger:         zap.NewNop(),
	})
	require.Equal(t, 4, reloaded.Count())
	got, err := reloaded.GetBySlug("my-helper")
	require.NoError(t, err)
	assert.Equal(t, "User Submitted", got.Legitimacy)
}

func TestAddUserAgentValidation(t *testing.T) {
	c := newTestCatalog(t)

	_, err := c.AddUserAgent(model.RawAgent{ShortDesc: "no name"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = c.AddUserAgent(model.RawAgent{Name: "No Description"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = c.AddUserAgent(model.RawAgent{Name: "!!!", ShortDesc: "unaddressable"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	assert.Equal(t, 3, c.Count(), "failed submissions must not change the catalog")
}

func TestAddUserAgentPersistFailureLeavesMemoryUnchanged(t *testing.T) {
	c := New(Options{
		CSVPath:        writeTestCSV(t, testCSV),
		UserAgentsPath: filepath.Join(t.TempDir(), "missing-dir-parent", "as-file", "user_agents.json"),
		Logger:         zap.NewNop(),
	})

	// Make the parent path a file so MkdirAll fails.
	parent := filepath.Dir(filepath.Dir(c.userAgentsPath))
	require.NoError(t, os.MkdirAll(parent, 0o750))
	require.NoError(t, os.WriteFile(filepath.Dir(c.userAgentsPath), []byte("x"), 0o600))

	_, err := c.AddUserAgent(model.RawAgent{Name: "Doomed", ShortDesc: "will not persist"})
	require.Error(t, err)
	assert.Equal(t, 3, c.Count(), "persist-before-mutate: in-memory state must be unchanged")
}

func TestRelated(t *testing.T) {
	csv := `Agent Name,Domains,Use Cases,Short Desc
Alpha,Writing,Blogging,first
Beta,Writing,Editing,second
Gamma,Research,Blogging,third
Delta,Finance,Budgeting,fourth
`
	c := New(Options{CSVPath: writeTestCSV(t, csv), Logger: zap.NewNop()})

	alpha, err := c.GetBySlug("alpha")
	require.NoError(t, err)

	related := c.Related(alpha)
	slugs := make([]string, 0, len(related))
	for _, a := range related {
		slugs = append(slugs, a.Slug)
	}

	// Beta shares the primary domain, Gamma the primary use case; Delta shares neither.
	assert.Equal(t, []string{"beta", "gamma"}, slugs)
}
