package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsRisk/internal/config"
	"NewsRisk/internal/domain"
	"NewsRisk/internal/logging"
)

func completionServer(t *testing.T, reply string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": reply}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, completionURL string) config.Config {
	t.Helper()
	cfg, err := config.LoadFrom("")
	require.NoError(t, err)

	cfg.Artifacts.BaseDir = t.TempDir()
	cfg.LLM.Provider = config.ProviderOpenAI
	cfg.LLM.RequestsPerMinute = 0
	cfg.LLM.OpenAI.Endpoint = completionURL
	cfg.LLM.OpenAI.APIKey = "sk-test"
	cfg.Notifications.Telegram = config.TelegramConfig{}
	return cfg
}

func TestApplicationRunEndToEnd(t *testing.T) {
	t.Parallel()

	search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cx-1", r.URL.Query().Get("cx"))
		assert.Equal(t, "lang_en", r.URL.Query().Get("lr"))
		_, _ = w.Write([]byte(`{"items":[{"link":"https://a.example","pagemap":{"metatags":[{"og:title":"Breach","og:description":"Leak"}]}}]}`))
	}))
	t.Cleanup(search.Close)

	var calls atomic.Int32
	llm := completionServer(t, "A.\nB.", &calls)

	cfg := testConfig(t, llm.URL)
	cfg.Search.Endpoint = search.URL
	cfg.Search.CX = "cx-1"
	cfg.Search.APIKey = "key-1"

	application, err := New(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)

	report, err := application.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StateDone, report.State)
	assert.Equal(t, 1, report.Articles)
	assert.Equal(t, 2, report.FulfilledCount())
	assert.EqualValues(t, 4, calls.Load())

	for _, name := range []string{"summary.txt", "action_points.txt", "action_0.txt", "action_1.txt"} {
		_, err := os.Stat(filepath.Join(cfg.Artifacts.BaseDir, "output", name))
		assert.NoError(t, err, name)
	}
	_, err = os.Stat(filepath.Join(cfg.Artifacts.BaseDir, "news", report.Snapshot))
	assert.NoError(t, err)
}

func TestApplicationRunRequiresSearchCredentials(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	cfg := testConfig(t, completionServer(t, "x", &calls).URL)
	cfg.Search.CX = ""

	application, err := New(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)

	report, err := application.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CUSTOMSEARCH_CX_KEY")
	assert.Equal(t, domain.StateFailed, report.State)
	assert.Zero(t, calls.Load())
}

func TestNewRequiresCompletionKey(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.LLM.OpenAI.APIKey = ""

	_, err := New(context.Background(), cfg, logging.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestApplicationConvertClaims(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	cfg := testConfig(t, completionServer(t, `{"fraud_likelihood":1}`, &calls).URL)

	claimsDir := filepath.Join(cfg.Artifacts.BaseDir, "claims")
	require.NoError(t, os.MkdirAll(claimsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(claimsDir, "c1.txt"), []byte("water damage"), 0o644))

	application, err := New(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, []string{"claims", "contracts"}, application.Converters())

	n, err := application.Convert(context.Background(), "claims")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	raw, err := os.ReadFile(filepath.Join(cfg.Artifacts.BaseDir, "assessment", "c1.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"fraud_likelihood\": 1\n}", string(raw))

	_, err = application.Convert(context.Background(), "invoices")
	assert.Error(t, err)
}
