package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsRisk/internal/config"
	"NewsRisk/internal/domain"
)

type countingCompleter struct {
	calls int
}

func (c *countingCompleter) Complete(context.Context, []domain.Message) (string, error) {
	c.calls++
	return "ok", nil
}

func TestPacedCompleterDelegates(t *testing.T) {
	t.Parallel()

	next := &countingCompleter{}
	paced := NewPacedCompleter(next, 6000)

	for i := 0; i < 3; i++ {
		out, err := paced.Complete(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, "ok", out)
	}
	assert.Equal(t, 3, next.calls)
}

func TestPacedCompleterHonoursContext(t *testing.T) {
	t.Parallel()

	next := &countingCompleter{}
	paced := NewPacedCompleter(next, 1)

	_, err := paced.Complete(context.Background(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = paced.Complete(ctx, nil)
	require.Error(t, err)
	assert.Equal(t, 1, next.calls)
}

func TestNewSelectsProvider(t *testing.T) {
	t.Parallel()

	c, err := New(context.Background(), config.LLMConfig{Provider: config.ProviderOpenAI})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	c, err = New(context.Background(), config.LLMConfig{Provider: config.ProviderOpenAI, RequestsPerMinute: 10})
	require.NoError(t, err)
	assert.IsType(t, &PacedCompleter{}, c)

	_, err = New(context.Background(), config.LLMConfig{Provider: "other"})
	assert.Error(t, err)
}
