package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsRisk/internal/domain"
)

type manualDriver struct {
	job     func(time.Time)
	stopped bool
}

func (m *manualDriver) Start(_ context.Context, job func(time.Time)) error {
	m.job = job
	return nil
}

func (m *manualDriver) Stop(context.Context) error {
	m.stopped = true
	return nil
}

func TestSchedulerRunsPipelinePerTrigger(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	completer := &recordingCompleter{respond: stageResponder("s", "A.", nil)}
	pipeline := buildPipeline(store, &fakeSearch{}, completer, nil)
	driver := &manualDriver{}

	s := NewScheduler(driver, pipeline, nil)
	require.NoError(t, s.Start(context.Background()))
	require.NotNil(t, driver.job)

	driver.job(fixedClock())
	driver.job(fixedClock().Add(time.Hour))
	assert.Len(t, completer.Calls(), 6)

	require.NoError(t, s.Stop(context.Background()))
	assert.True(t, driver.stopped)
}

func TestSchedulerSurvivesFailedRun(t *testing.T) {
	t.Parallel()

	completer := &recordingCompleter{respond: func([]domain.Message) (string, error) { return "", errCollaborator }}
	driver := &manualDriver{}

	s := NewScheduler(driver, buildPipeline(newStore(t), &fakeSearch{}, completer, nil), nil)
	require.NoError(t, s.Start(context.Background()))

	driver.job(fixedClock())
	driver.job(fixedClock())
	assert.Len(t, completer.Calls(), 2)
}

func TestSchedulerWithoutDriver(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil, nil)
	assert.NoError(t, s.Start(context.Background()))
	assert.NoError(t, s.Stop(context.Background()))
}
