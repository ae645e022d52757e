package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orbitalgrid/link-impact-service/internal/domain"
	"github.com/orbitalgrid/link-impact-service/internal/observability"
	"github.com/orbitalgrid/link-impact-service/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockExtractor struct {
	batches [][]domain.RawEvent
	index   atomic.Int64
}

func (m *mockExtractor) ExtractBatch(ctx context.Context, _ int) ([]domain.RawEvent, error) {
	i := int(m.index.Add(1) - 1)
	if i >= len(m.batches) {
		// block until context cancelled to simulate waiting for messages
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.batches[i], nil
}

type mockTransformer struct {
	err error
}

func (m *mockTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	if m.err != nil {
		return domain.OutputEvent{}, m.err
	}
	return domain.OutputEvent{
		Key:     raw.Key,
		Value:   raw.Value,
		Headers: map[string]string{"sla_risk": "low"},
	}, nil
}

type mockLoader struct {
	loaded []domain.OutputEvent
	err    error
}

func (m *mockLoader) LoadBatch(_ context.Context, events []domain.OutputEvent) error {
	if m.err != nil {
		return m.err
	}
	m.loaded = append(m.loaded, events...)
	return nil
}

func makeRawRequest(stationID string, committed *atomic.Int64) domain.RawEvent {
	return domain.RawEvent{
		Key:   []byte(stationID),
		Value: []byte(`{"station_id":"` + stationID + `"}`),
		Topic: "station-assessment-requests",
		Commit: func(context.Context) error {
			if committed != nil {
				committed.Add(1)
			}
			return nil
		},
	}
}

func newTestMetrics() *observability.Metrics {
	// Fresh, unregistered instance to avoid "already registered" panics.
	return observability.NewMetricsForTesting()
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	var committed atomic.Int64
	raw := makeRawRequest("sg-1", &committed)

	ext := &mockExtractor{batches: [][]domain.RawEvent{{raw}}}
	tfm := &mockTransformer{}
	ldr := &mockLoader{}

	p := pipeline.New(ext, tfm, ldr, slog.Default(), newTestMetrics(), 50)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	require.Len(t, ldr.loaded, 1)
	assert.Equal(t, raw.Value, ldr.loaded[0].Value)
	assert.Equal(t, int64(1), committed.Load())
	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ext := &mockExtractor{} // no batches, will block
	p := pipeline.New(ext, &mockTransformer{}, &mockLoader{}, slog.Default(), newTestMetrics(), 50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	err := p.Run(ctx)
	require.NoError(t, err)
}

func TestPipeline_Run_TransformErrorSkipsAndCommits(t *testing.T) {
	var committed atomic.Int64
	raw := makeRawRequest("sg-1", &committed)

	ext := &mockExtractor{batches: [][]domain.RawEvent{{raw}}}
	tfm := &mockTransformer{err: errors.New("bad request")}
	ldr := &mockLoader{}

	p := pipeline.New(ext, tfm, ldr, slog.Default(), newTestMetrics(), 50)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.loaded)
	// A skipped request is still committed so it cannot wedge the partition.
	assert.Equal(t, int64(1), committed.Load())
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_MixedBatchLoadsSuccesses(t *testing.T) {
	var committed atomic.Int64
	good := makeRawRequest("sg-1", &committed)
	bad := domain.RawEvent{
		Key:   []byte("broken"),
		Value: []byte("{not json"),
		Commit: func(context.Context) error {
			committed.Add(1)
			return nil
		},
	}

	ext := &mockExtractor{batches: [][]domain.RawEvent{{bad, good}}}
	tfm := &jsonSensitiveTransformer{}
	ldr := &mockLoader{}

	p := pipeline.New(ext, tfm, ldr, slog.Default(), newTestMetrics(), 50)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, p.Run(ctx))
	require.Len(t, ldr.loaded, 1)
	assert.Equal(t, []byte("sg-1"), ldr.loaded[0].Key)
	assert.Equal(t, int64(2), committed.Load())
}

// jsonSensitiveTransformer fails on values that are not valid JSON objects.
type jsonSensitiveTransformer struct{}

func (jsonSensitiveTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	if len(raw.Value) == 0 || raw.Value[0] != '{' || raw.Value[len(raw.Value)-1] != '}' {
		return domain.OutputEvent{}, errors.New("not a JSON object")
	}
	return domain.OutputEvent{Key: raw.Key, Value: raw.Value}, nil
}

func TestPipeline_Run_LoadErrorDoesNotCommit(t *testing.T) {
	var committed atomic.Int64
	raw := makeRawRequest("sg-1", &committed)

	ext := &mockExtractor{batches: [][]domain.RawEvent{{raw}}}
	ldr := &mockLoader{err: errors.New("broker unavailable")}

	p := pipeline.New(ext, &mockTransformer{}, ldr, slog.Default(), newTestMetrics(), 50)

	// Long enough for one load attempt plus the first backoff sleep.
	ctx, cancel := context.WithTimeout(context.Background(), 400*time.Millisecond)
	defer cancel()

	require.NoError(t, p.Run(ctx))
	assert.Empty(t, ldr.loaded)
	assert.Equal(t, int64(0), committed.Load())
	assert.Error(t, p.CheckReadiness(context.Background()))
}
