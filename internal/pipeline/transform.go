package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/orbitalgrid/link-impact-service/internal/domain"
)

// AssessmentTransformer implements Transformer using the domain model.
type AssessmentTransformer struct {
	// defaultTarget fills in the SLA target for requests that omit it.
	defaultTarget float64
	logger        *slog.Logger
}

// NewTransformer creates an AssessmentTransformer. A non-positive
// defaultTarget falls back to the domain default (99.5).
func NewTransformer(defaultTarget float64, logger *slog.Logger) *AssessmentTransformer {
	if defaultTarget <= 0 {
		defaultTarget = domain.DefaultTargetAvailabilityPercent
	}
	return &AssessmentTransformer{
		defaultTarget: defaultTarget,
		logger:        logger,
	}
}

func (t *AssessmentTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	req, err := domain.ParseAssessmentRequest(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}
	if req.TargetAvailabilityPercent <= 0 {
		req.TargetAvailabilityPercent = t.defaultTarget
	}

	assessment, err := domain.AssessRequest(req)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("assess station: %w", err)
	}

	value, err := json.Marshal(assessment)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("serialize assessment: %w", err)
	}

	return domain.OutputEvent{
		Key:   []byte(assessment.StationID),
		Value: value,
		Headers: map[string]string{
			"sla_risk":     string(assessment.SLARisk),
			"processed_at": assessment.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
