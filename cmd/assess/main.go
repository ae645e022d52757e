// Command assess runs the weather impact model offline over a JSON file of
// station assessment requests. It uses the same domain package as the
// service, so its output matches pipeline behavior exactly.
//
// Usage:
//
//	go run ./cmd/assess \
//	  -stations data/stations.json \
//	  -out data/assessments.json \
//	  -at 2026-03-14T09:26:53Z
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orbitalgrid/link-impact-service/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	stationsPath := flag.String("stations", "", "input JSON file: array of assessment requests")
	outPath := flag.String("out", "", "output JSON file: array of station assessments")
	target := flag.Float64("target", 0, "default SLA target for requests that omit one (0 uses 99.5)")
	at := flag.String("at", "", "pin ProcessedAt to this RFC3339 instant for reproducible output")
	flag.Parse()

	if *stationsPath == "" || *outPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -stations, -out")
	}

	if *at != "" {
		instant, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			return fmt.Errorf("invalid -at: %w", err)
		}
		domain.SetClock(clockwork.NewFakeClockAt(instant))
		defer domain.SetClock(nil)
	}

	requests, err := loadRequests(*stationsPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", *stationsPath, err)
	}

	assessments := make([]domain.StationAssessment, 0, len(requests))
	for i, req := range requests {
		if req.TargetAvailabilityPercent <= 0 && *target > 0 {
			req.TargetAvailabilityPercent = *target
		}
		assessment, err := domain.AssessRequest(req)
		if err != nil {
			return fmt.Errorf("station %d (%q): %w", i, req.StationID, err)
		}
		assessments = append(assessments, assessment)
	}

	if err := writeJSON(*outPath, assessments); err != nil {
		return fmt.Errorf("writing %s: %w", *outPath, err)
	}
	log.Printf("wrote %d assessments: %s", len(assessments), *outPath)

	printStats(assessments)
	return nil
}

func loadRequests(path string) ([]domain.AssessmentRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var requests []domain.AssessmentRequest
	if err := json.Unmarshal(data, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(assessments []domain.StationAssessment) {
	riskCounts := map[domain.SLARisk]int{}
	var worst *domain.StationAssessment
	for i := range assessments {
		a := &assessments[i]
		riskCounts[a.SLARisk]++
		if worst == nil || a.OverallAvailabilityPercent < worst.OverallAvailabilityPercent {
			worst = a
		}
	}

	fmt.Println("\n=== Assessment summary ===")
	fmt.Printf("Total: %d\n", len(assessments))
	fmt.Printf("By SLA risk: low=%d, medium=%d, high=%d, critical=%d\n",
		riskCounts[domain.SLARiskLow], riskCounts[domain.SLARiskMedium],
		riskCounts[domain.SLARiskHigh], riskCounts[domain.SLARiskCritical])

	if worst != nil {
		fmt.Printf("\nLowest availability: %s\n", worst.StationID)
		fmt.Printf("  Overall: %.2f%%\n", worst.OverallAvailabilityPercent)
		fmt.Printf("  Annual capacity loss: %.2f%%\n", worst.CapacityReduction.AnnualPercent)
		fmt.Printf("  SLA risk: %s\n", worst.SLARisk)
		for _, strategy := range worst.MitigationStrategies {
			fmt.Printf("  Mitigation: %s\n", strategy)
		}
	}
}
