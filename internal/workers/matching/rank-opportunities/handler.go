// internal/workers/matching/rank-opportunities/handler.go
package rankopportunities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	commonerrors "unrc-workers/internal/common/errors"
	"unrc-workers/internal/common/logger"
	"unrc-workers/internal/common/metrics"
	"unrc-workers/internal/common/validation"
	"unrc-workers/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "rank-opportunities"
)

var (
	ErrNilInput = errors.New("input cannot be nil")
)

type Handler struct {
	config   *Config
	engine   *matching.Engine
	logger   logger.Logger
	errorHdl *commonerrors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	workerLog := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		engine:   matching.NewEngine(),
		logger:   workerLog,
		errorHdl: commonerrors.NewErrorHandler(workerLog),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errorHdl.HandleJobError(ctx, client, job, commonerrors.NewRankingFailedError(err.Error()))
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Student.ID == "" {
		return nil, fmt.Errorf("studentProfile.id is required")
	}

	start := time.Now()

	// A record that fails parsing or validation stays in the result with a
	// zero score instead of aborting the whole batch. Input positions are
	// kept so zero-score records, valid or failed, come out in input order.
	processedIDs := make(map[string]bool)
	inputPos := make(map[string]int)
	var valid []matching.OpportunityRequirement
	var failed []RankedOpportunity
	skipped := 0

	for _, raw := range input.Opportunities {
		opp, err := h.parseOpportunity(raw)
		if err != nil {
			id := extractID(raw)
			if id == "" {
				skipped++
				metrics.OpportunitiesSkipped.Inc()
				h.logger.Warn("discarding opportunity record without id", map[string]interface{}{
					"error": err,
				})
				continue
			}
			if processedIDs[id] {
				continue
			}
			processedIDs[id] = true
			inputPos[id] = len(inputPos)
			metrics.OpportunitiesSkipped.Inc()
			h.logger.Warn("opportunity record failed validation", map[string]interface{}{
				"opportunityId": id,
				"error":         err,
			})
			failed = append(failed, RankedOpportunity{
				OpportunityID:      id,
				CompatibilityScore: 0.0,
			})
			continue
		}

		if processedIDs[opp.ID] {
			continue
		}
		processedIDs[opp.ID] = true
		inputPos[opp.ID] = len(inputPos)
		valid = append(valid, opp)
	}

	results := h.engine.Rank(input.Student, valid)

	ranked := make([]RankedOpportunity, 0, len(results)+len(failed))
	for _, r := range results {
		metrics.CompatibilityScore.Observe(r.Score)
		ranked = append(ranked, RankedOpportunity{
			OpportunityID:      r.Opportunity.ID,
			CompanyID:          r.Opportunity.CompanyID,
			Title:              r.Opportunity.Title,
			CompatibilityScore: r.Score,
		})
	}
	ranked = append(ranked, failed...)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].CompatibilityScore != ranked[j].CompatibilityScore {
			return ranked[i].CompatibilityScore > ranked[j].CompatibilityScore
		}
		return inputPos[ranked[i].OpportunityID] < inputPos[ranked[j].OpportunityID]
	})

	maxItems := h.config.MaxItems
	if input.MaxResults > 0 && input.MaxResults < maxItems {
		maxItems = input.MaxResults
	}
	if len(ranked) > maxItems {
		ranked = ranked[:maxItems]
	}

	duration := time.Since(start).Milliseconds()
	h.logger.Info("ranking completed", map[string]interface{}{
		"studentId":   input.Student.ID,
		"inputCount":  len(input.Opportunities),
		"outputCount": len(ranked),
		"skipped":     skipped,
		"durationMs":  duration,
	})

	return &Output{
		RankedOpportunities: ranked,
		TotalEvaluated:      len(valid) + len(failed),
		SkippedRecords:      skipped,
	}, nil
}

func (h *Handler) parseOpportunity(raw json.RawMessage) (matching.OpportunityRequirement, error) {
	var record map[string]interface{}
	if err := json.Unmarshal(raw, &record); err != nil {
		return matching.OpportunityRequirement{}, fmt.Errorf("malformed record: %w", err)
	}

	if err := validation.ValidateOpportunityRecord(record); err != nil {
		return matching.OpportunityRequirement{}, err
	}

	var opp matching.OpportunityRequirement
	if err := json.Unmarshal(raw, &opp); err != nil {
		return matching.OpportunityRequirement{}, err
	}
	return opp, nil
}

func extractID(raw json.RawMessage) string {
	var partial struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &partial); err != nil {
		return ""
	}
	return partial.ID
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
