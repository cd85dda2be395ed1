// internal/workers/matching/score-compatibility/handler.go
package scorecompatibility

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	commonerrors "unrc-workers/internal/common/errors"
	"unrc-workers/internal/common/logger"
	"unrc-workers/internal/common/metrics"
	"unrc-workers/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "score-compatibility"
)

var (
	ErrProfileNotFound = errors.New("PROFILE_NOT_FOUND")
)

type Handler struct {
	config   *Config
	db       *sql.DB
	redis    *redis.Client
	engine   *matching.Engine
	logger   logger.Logger
	errorHdl *commonerrors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, log logger.Logger) *Handler {
	workerLog := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		db:       db,
		redis:    rdb,
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

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout())
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		var stdErr *commonerrors.StandardError
		if errors.Is(err, ErrProfileNotFound) {
			stdErr = commonerrors.NewProfileNotFoundError(input.StudentID)
		} else {
			stdErr = commonerrors.NewCompatibilityScoringFailedError(input.Opportunity.ID, err)
		}
		h.errorHdl.HandleJobError(ctx, client, job, stdErr)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Opportunity.ID == "" {
		return nil, fmt.Errorf("opportunity id is required")
	}

	studentID := input.StudentID
	if studentID == "" && input.Student != nil {
		studentID = input.Student.ID
	}

	if cached := h.getCachedScore(ctx, studentID, input.Opportunity.ID); cached != nil {
		metrics.ScoreCacheHits.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.ScoreCacheHits.WithLabelValues("miss").Inc()

	profile := input.Student
	if profile == nil {
		if studentID == "" {
			return nil, fmt.Errorf("studentId or studentProfile is required")
		}
		var err error
		profile, err = h.getStudentProfile(ctx, studentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, studentID)
			}
			return nil, err
		}
	}

	score, breakdown := h.engine.Score(*profile, input.Opportunity)

	metrics.OpportunitiesScored.WithLabelValues(breakdown.SkillTier.String()).Inc()
	metrics.CompatibilityScore.Observe(score)

	h.logger.Info("compatibility score computed", map[string]interface{}{
		"studentId":     studentID,
		"opportunityId": input.Opportunity.ID,
		"score":         score,
		"skillTier":     breakdown.SkillTier.String(),
	})

	output := &Output{
		OpportunityID:      input.Opportunity.ID,
		CompatibilityScore: score,
		Breakdown:          breakdown,
	}

	h.cacheScore(ctx, studentID, input.Opportunity.ID, output)

	return output, nil
}

func scoreCacheKey(studentID, opportunityID string) string {
	return "match:score:" + studentID + ":" + opportunityID
}

func (h *Handler) getCachedScore(ctx context.Context, studentID, opportunityID string) *Output {
	if studentID == "" {
		return nil
	}
	val, err := h.redis.Get(ctx, scoreCacheKey(studentID, opportunityID)).Result()
	if err != nil {
		return nil
	}
	var output Output
	if err := json.Unmarshal([]byte(val), &output); err != nil {
		return nil
	}
	output.FromCache = true
	return &output
}

func (h *Handler) cacheScore(ctx context.Context, studentID, opportunityID string, output *Output) {
	if studentID == "" {
		return
	}
	data, err := json.Marshal(output)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, scoreCacheKey(studentID, opportunityID), data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("failed to cache score", map[string]interface{}{
			"studentId": studentID,
			"error":     err,
		})
	}
}

func (h *Handler) getStudentProfile(ctx context.Context, studentID string) (*matching.StudentProfile, error) {
	cacheKey := "student:profile:" + studentID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var profile matching.StudentProfile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &profile, nil
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT s.semester, s.gpa, s.technical_skills, s.available,
			(SELECT COUNT(*) FROM student_experiences e WHERE e.student_id = s.id),
			(SELECT COUNT(*) FROM student_projects p WHERE p.student_id = s.id)
		FROM students s WHERE s.id = $1`, studentID)

	profile := matching.StudentProfile{ID: studentID}
	var skills []byte
	err := row.Scan(&profile.Semester, &profile.GPA, &skills, &profile.Available,
		&profile.ExperienceCount, &profile.ProjectCount)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(skills, &profile.TechnicalSkills); err != nil {
		profile.TechnicalSkills = []string{}
	}

	data, _ := json.Marshal(profile)
	h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)

	return &profile, nil
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

func (h *Handler) timeout() time.Duration {
	if h.config.Timeout > 0 {
		return h.config.Timeout
	}
	return 30 * time.Second
}
