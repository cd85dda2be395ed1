// internal/workers/notification/notify-match/handler.go
package notifymatch

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	commonaws "unrc-workers/internal/common/aws"
	"unrc-workers/internal/common/logger"
	"unrc-workers/internal/models"
)

const (
	TaskType = "notify-match"
)

var (
	ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")
)

// Define interfaces for mocking
type EmailSender interface {
	SendPlainEmail(ctx context.Context, from, to, subject, body string) (string, error)
}

type SMSSender interface {
	PublishSMS(ctx context.Context, phoneNumber, message string) (string, error)
}

type Handler struct {
	config      *Config
	db          *sql.DB
	logger      logger.Logger
	emailSender EmailSender
	smsSender   SMSSender
	templateMap map[string]map[string]string
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) (*Handler, error) {
	sesClient, err := commonaws.NewSESClient(context.Background(), config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("create SES client: %w", err)
	}
	snsClient, err := commonaws.NewSNSClient(context.Background(), config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("create SNS client: %w", err)
	}

	return &Handler{
		config:      config,
		db:          db,
		logger:      log.WithFields(map[string]interface{}{"taskType": TaskType}),
		emailSender: sesClient,
		smsSender:   snsClient,
		templateMap: loadTemplates(),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "NOTIFICATION_SEND_FAILED"
		retries := int32(0)
		if errors.Is(err, ErrNotificationSendFailed) {
			retries = 3
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.StudentID == "" || input.OpportunityID == "" {
		return nil, fmt.Errorf("studentId and opportunityId are required")
	}

	notificationType := input.NotificationType
	if notificationType == "" {
		notificationType = TypeMatchFound
	}

	sentAt := time.Now().UTC().Format(time.RFC3339)
	notificationID := uuid.New().String()

	// Scores below the floor are not worth interrupting a student for
	if input.CompatibilityScore < h.config.MinNotifyScore {
		h.logger.Info("score below notification threshold", map[string]interface{}{
			"studentId":     input.StudentID,
			"opportunityId": input.OpportunityID,
			"score":         input.CompatibilityScore,
		})
		return &Output{
			NotificationID: notificationID,
			Status:         StatusSkipped,
			Channels:       []string{},
			SentAt:         sentAt,
		}, nil
	}

	email, phone, err := h.getStudentContact(ctx, input.StudentID)
	if err != nil {
		h.logger.Warn("recipient not found", map[string]interface{}{
			"studentId": input.StudentID,
		})
		return &Output{
			NotificationID: notificationID,
			Status:         StatusDisabled,
			Channels:       []string{},
			SentAt:         sentAt,
		}, nil
	}

	template, exists := h.templateMap[notificationType]
	if !exists {
		return nil, fmt.Errorf("template not found for type: %s", notificationType)
	}

	data := map[string]interface{}{
		"studentId":        input.StudentID,
		"opportunityId":    input.OpportunityID,
		"opportunityTitle": input.OpportunityTitle,
		"companyName":      input.CompanyName,
		"score":            fmt.Sprintf("%.2f", input.CompatibilityScore),
	}
	for k, v := range input.Metadata {
		data[k] = v
	}

	subject := renderTemplate(template["subject"], data)
	body := renderTemplate(template["body"], data)

	var channels []string

	if h.config.EmailEnabled && email != "" {
		if _, err := h.emailSender.SendPlainEmail(ctx, h.config.FromEmail, email, subject, body); err != nil {
			h.logger.Error("email send failed", map[string]interface{}{
				"error": err,
				"email": email,
			})
			h.recordNotification(ctx, notificationID, input, notificationType, "email", StatusFailed, data)
			return &Output{NotificationID: notificationID, Status: StatusFailed, Channels: []string{}, SentAt: sentAt}, nil
		}
		channels = append(channels, "email")
	}

	// SMS is reserved for standout matches
	if h.config.SMSEnabled && phone != "" && input.CompatibilityScore >= h.config.SMSScoreThreshold {
		if _, err := h.smsSender.PublishSMS(ctx, phone, body); err != nil {
			h.logger.Error("SMS send failed", map[string]interface{}{
				"error": err,
				"phone": phone,
			})
			h.recordNotification(ctx, notificationID, input, notificationType, strings.Join(channels, ","), StatusFailed, data)
			return &Output{NotificationID: notificationID, Status: StatusFailed, Channels: channels, SentAt: sentAt}, nil
		}
		channels = append(channels, "sms")
	}

	status := StatusDisabled
	if len(channels) > 0 {
		status = StatusSent
	}
	if channels == nil {
		channels = []string{}
	}

	h.recordNotification(ctx, notificationID, input, notificationType, strings.Join(channels, ","), status, data)

	return &Output{
		NotificationID: notificationID,
		Status:         status,
		Channels:       channels,
		SentAt:         sentAt,
	}, nil
}

func (h *Handler) getStudentContact(ctx context.Context, studentID string) (string, string, error) {
	var email, phone string
	err := h.db.QueryRowContext(ctx,
		`SELECT email, COALESCE(phone, '') FROM students WHERE id = $1`, studentID).
		Scan(&email, &phone)
	return email, phone, err
}

// recordNotification keeps an audit row; a failed insert does not undo an
// already delivered notification.
func (h *Handler) recordNotification(ctx context.Context, id string, input *Input, notificationType, channel, status string, payload map[string]interface{}) {
	record := models.Notification{
		ID:            id,
		RecipientID:   input.StudentID,
		RecipientType: "student",
		Type:          notificationType,
		Channel:       channel,
		Status:        status,
		Payload:       payload,
	}

	payloadJSON, err := json.Marshal(record.Payload)
	if err != nil {
		payloadJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx,
		`INSERT INTO notifications (id, recipient_id, recipient_type, type, channel, status, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`,
		record.ID, record.RecipientID, record.RecipientType, record.Type, record.Channel, record.Status, payloadJSON)
	if err != nil {
		h.logger.Warn("failed to record notification", map[string]interface{}{
			"error":          err,
			"notificationId": id,
		})
	}
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
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

// Simplified template rendering with placeholder removal for missing values
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl

	for k, v := range data {
		placeholder := "{{" + k + "}}"
		value := ""
		if s, ok := v.(string); ok {
			value = s
		} else if i, ok := v.(int); ok {
			value = fmt.Sprintf("%d", i)
		} else if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Remaining placeholders had no value; drop them
	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}

	return result
}

func loadTemplates() map[string]map[string]string {
	return map[string]map[string]string{
		TypeMatchFound: {
			"subject": "Nueva oportunidad compatible: {{opportunityTitle}}",
			"body":    "Hola, encontramos una oportunidad que encaja con tu perfil: {{opportunityTitle}} en {{companyName}}. Compatibilidad: {{score}}.",
		},
		TypeApplicationUpdate: {
			"subject": "Actualización de tu postulación",
			"body":    "Tu postulación a {{opportunityTitle}} en {{companyName}} tiene novedades.",
		},
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
