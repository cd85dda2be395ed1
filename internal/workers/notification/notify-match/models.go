// internal/workers/notification/notify-match/models.go
package notifymatch

type Input struct {
	StudentID          string                 `json:"studentId"`
	OpportunityID      string                 `json:"opportunityId"`
	OpportunityTitle   string                 `json:"opportunityTitle,omitempty"`
	CompanyName        string                 `json:"companyName,omitempty"`
	CompatibilityScore float64                `json:"compatibilityScore"`
	NotificationType   string                 `json:"notificationType,omitempty"`
	Metadata           map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"` // "sent", "failed", "skipped", "disabled"
	Channels       []string `json:"channels"`
	SentAt         string   `json:"sentAt"` // ISO 8601
}

// Notification types
const (
	TypeMatchFound        = "match_found"
	TypeApplicationUpdate = "application_update"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusSkipped  = "skipped"
	StatusDisabled = "disabled"
)
