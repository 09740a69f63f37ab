package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"hirex-backend/models"
	"time"

	"github.com/pkg/errors"
)

type NotificationLog struct {
	BaseModel
	JobRequisitionID string                    `gorm:"type:varchar(36);index"`
	RecipientEmail   string                    `gorm:"type:varchar(255)"`
	RecipientName    string                    `gorm:"type:varchar(255)"`
	Kind             models.NotificationKind   `gorm:"type:varchar(50)"`
	Context          NotificationContext       `gorm:"type:jsonb"`
	Status           models.NotificationStatus `gorm:"type:varchar(20);index"`
	Attempts         int
	LastError        string
	LastAttemptAt    *time.Time
}

// NotificationContext is the JR snapshot rendered into a notification.
type NotificationContext struct {
	JrID             string `json:"jr_id"`
	JobTitle         string `json:"job_title"`
	HiringManager    string `json:"hiring_manager,omitempty"`
	Locations        string `json:"locations,omitempty"`
	Experience       string `json:"experience,omitempty"`
	Skills           string `json:"skills,omitempty"`
	ApproverName     string `json:"approver_name,omitempty"`
	ApproverRole     string `json:"approver_role,omitempty"`
	Comments         string `json:"comments,omitempty"`
	Status           string `json:"status,omitempty"`
	PendingSinceDays int    `json:"pending_since_days,omitempty"`
}

func (j NotificationContext) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *NotificationContext) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("unexpected notification context type %T", value)
	}
	return json.Unmarshal(data, j)
}
