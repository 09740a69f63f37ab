package dbmodels

import (
	"fmt"
	"hirex-backend/models"
	"strings"
)

type User struct {
	BaseModel
	FirstName    string          `gorm:"type:varchar(150)"`
	LastName     string          `gorm:"type:varchar(150)"`
	Email        string          `gorm:"type:varchar(255);uniqueIndex"`
	Role         models.UserRole `gorm:"type:varchar(50);index"`
	IsActive     bool            `gorm:"index"`
	DepartmentID *string         `gorm:"type:varchar(36)"`
}

func (r User) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", r.FirstName, r.LastName))
}
