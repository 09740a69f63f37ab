package dbmodels

import (
	"regexp"

	"github.com/pkg/errors"
)

var departmentCodeRe = regexp.MustCompile(`^[A-Z]+$`)

type Department struct {
	BaseModel
	Name            string  `gorm:"type:varchar(255)"`
	Code            string  `gorm:"type:varchar(20);uniqueIndex"`
	DUHeadID        *string `gorm:"type:varchar(36)"`
	DUHead          *User   `gorm:"foreignKey:DUHeadID"`
	CDOID           *string `gorm:"type:varchar(36)"`
	CDO             *User   `gorm:"foreignKey:CDOID"`
	RecruiterLeadID *string `gorm:"type:varchar(36)"`
	RecruiterLead   *User   `gorm:"foreignKey:RecruiterLeadID"`
}

func (d Department) Validate() error {
	if d.Name == "" {
		return errors.New("department name is required")
	}
	if !departmentCodeRe.MatchString(d.Code) {
		return errors.New("department code must contain upper-case letters only")
	}
	return nil
}
