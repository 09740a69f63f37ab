package dictapimodels

import (
	dbmodels "hirex-backend/models/db"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var codeRe = regexp.MustCompile(`^[A-Z]+$`)

type DepartmentData struct {
	Name            string `json:"name"`
	Code            string `json:"code"` // used in JR numbers, e.g. DAI
	DUHeadID        string `json:"du_head_id"`
	CDOID           string `json:"cdo_id"`
	RecruiterLeadID string `json:"recruiter_lead_id"`
}

func (c DepartmentData) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("department name is required")
	}
	if !codeRe.MatchString(c.Code) {
		return errors.New("department code must contain upper-case letters only")
	}
	return nil
}

type DepartmentView struct {
	DepartmentData
	ID                string `json:"id"`
	DUHeadName        string `json:"du_head_name"`
	CDOName           string `json:"cdo_name"`
	RecruiterLeadName string `json:"recruiter_lead_name"`
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	result := DepartmentView{
		DepartmentData: DepartmentData{
			Name: rec.Name,
			Code: rec.Code,
		},
		ID: rec.ID,
	}
	if rec.DUHeadID != nil {
		result.DUHeadID = *rec.DUHeadID
	}
	if rec.DUHead != nil {
		result.DUHeadName = rec.DUHead.GetFullName()
	}
	if rec.CDOID != nil {
		result.CDOID = *rec.CDOID
	}
	if rec.CDO != nil {
		result.CDOName = rec.CDO.GetFullName()
	}
	if rec.RecruiterLeadID != nil {
		result.RecruiterLeadID = *rec.RecruiterLeadID
	}
	if rec.RecruiterLead != nil {
		result.RecruiterLeadName = rec.RecruiterLead.GetFullName()
	}
	return result
}
