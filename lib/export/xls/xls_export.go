package xlsexport

import (
	"bytes"
	dbmodels "hirex-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportJobRequisitionList(list []dbmodels.JobRequisition) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const dateLayout = "02.01.2006"

var jobRequisitionHeaders = []string{"JR Number", "Job Title", "Department", "Hiring Manager", "Positions", "Primary Skills", "Locations", "Priority", "Status", "Recruiter Lead", "Created"}

func (i impl) ExportJobRequisitionList(list []dbmodels.JobRequisition) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, jobRequisitionHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(list) != 0 {
		_, err = writeJobRequisitionData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx rows")
		}
	}
	if err = f.SetSheetName(sheet, "Job Requisitions"); err != nil {
		return nil, errors.Wrap(err, "failed to name xlsx sheet")
	}
	return f.WriteToBuffer()
}

func writeJobRequisitionData(f *excelize.File, sheet string, list []dbmodels.JobRequisition, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(jobRequisitionHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		values := []interface{}{
			item.GetJrID(),
			item.GetJobTitleName(),
			"",
			"",
			item.NumberOfPositions,
			strings.Join(item.PrimarySkills, ", "),
			strings.Join(item.WorkLocations, ", "),
			string(item.Priority),
			string(item.Status),
			"",
			item.CreatedAt.Format(dateLayout),
		}
		if item.Department != nil {
			values[2] = item.Department.Name
		}
		if item.HiringManager != nil {
			values[3] = item.HiringManager.GetFullName()
		}
		if item.RecruiterLead != nil {
			values[9] = item.RecruiterLead.GetFullName()
		}
		for idx, value := range values {
			if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
