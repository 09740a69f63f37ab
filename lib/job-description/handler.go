package jobdescriptionhandler

import (
	"context"
	"hirex-backend/db"
	pdfexport "hirex-backend/lib/export/pdf"
	filestorage "hirex-backend/lib/file-storage"
	jobdescriptionstore "hirex-backend/lib/job-description/store"
	initchecker "hirex-backend/lib/utils/init-checker"
	"hirex-backend/models"
	jobdescriptionapimodels "hirex-backend/models/api/job-description"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	GetByJobRequisitionID(jobRequisitionID string) (jobdescriptionapimodels.JobDescriptionView, error)
	// GetPdf renders the job description and archives a copy when file storage is available.
	GetPdf(ctx context.Context, jobRequisitionID string) (file []byte, fileName string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(jobdescriptionstore.NewInstance(db.DB), filestorage.Instance)
}

func NewInstance(store jobdescriptionstore.Provider, fileStorage filestorage.Provider) Provider {
	initchecker.CheckInit(
		"jobDescriptionStore", store,
		"fileStorage", fileStorage,
	)
	return impl{
		store:       store,
		fileStorage: fileStorage,
	}
}

type impl struct {
	store       jobdescriptionstore.Provider
	fileStorage filestorage.Provider
}

func (i impl) GetByJobRequisitionID(jobRequisitionID string) (jobdescriptionapimodels.JobDescriptionView, error) {
	rec, err := i.store.GetByJobRequisitionID(jobRequisitionID)
	if err != nil {
		return jobdescriptionapimodels.JobDescriptionView{}, errors.Wrap(err, "failed to load job description")
	}
	if rec == nil {
		return jobdescriptionapimodels.JobDescriptionView{}, models.NewNotFoundError("Job description not found")
	}
	return jobdescriptionapimodels.JobDescriptionConvert(*rec), nil
}

func (i impl) GetPdf(ctx context.Context, jobRequisitionID string) ([]byte, string, error) {
	logger := log.WithField("rec_id", jobRequisitionID)
	jd, err := i.GetByJobRequisitionID(jobRequisitionID)
	if err != nil {
		return nil, "", err
	}
	file, err := pdfexport.GenerateJobDescription(jd)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to render job description")
	}
	if i.fileStorage.IsConfigured() {
		if _, err = i.fileStorage.UploadJobDescriptionPdf(ctx, jd.JrID, file); err != nil {
			logger.WithError(err).Warn("job description archive failed")
		}
	}
	return file, jd.JrID + ".pdf", nil
}
