package jobdescriptionhandler

import (
	"bytes"
	"context"
	"hirex-backend/lib/testutil"
	"hirex-backend/models"
	dbmodels "hirex-backend/models/db"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeFileStorage struct {
	configured bool
	err        error
	uploaded   map[string][]byte
}

func (f *fakeFileStorage) IsConfigured() bool {
	return f.configured
}

func (f *fakeFileStorage) UploadJobDescriptionPdf(_ context.Context, jrID string, file []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.uploaded == nil {
		f.uploaded = map[string][]byte{}
	}
	f.uploaded[jrID] = file
	return "job-descriptions/" + jrID + ".pdf", nil
}

func seedJobDescription(t *testing.T, st *testutil.Store) string {
	t.Helper()
	jrID := "EXP-2025-DAI-001"
	jr := st.PutJobRequisition(dbmodels.JobRequisition{JrID: &jrID, Status: models.JRStatusApproved})
	_, err := st.JobDescriptions().Create(dbmodels.JobDescription{
		JobRequisitionID:  jr.ID,
		JrID:              jrID,
		JobTitle:          "Data Engineer",
		PrimarySkills:     []string{"Go"},
		NumberOfPositions: 1,
	})
	require.NoError(t, err)
	return jr.ID
}

func TestGetByJobRequisitionID(t *testing.T) {
	st := testutil.NewStore()
	id := seedJobDescription(t, st)
	handler := NewInstance(st.JobDescriptions(), &fakeFileStorage{})

	view, err := handler.GetByJobRequisitionID(id)
	require.NoError(t, err)
	require.Equal(t, "EXP-2025-DAI-001", view.JrID)
	require.Equal(t, "Data Engineer", view.JobTitle)

	_, err = handler.GetByJobRequisitionID("missing")
	require.True(t, models.IsErrorKind(err, models.ErrKindNotFound))
}

func TestGetPdfArchivesCopy(t *testing.T) {
	st := testutil.NewStore()
	id := seedJobDescription(t, st)
	storage := &fakeFileStorage{configured: true}
	handler := NewInstance(st.JobDescriptions(), storage)

	file, name, err := handler.GetPdf(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "EXP-2025-DAI-001.pdf", name)
	require.True(t, bytes.HasPrefix(file, []byte("%PDF-")))
	require.Equal(t, file, storage.uploaded["EXP-2025-DAI-001"])
}

func TestGetPdfArchiveIsBestEffort(t *testing.T) {
	st := testutil.NewStore()
	id := seedJobDescription(t, st)

	t.Run("upload fails", func(t *testing.T) {
		handler := NewInstance(st.JobDescriptions(), &fakeFileStorage{configured: true, err: errors.New("s3 down")})
		file, _, err := handler.GetPdf(context.Background(), id)
		require.NoError(t, err)
		require.NotEmpty(t, file)
	})
	t.Run("not configured", func(t *testing.T) {
		storage := &fakeFileStorage{}
		handler := NewInstance(st.JobDescriptions(), storage)
		_, _, err := handler.GetPdf(context.Background(), id)
		require.NoError(t, err)
		require.Empty(t, storage.uploaded)
	})
}
