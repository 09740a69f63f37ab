package pdfexport

import (
	"bytes"
	jobdescriptionapimodels "hirex-backend/models/api/job-description"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateJobDescription(t *testing.T) {
	minExp, maxExp := 3, 5
	jd := jobdescriptionapimodels.JobDescriptionView{
		JrID:              "EXP-2025-DAI-001",
		JobTitle:          "Data Engineer",
		PrimarySkills:     []string{"Go", "SQL"},
		WorkLocations:     []string{"Pune"},
		MinExperience:     &minExp,
		MaxExperience:     &maxExp,
		NumberOfPositions: 2,
		JobPurpose:        "Build <pipelines> & dashboards",
	}

	file, err := GenerateJobDescription(jd)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(file, []byte("%PDF-")))
}

func TestTemplateFuncs(t *testing.T) {
	list := tplFuncs["list"].(func([]string) string)
	require.Equal(t, "Not specified", list(nil))
	require.Equal(t, "Go, (b)", list([]string{"Go", " ", "<b>"}))

	experience := tplFuncs["experience"].(func(*int, *int) string)
	maxExp := 4
	require.Equal(t, "0–4 years", experience(nil, &maxExp))
	require.Equal(t, "Not specified", experience(nil, nil))
}
