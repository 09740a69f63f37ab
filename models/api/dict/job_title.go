package dictapimodels

import dbmodels "hirex-backend/models/db"

type JobTitleView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func JobTitleConvert(rec dbmodels.JobTitle) JobTitleView {
	return JobTitleView{
		ID:   rec.ID,
		Name: rec.Name,
	}
}

type JobTitleFind struct {
	Name string `json:"name"` // part of the title, case insensitive
}
