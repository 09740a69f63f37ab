package jobtitleprovider

import (
	"hirex-backend/db"
	jobtitlestore "hirex-backend/lib/dicts/job-title/store"
	initchecker "hirex-backend/lib/utils/init-checker"
	dictapimodels "hirex-backend/models/api/dict"
	"strings"
)

type Provider interface {
	FindByName(name string) (list []dictapimodels.JobTitleView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(jobtitlestore.NewInstance(db.DB))
}

func NewInstance(store jobtitlestore.Provider) Provider {
	initchecker.CheckInit("store", store)
	return impl{store: store}
}

type impl struct {
	store jobtitlestore.Provider
}

func (i impl) FindByName(name string) ([]dictapimodels.JobTitleView, error) {
	list, err := i.store.FindByName(strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.JobTitleView, 0, len(list))
	for _, rec := range list {
		result = append(result, dictapimodels.JobTitleConvert(rec))
	}
	return result, nil
}
