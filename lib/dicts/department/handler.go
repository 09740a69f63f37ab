package departmentprovider

import (
	"hirex-backend/db"
	departmentstore "hirex-backend/lib/dicts/department/store"
	usersstore "hirex-backend/lib/users/store"
	initchecker "hirex-backend/lib/utils/init-checker"
	"hirex-backend/models"
	dictapimodels "hirex-backend/models/api/dict"
	dbmodels "hirex-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(request dictapimodels.DepartmentData) (id string, err error)
	Update(id string, request dictapimodels.DepartmentData) error
	Get(id string) (item dictapimodels.DepartmentView, err error)
	List() (list []dictapimodels.DepartmentView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(departmentstore.NewInstance(db.DB), usersstore.NewInstance(db.DB))
}

func NewInstance(departmentStore departmentstore.Provider, userStore usersstore.Provider) Provider {
	instance := impl{
		store:     departmentStore,
		userStore: userStore,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"userStore", instance.userStore,
	)
	return instance
}

type impl struct {
	store     departmentstore.Provider
	userStore usersstore.Provider
}

func (i impl) Create(request dictapimodels.DepartmentData) (id string, err error) {
	if err = request.Validate(); err != nil {
		return "", models.NewValidationError("%s", err.Error())
	}
	if err = i.checkCodeFree(request.Code, ""); err != nil {
		return "", err
	}
	rec := dbmodels.Department{
		Name: request.Name,
		Code: request.Code,
	}
	rec.DUHeadID, err = i.approverID(request.DUHeadID, models.DUHeadRole)
	if err != nil {
		return "", err
	}
	rec.CDOID, err = i.approverID(request.CDOID, models.CDORole)
	if err != nil {
		return "", err
	}
	rec.RecruiterLeadID, err = i.approverID(request.RecruiterLeadID, models.RecruiterLeadRole)
	if err != nil {
		return "", err
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "failed to create department")
	}
	log.
		WithField("department_code", rec.Code).
		WithField("rec_id", id).
		Info("department created")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.DepartmentData) error {
	logger := log.WithField("rec_id", id)
	if err := request.Validate(); err != nil {
		return models.NewValidationError("%s", err.Error())
	}
	if _, err := i.Get(id); err != nil {
		return err
	}
	if err := i.checkCodeFree(request.Code, id); err != nil {
		return err
	}
	duHeadID, err := i.approverID(request.DUHeadID, models.DUHeadRole)
	if err != nil {
		return err
	}
	cdoID, err := i.approverID(request.CDOID, models.CDORole)
	if err != nil {
		return err
	}
	recruiterLeadID, err := i.approverID(request.RecruiterLeadID, models.RecruiterLeadRole)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name":              request.Name,
		"code":              request.Code,
		"du_head_id":        duHeadID,
		"cdo_id":            cdoID,
		"recruiter_lead_id": recruiterLeadID,
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	logger.Info("department updated")
	return nil
}

func (i impl) Get(id string) (dictapimodels.DepartmentView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.DepartmentView{}, err
	}
	if rec == nil {
		return dictapimodels.DepartmentView{}, models.NewNotFoundError("Department not found")
	}
	return dictapimodels.DepartmentConvert(*rec), nil
}

func (i impl) List() ([]dictapimodels.DepartmentView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.DepartmentView, 0, len(list))
	for _, rec := range list {
		result = append(result, dictapimodels.DepartmentConvert(rec))
	}
	return result, nil
}

func (i impl) checkCodeFree(code, exceptID string) error {
	rec, err := i.store.FindByCode(code)
	if err != nil {
		return err
	}
	if rec != nil && rec.ID != exceptID {
		return models.NewConflictError("Department code %v is already in use", code)
	}
	return nil
}

// approverID checks that the assigned user holds the role the slot expects.
func (i impl) approverID(userID string, role models.UserRole) (*string, error) {
	if userID == "" {
		return nil, nil
	}
	user, err := i.userStore.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewValidationError("%v not found", role.ToHuman())
	}
	if user.Role != role {
		return nil, models.NewValidationError("User %v does not have the %v role", user.GetFullName(), role.ToHuman())
	}
	return &user.ID, nil
}
