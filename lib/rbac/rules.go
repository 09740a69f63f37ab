package rbac

import (
	"hirex-backend/models"
)

var (
	AllRoles        = []models.UserRole{models.HiringManagerRole, models.DUHeadRole, models.CDORole, models.COORole, models.RecruiterLeadRole, models.RecruiterRole, models.AdminRole}
	CreatorRoleSet  = []models.UserRole{models.HiringManagerRole, models.DUHeadRole, models.CDORole, models.COORole, models.AdminRole}
	ApproverRoleSet = []models.UserRole{models.DUHeadRole, models.CDORole, models.COORole}
	AdminRoleSet    = []models.UserRole{models.AdminRole}
)

func (i *impl) initRules() {
	i.jobRequisition()
	i.approval()
	i.jobDescription()
	i.dicts()
	i.profile()
}

func (i *impl) jobRequisition() {
	// VIEW
	i.RegisterRule(models.JobRequisitionModule, models.ViewPermission, AllRoles, "/api/v1/job-requisitions/list [post]", nil)
	i.RegisterRule(models.JobRequisitionModule, models.ViewPermission, AllRoles, "/api/v1/job-requisitions/{id} [get]", nil)
	// CREATE/EDIT, ownership is checked by the handler
	i.RegisterRule(models.JobRequisitionModule, models.CreatePermission, CreatorRoleSet, "/api/v1/job-requisitions [post]", nil)
	i.RegisterRule(models.JobRequisitionModule, models.EditPermission, CreatorRoleSet, "/api/v1/job-requisitions/{id} [put]", nil)
	i.RegisterRule(models.JobRequisitionModule, models.EditPermission, CreatorRoleSet, "/api/v1/job-requisitions/{id} [delete]", nil)
	i.RegisterRule(models.JobRequisitionModule, models.EditPermission, CreatorRoleSet, "/api/v1/job-requisitions/{id}/revise [post]", nil)
	// EXPORT
	i.RegisterRule(models.JobRequisitionModule, models.ExportPermission, AllRoles, "/api/v1/job-requisitions/export [post]", nil)
}

func (i *impl) approval() {
	// VIEW
	i.RegisterRule(models.ApprovalModule, models.ViewPermission, AllRoles, "/api/v1/job-requisitions/{id}/approval-history [get]", nil)
	i.RegisterRule(models.ApprovalModule, models.ViewPermission, AllRoles, "/api/v1/job-requisitions/{id}/can-approve [get]", nil)
	// APPROVE
	i.RegisterRule(models.ApprovalModule, models.ApprovePermission, ApproverRoleSet, "/api/v1/job-requisitions/{id}/approval [post]", nil)
}

func (i *impl) jobDescription() {
	i.RegisterRule(models.JobDescriptionModule, models.ViewPermission, AllRoles, "/api/v1/job-requisitions/{id}/job-description [get]", nil)
	i.RegisterRule(models.JobDescriptionModule, models.ViewPermission, AllRoles, "/api/v1/job-requisitions/{id}/job-description/pdf [get]", nil)
}

func (i *impl) dicts() {
	// VIEW
	i.RegisterRule(models.DictModule, models.ViewPermission, AllRoles, "/api/v1/dict/department [get]", nil)
	i.RegisterRule(models.DictModule, models.ViewPermission, AllRoles, "/api/v1/dict/department/{id} [get]", nil)
	i.RegisterRule(models.DictModule, models.ViewPermission, AllRoles, "/api/v1/dict/job-title/find [post]", nil)
	i.RegisterRule(models.DictModule, models.ViewPermission, AllRoles, "/api/v1/dict/role/list [get]", nil)
	// MANAGE
	i.RegisterRule(models.DictModule, models.ManagePermission, AdminRoleSet, "/api/v1/dict/department [post]", nil)
	i.RegisterRule(models.DictModule, models.ManagePermission, AdminRoleSet, "/api/v1/dict/department/{id} [put]", nil)
}

func (i *impl) profile() {
	i.RegisterRule(models.ProfileModule, models.ViewPermission, AllRoles, "/api/v1/permissions [get]", nil)
}
