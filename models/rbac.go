package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	JobRequisitionModule Module = "JOB_REQUISITION"
	ApprovalModule       Module = "APPROVAL"
	JobDescriptionModule Module = "JOB_DESCRIPTION"
	DictModule           Module = "DICT"
	ProfileModule        Module = "PROFILE"
)

type Permission string

const (
	CreatePermission  Permission = "CREATE"
	EditPermission    Permission = "EDIT"
	ViewPermission    Permission = "VIEW"
	ApprovePermission Permission = "APPROVE"
	ExportPermission  Permission = "EXPORT"
	ManagePermission  Permission = "MANAGE"
)
