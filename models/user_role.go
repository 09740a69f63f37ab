package models

type UserRole string

const (
	HiringManagerRole UserRole = "HIRING_MANAGER"
	DUHeadRole        UserRole = "DU_HEAD"
	CDORole           UserRole = "CDO"
	COORole           UserRole = "COO"
	RecruiterLeadRole UserRole = "RECRUITER_LEAD"
	RecruiterRole     UserRole = "RECRUITER"
	AdminRole         UserRole = "ADMIN"
)

var roleHumanName = map[UserRole]string{
	HiringManagerRole: "Hiring Manager",
	DUHeadRole:        "DU Head",
	CDORole:           "CDO",
	COORole:           "COO",
	RecruiterLeadRole: "Recruiter Lead",
	RecruiterRole:     "Recruiter",
	AdminRole:         "Administrator",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}

func (r UserRole) IsApprover() bool {
	return r == DUHeadRole || r == CDORole || r == COORole
}

const SystemUser = "System"
