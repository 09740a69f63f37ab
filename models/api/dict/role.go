package dictapimodels

import "hirex-backend/models"

type RoleView struct {
	ID   models.UserRole `json:"id"`
	Name string          `json:"name"`
}

func GetRoles() []RoleView {
	roles := []models.UserRole{
		models.HiringManagerRole,
		models.DUHeadRole,
		models.CDORole,
		models.COORole,
		models.RecruiterLeadRole,
		models.RecruiterRole,
		models.AdminRole,
	}
	result := make([]RoleView, 0, len(roles))
	for _, role := range roles {
		result = append(result, RoleView{ID: role, Name: role.ToHuman()})
	}
	return result
}
