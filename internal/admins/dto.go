package admins

import "time"

// AdminResponse is the outward-facing representation of an admin.
type AdminResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Enabled   bool      `json:"enabled"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoleResponse is the outward-facing representation of a role.
type RoleResponse struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	NameAr string `json:"nameAr"`
	NameEn string `json:"nameEn"`
}

func toResponse(a Admin) AdminResponse {
	roles := a.RoleCodes()
	if roles == nil {
		roles = []string{}
	}
	return AdminResponse{
		ID:        a.ID,
		Username:  a.Username,
		FullName:  a.FullName,
		Enabled:   a.Enabled,
		Roles:     roles,
		CreatedAt: a.CreatedAt,
	}
}

func toRoleResponse(r Role) RoleResponse {
	return RoleResponse{ID: r.ID, Code: r.Code, NameAr: r.NameAr, NameEn: r.NameEn}
}
