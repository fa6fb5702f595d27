package agent

import "time"

type Role string

const (
	RoleAgent                   Role = "agent"
	RoleAdmin                   Role = "admin"
	RoleInformaticien           Role = "informaticien"
	RoleAnalysteInformaticienne Role = "analyste_informaticienne"
	RoleSuperviseur             Role = "superviseur"
	RoleAgentAdministratif      Role = "agent_administratif"
	RoleChargeAdministration    Role = "charge_administration"
)

// Roles lists every role an agent may hold; each maps to a pay-parameter
// set with the plain agent set as fallback.
var Roles = []Role{
	RoleAgent,
	RoleAdmin,
	RoleInformaticien,
	RoleAnalysteInformaticienne,
	RoleSuperviseur,
	RoleAgentAdministratif,
	RoleChargeAdministration,
}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Agent is an employee whose attendance is tracked.
type Agent struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
