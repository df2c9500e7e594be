package config

// Permission names used by the route table.
const (
	PermCreateMonster  = "createMonster"
	PermGetMonsterGold = "getMonsterGold"
	PermGetUsers       = "getUsers"
	PermManageUsers    = "manageUsers"
	PermManageMonsters = "manageMonsters"
)

// RoleSuperAdmin is exempt from author-ownership restrictions.
const RoleSuperAdmin = "superAdmin"

// roleRights maps role name to the permissions it grants beyond authenticated access.
// Built once at process start, read-only afterwards.
var roleRights = map[string][]string{
	"user":       {},
	"admin":      {PermCreateMonster, PermGetMonsterGold},
	"superAdmin": {PermGetUsers, PermManageUsers, PermManageMonsters},
}

// Roles returns the known role names.
func Roles() []string {
	roles := make([]string, 0, len(roleRights))
	for role := range roleRights {
		roles = append(roles, role)
	}
	return roles
}

// RoleRights returns the permission set for a role.
// Unknown roles get an empty set, same as roles that grant nothing extra.
func RoleRights(role string) []string {
	return roleRights[role]
}

// HasPermission reports whether the role grants the named permission.
func HasPermission(role, permission string) bool {
	for _, p := range roleRights[role] {
		if p == permission {
			return true
		}
	}
	return false
}
