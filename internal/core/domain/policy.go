package domain

// Action is an operation a requester attempts against a user record.
type Action string

const (
	ActionList       Action = "list"
	ActionView       Action = "view"
	ActionCreate     Action = "create"
	ActionUpdate     Action = "update"
	ActionChangeRole Action = "change_role"
	ActionDelete     Action = "delete"
)

// assignableRoles defines which roles each tier may hand out on create or update.
// super_admin is never assignable.
var assignableRoles = map[Role][]Role{
	RoleSuperAdmin: {RoleAdmin, RoleUser},
	RoleAdmin:      {RoleUser},
}

// AssignableRoles returns the roles requester may assign. Empty for RoleUser.
func AssignableRoles(requester Role) []Role {
	return assignableRoles[requester]
}

// CanAssign reports whether requester may give a user the target role.
func CanAssign(requester, target Role) bool {
	for _, r := range assignableRoles[requester] {
		if r == target {
			return true
		}
	}
	return false
}

// CanPerform reports whether a requester holding one role may apply action to
// a record holding target. For ActionCreate, target is the role being created;
// pass "" to ask whether the requester may create anything at all.
//
// Ownership (a plain user touching only their own record) depends on ids and
// is checked by Authorize.
func CanPerform(requester Role, action Action, target Role) bool {
	if !requester.Valid() {
		return false
	}

	switch action {
	case ActionList:
		return true
	case ActionView, ActionUpdate:
		if target == RoleSuperAdmin {
			return requester == RoleSuperAdmin
		}
		if requester == RoleUser {
			return target == RoleUser
		}
		return true
	case ActionCreate:
		if target == "" {
			return len(assignableRoles[requester]) > 0
		}
		return CanAssign(requester, target)
	case ActionChangeRole:
		return requester == RoleSuperAdmin
	case ActionDelete:
		return requester == RoleSuperAdmin && target != RoleSuperAdmin
	}
	return false
}

// Authorize applies CanPerform plus the ownership rule and returns a
// ForbiddenError describing the first rule that failed.
func Authorize(requester *User, action Action, target *User) error {
	targetRole := Role("")
	if target != nil {
		targetRole = target.Role
	}

	if !CanPerform(requester.Role, action, targetRole) {
		return denial(requester.Role, action, targetRole)
	}

	if requester.IsUser() && target != nil && requester.ID != target.ID {
		switch action {
		case ActionView, ActionUpdate:
			return Forbidden("Unauthorized")
		}
	}
	return nil
}

func denial(requester Role, action Action, target Role) error {
	switch action {
	case ActionUpdate:
		if target == RoleSuperAdmin && requester != RoleSuperAdmin {
			return Forbidden("Unauthorized to modify super admin users")
		}
	case ActionChangeRole:
		return Forbidden("Unauthorized to modify user roles")
	case ActionDelete:
		if requester != RoleSuperAdmin {
			return Forbidden("Unauthorized to delete users")
		}
		return Forbidden("Super admin users cannot be deleted")
	}
	return Forbidden("Unauthorized")
}

// ListScope narrows a listing to what requester may see.
type ListScope struct {
	ExcludeRoles []Role
	OnlyID       string
}

// ScopeFor returns the visibility scope for a list request.
func ScopeFor(requester *User) ListScope {
	switch requester.Role {
	case RoleSuperAdmin:
		return ListScope{}
	case RoleAdmin:
		return ListScope{ExcludeRoles: []Role{RoleSuperAdmin}}
	default:
		return ListScope{OnlyID: requester.ID}
	}
}
