package domain

// Permission names a single capability inside a CRM app.
type Permission string

const (
	PermManageApp     Permission = "manage_app"
	PermManageSchema  Permission = "manage_schema"
	PermManageUsers   Permission = "manage_users"
	PermManageViews   Permission = "manage_views"
	PermViewRecords   Permission = "view_records"
	PermCreateRecords Permission = "create_records"
	PermEditRecords   Permission = "edit_records"
	PermDeleteRecords Permission = "delete_records"
)

// rolePermissions is the static role → permission table. Changing this table
// does not retroactively update existing users: their stored sets must be
// re-stamped by a migration pass.
var rolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermManageApp, PermManageSchema, PermManageUsers, PermManageViews,
		PermViewRecords, PermCreateRecords, PermEditRecords, PermDeleteRecords,
	},
	RoleAdmin: {
		PermManageSchema, PermManageUsers, PermManageViews,
		PermViewRecords, PermCreateRecords, PermEditRecords, PermDeleteRecords,
	},
	RoleMember: {
		PermManageViews,
		PermViewRecords, PermCreateRecords, PermEditRecords,
	},
	RoleViewer: {
		PermViewRecords,
	},
}

// PermissionsForRole returns a fresh copy of the permission set stamped onto
// users holding the role. Unknown roles get no permissions.
func PermissionsForRole(r Role) []Permission {
	perms := rolePermissions[r]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether the user's stamped set contains p.
func (u *CrmUser) HasPermission(p Permission) bool {
	for _, have := range u.Permissions {
		if have == p {
			return true
		}
	}
	return false
}
