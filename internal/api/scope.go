package api

import "strings"

// PermissionLevel selects the set of scopes requested with a token.
type PermissionLevel int

const (
	PermissionGuest PermissionLevel = iota
	PermissionUser
	PermissionAPI
	PermissionFull
)

var permissionNames = map[PermissionLevel][]string{
	PermissionGuest: {
		"view_published_products",
		"view_categories",
		"manage_my_orders",
		"manage_my_profile",
		"create_anonymous_token",
	},
	PermissionUser: {
		"view_published_products",
		"view_categories",
		"manage_my_orders",
		"manage_my_profile",
		"manage_my_shopping_lists",
	},
	PermissionAPI: {
		"manage_products",
		"manage_customers",
		"manage_orders",
	},
	PermissionFull: {
		"manage_project",
	},
}

// Scope renders the level's permission names joined with the project key,
// e.g. "view_published_products:demo view_categories:demo".
func (l PermissionLevel) Scope(projectKey string) string {
	names := permissionNames[l]
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+":"+projectKey)
	}
	return strings.Join(parts, " ")
}
