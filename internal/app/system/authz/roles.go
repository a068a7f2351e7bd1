// internal/app/system/authz/roles.go
package authz

// Roles allowed to manage content and run bulk imports.
var ContentManagerRoles = []string{"teacher", "admin"}
