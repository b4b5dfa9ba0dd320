// Package rbac holds the fixed permission catalog and the role ->
// permission lookup. The catalog is seed data: roles and codes are
// never created or edited at runtime by end users.
package rbac

import (
	"context"

	"gorm.io/gorm"

	"github.com/diewo77/go-crm/internal/models"
)

// Role names. "gestion" is the admin role; "vente" is a legacy alias
// for the sales role still present in older databases.
const (
	RoleAdmin      = "gestion"
	RoleSales      = "commercial"
	RoleSalesAlias = "vente"
	RoleSupport    = "support"
)

// Permission codes in dotted resource.action form.
const (
	PermClientRead    = "client.read"
	PermClientWrite   = "client.write"
	PermContractRead  = "contract.read"
	PermContractWrite = "contract.write"
	PermEventRead     = "event.read"
	PermEventWrite    = "event.write"
	PermUserRead      = "user.read"
	PermUserWrite     = "user.write"
	PermUserDelete    = "user.delete"
)

// PermissionSpec is one catalog entry.
type PermissionSpec struct {
	Code        string
	Description string
}

// Catalog returns every permission the system knows about.
func Catalog() []PermissionSpec {
	return []PermissionSpec{
		{PermClientRead, "Read client data"},
		{PermClientWrite, "Create or update clients"},
		{PermContractRead, "Read contract data"},
		{PermContractWrite, "Create or update contracts"},
		{PermEventRead, "Read event data"},
		{PermEventWrite, "Create or update events"},
		{PermUserRead, "Read collaborator accounts"},
		{PermUserWrite, "Create or update collaborator accounts"},
		{PermUserDelete, "Delete collaborator accounts"},
	}
}

// RoleGrants maps each seeded role to its permission codes.
// The commercial role holds event.write because it creates events;
// the business-rule stage still denies commercial event updates and
// support event creation on top of these grants.
func RoleGrants() map[string][]string {
	return map[string][]string{
		RoleAdmin: {
			PermClientRead, PermClientWrite,
			PermContractRead, PermContractWrite,
			PermEventRead, PermEventWrite,
			PermUserRead, PermUserWrite, PermUserDelete,
		},
		RoleSales: {
			PermClientRead, PermClientWrite,
			PermContractRead, PermContractWrite,
			PermEventRead, PermEventWrite,
		},
		RoleSupport: {
			PermClientRead, PermContractRead,
			PermEventRead, PermEventWrite,
		},
	}
}

// IsAdmin reports whether the role name is the admin role.
func IsAdmin(role string) bool { return role == RoleAdmin }

// IsSales reports whether the role name is the sales role, accepting
// the legacy alias.
func IsSales(role string) bool { return role == RoleSales || role == RoleSalesAlias }

// IsSupport reports whether the role name is the support role.
func IsSupport(role string) bool { return role == RoleSupport }

// PermissionsFor returns the seeded permission codes for a role name
// as a set. Unknown or empty roles get the empty set, never an error:
// a principal without a role simply has zero permissions. The legacy
// "vente" alias resolves to the canonical commercial role.
func PermissionsFor(ctx context.Context, db *gorm.DB, role string) (map[string]struct{}, error) {
	perms := make(map[string]struct{})
	if role == "" {
		return perms, nil
	}
	if role == RoleSalesAlias {
		role = RoleSales
	}

	var r models.Role
	err := db.WithContext(ctx).Where("name = ?", role).First(&r).Error
	if err == gorm.ErrRecordNotFound {
		return perms, nil
	}
	if err != nil {
		return nil, err
	}

	var codes []string
	err = db.WithContext(ctx).
		Model(&models.Permission{}).
		Joins("JOIN role_permissions rp ON rp.permission_id = permissions.id").
		Where("rp.role_id = ?", r.ID).
		Pluck("permissions.code", &codes).Error
	if err != nil {
		return nil, err
	}
	for _, code := range codes {
		perms[code] = struct{}{}
	}
	return perms, nil
}

// Has reports set membership for a permission code.
func Has(perms map[string]struct{}, code string) bool {
	_, ok := perms[code]
	return ok
}
