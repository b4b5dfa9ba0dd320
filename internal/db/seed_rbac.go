package db

import (
	"gorm.io/gorm"

	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/rbac"
	"github.com/diewo77/go-crm/internal/secrets"
)

// SeedRBAC creates the fixed roles, permissions and role-permission
// links. The procedure is idempotent: missing rows are created,
// descriptions are refreshed, links are never duplicated. Run once at
// deployment time, after Migrate.
func SeedRBAC(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		permByCode := make(map[string]models.Permission)
		for _, spec := range rbac.Catalog() {
			var perm models.Permission
			err := tx.Where("code = ?", spec.Code).First(&perm).Error
			switch {
			case err == gorm.ErrRecordNotFound:
				perm = models.Permission{Code: spec.Code, Description: spec.Description}
				if err := tx.Create(&perm).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			case perm.Description != spec.Description:
				perm.Description = spec.Description
				if err := tx.Save(&perm).Error; err != nil {
					return err
				}
			}
			permByCode[spec.Code] = perm
		}

		for roleName, codes := range rbac.RoleGrants() {
			var role models.Role
			err := tx.Where("name = ?", roleName).First(&role).Error
			if err == gorm.ErrRecordNotFound {
				role = models.Role{Name: roleName, Description: "Role " + roleName}
				err = tx.Create(&role).Error
			}
			if err != nil {
				return err
			}

			for _, code := range codes {
				perm := permByCode[code]
				link := models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}
				if err := tx.FirstOrCreate(&link, link).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// BootstrapAdmin ensures an initial gestion collaborator exists so a
// fresh deployment can log in. Existing accounts are left untouched.
func BootstrapAdmin(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := secrets.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var role models.Role
	if err := db.Where("name = ?", rbac.RoleAdmin).First(&role).Error; err != nil {
		return nil, err
	}

	user = models.User{Email: email, PasswordHash: hash, RoleID: &role.ID}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
