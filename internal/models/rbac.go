package models

import "time"

// Role groups permissions under a unique name (gestion, commercial,
// support). Roles are created by the seed procedure, never at runtime.
type Role struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:64;uniqueIndex;not null"`
	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Users       []User       `gorm:"foreignKey:RoleID"`
	Permissions []Permission `gorm:"many2many:role_permissions"`
}

// Permission is a single entry of the immutable permission catalog.
// Codes use the dotted resource.action form, e.g. "client.write".
type Permission struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"size:128;uniqueIndex;not null"`
	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Roles []Role `gorm:"many2many:role_permissions"`
}

// RolePermission is the explicit join row between roles and permissions.
// Declared as a model so the composite primary key enforces uniqueness
// per (role, permission) pair at the database level.
type RolePermission struct {
	RoleID       uint `gorm:"primaryKey"`
	PermissionID uint `gorm:"primaryKey"`
}
