package models

import (
	"gorm.io/gorm"
)

// Permission actions. MANAGE is its own action and is never implied by
// the four CRUD actions.
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionManage = "manage"
)

// Permission identifies one action on one resource type. Code is the
// canonical "<resource_type>:<action>" form, e.g. "courses:update".
type Permission struct {
	gorm.Model
	Code         string `json:"code" gorm:"uniqueIndex;not null"`
	ResourceType string `json:"resource_type" gorm:"index;not null"`
	Action       string `json:"action" gorm:"not null"`
}

// RolePermission is the single grant row per (role, permission) pair.
// Absence of a row is an implicit deny; there is no explicit-deny
// override across roles.
type RolePermission struct {
	gorm.Model
	RoleID       uint       `json:"role_id" gorm:"uniqueIndex:idx_role_permission;not null"`
	PermissionID uint       `json:"permission_id" gorm:"uniqueIndex:idx_role_permission;not null"`
	IsGranted    bool       `json:"is_granted" gorm:"default:false"`
	Role         Role       `json:"-" gorm:"foreignKey:RoleID"`
	Permission   Permission `json:"permission" gorm:"foreignKey:PermissionID"`
}
