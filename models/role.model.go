package models

import (
	"gorm.io/gorm"
)

// Role is a named bundle of permission grants. System roles are seeded
// and cannot be deleted; any role is deletable only while no grant or
// user assignment references it.
type Role struct {
	gorm.Model
	Name            string `json:"name" gorm:"uniqueIndex;not null"` // e.g. "STUDENT", "INSTRUCTOR", "ADMIN"
	PermissionLevel int    `json:"permission_level" gorm:"default:0"`
	IsSystemRole    bool   `json:"is_system_role" gorm:"default:false"`
}

// UserRole assigns a role to a user. A user may hold several active
// roles at once; deactivated rows keep the assignment history.
type UserRole struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"index;not null"`
	RoleID   uint `json:"role_id" gorm:"index;not null"`
	IsActive bool `json:"is_active" gorm:"default:true"`
	User     User `json:"-" gorm:"foreignKey:UserID"`
	Role     Role `json:"role" gorm:"foreignKey:RoleID"`
}
