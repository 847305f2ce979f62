package middleware

import (
	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HasPermission reports whether any of the user's active roles carries a
// granted permission for (resourceType, action). The model is allow-only:
// grants union across roles, absence of a grant row is a deny, and a user
// with no active roles is always denied. Store errors are returned to the
// caller, never folded into a deny.
func HasPermission(db *gorm.DB, userID uint, resourceType, action string) (bool, error) {
	var roleIDs []uint
	if err := db.Model(&models.UserRole{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Pluck("role_id", &roleIDs).Error; err != nil {
		return false, err
	}
	if len(roleIDs) == 0 {
		return false, nil
	}

	var count int64
	err := db.Model(&models.RolePermission{}).
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Where("role_permissions.role_id IN ? AND role_permissions.is_granted = ?", roleIDs, true).
		Where("permissions.resource_type = ? AND permissions.action = ?", resourceType, action).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// HasAnyRole reports whether the user holds at least one active role
// whose name is in allowedRoles. Coarser than HasPermission; used where
// per-resource grants are unnecessary.
func HasAnyRole(db *gorm.DB, userID uint, allowedRoles ...string) (bool, error) {
	var count int64
	err := db.Model(&models.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ? AND user_roles.is_active = ?", userID, true).
		Where("roles.name IN ?", allowedRoles).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CheckPermission returns a middleware that allows the request through
// only when the caller holds a granted (resourceType, action) permission
func CheckPermission(resourceType, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized: User ID not found")
		}

		allowed, err := HasPermission(database.Database.Db, userID, resourceType, action)
		if err != nil {
			return ErrorResponse(c, fiber.StatusInternalServerError, "Server error while checking permissions!")
		}
		if !allowed {
			return ErrorResponse(c, fiber.StatusForbidden, "You do not have permission to access this resource!")
		}

		return c.Next()
	}
}

// AuthorizeRoles returns a middleware that allows the request through
// only when the caller holds one of the named roles
func AuthorizeRoles(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized: User ID not found")
		}

		allowed, err := HasAnyRole(database.Database.Db, userID, allowedRoles...)
		if err != nil {
			return ErrorResponse(c, fiber.StatusInternalServerError, "Server error while checking permissions!")
		}
		if !allowed {
			return ErrorResponse(c, fiber.StatusForbidden, "You do not have permission to access this resource!")
		}

		return c.Next()
	}
}
