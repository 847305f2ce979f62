package roleControllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateRole creates a non-system role
func CreateRole(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRole").(*struct {
		Name            string `json:"name"`
		PermissionLevel int    `json:"permission_level"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var existing models.Role
	if err := db.Where("name = ?", reqData.Name).First(&existing).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Role name already exists!")
	}

	role := models.Role{
		Name:            reqData.Name,
		PermissionLevel: reqData.PermissionLevel,
	}
	if err := db.Create(&role).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create role!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Role created successfully!", role)
}

// ListRoles returns all roles
func ListRoles(c *fiber.Ctx) error {
	var roles []models.Role
	if err := database.Database.Db.Order("permission_level desc, name asc").Find(&roles).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch roles!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Roles fetched successfully!", fiber.Map{
		"roles": roles,
	})
}

// DeleteRole removes a role. System roles and roles still referenced by
// grants or user assignments are refused.
func DeleteRole(c *fiber.Ctx) error {
	db := database.Database.Db

	var role models.Role
	if err := db.Where("id = ?", c.Params("id")).First(&role).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Role not found!")
	}
	if role.IsSystemRole {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "System roles cannot be deleted!")
	}

	var grantCount int64
	db.Model(&models.RolePermission{}).Where("role_id = ?", role.ID).Count(&grantCount)
	var assignmentCount int64
	db.Model(&models.UserRole{}).Where("role_id = ?", role.ID).Count(&assignmentCount)
	if grantCount > 0 || assignmentCount > 0 {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Role is still referenced and cannot be deleted!")
	}

	if err := db.Delete(&role).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete role!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role deleted successfully!", nil)
}

// GrantPermission upserts the single grant row for a (role, permission)
// pair. Granting twice updates the existing row rather than adding a
// second one.
func GrantPermission(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedGrant").(*struct {
		RoleID       uint `json:"role_id"`
		PermissionID uint `json:"permission_id"`
		IsGranted    bool `json:"is_granted"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var role models.Role
	if err := db.Where("id = ?", reqData.RoleID).First(&role).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Role not found!")
	}
	var permission models.Permission
	if err := db.Where("id = ?", reqData.PermissionID).First(&permission).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Permission not found!")
	}

	var grant models.RolePermission
	err := db.Where("role_id = ? AND permission_id = ?", reqData.RoleID, reqData.PermissionID).First(&grant).Error
	switch {
	case err == nil:
		grant.IsGranted = reqData.IsGranted
		if err := db.Save(&grant).Error; err != nil {
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update grant!")
		}
	case err == gorm.ErrRecordNotFound:
		grant = models.RolePermission{
			RoleID:       reqData.RoleID,
			PermissionID: reqData.PermissionID,
			IsGranted:    reqData.IsGranted,
		}
		if err := db.Create(&grant).Error; err != nil {
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create grant!")
		}
	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch grant!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Permission grant saved successfully!", grant)
}

// ListPermissions returns the permission catalog
func ListPermissions(c *fiber.Ctx) error {
	var permissions []models.Permission
	if err := database.Database.Db.Order("resource_type asc, action asc").Find(&permissions).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch permissions!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Permissions fetched successfully!", fiber.Map{
		"permissions": permissions,
	})
}

// AssignRole gives a user an active role, reactivating a previous
// assignment if one exists
func AssignRole(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserRole").(*struct {
		UserID uint `json:"user_id"`
		RoleID uint `json:"role_id"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", reqData.UserID, false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found!")
	}
	var role models.Role
	if err := db.Where("id = ?", reqData.RoleID).First(&role).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Role not found!")
	}

	var userRole models.UserRole
	err := db.Where("user_id = ? AND role_id = ?", reqData.UserID, reqData.RoleID).First(&userRole).Error
	switch {
	case err == nil:
		if userRole.IsActive {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "User already has this role!")
		}
		userRole.IsActive = true
		if err := db.Save(&userRole).Error; err != nil {
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to assign role!")
		}
	case err == gorm.ErrRecordNotFound:
		userRole = models.UserRole{
			UserID:   reqData.UserID,
			RoleID:   reqData.RoleID,
			IsActive: true,
		}
		if err := db.Create(&userRole).Error; err != nil {
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to assign role!")
		}
	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch user role!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role assigned successfully!", userRole)
}

// DeactivateUserRole turns off a user's role assignment; the row stays
// as history
func DeactivateUserRole(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserRole").(*struct {
		UserID uint `json:"user_id"`
		RoleID uint `json:"role_id"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var userRole models.UserRole
	if err := db.Where("user_id = ? AND role_id = ? AND is_active = ?", reqData.UserID, reqData.RoleID, true).First(&userRole).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Active role assignment not found!")
	}

	userRole.IsActive = false
	if err := db.Save(&userRole).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to deactivate role!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role deactivated successfully!", userRole)
}
