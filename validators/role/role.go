package roleValidator

import (
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func CreateRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name            string `json:"name"`
			PermissionLevel int    `json:"permission_level"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		} else if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}
		if reqData.PermissionLevel < 0 {
			errors["permission_level"] = "Permission level cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Name = strings.ToUpper(strings.TrimSpace(reqData.Name))
		c.Locals("validatedRole", reqData)
		return c.Next()
	}
}

func GrantPermission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RoleID       uint `json:"role_id"`
			PermissionID uint `json:"permission_id"`
			IsGranted    bool `json:"is_granted"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.RoleID == 0 {
			errors["role_id"] = "Role ID is required!"
		}
		if reqData.PermissionID == 0 {
			errors["permission_id"] = "Permission ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGrant", reqData)
		return c.Next()
	}
}

func UserRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID uint `json:"user_id"`
			RoleID uint `json:"role_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["user_id"] = "User ID is required!"
		}
		if reqData.RoleID == 0 {
			errors["role_id"] = "Role ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUserRole", reqData)
		return c.Next()
	}
}
