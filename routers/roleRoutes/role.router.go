package roleRoutes

import (
	controllers "lms/controllers/roleControllers"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/role"

	"github.com/gofiber/fiber/v2"
)

// SetupRoleRoutes sets up RBAC administration routes. The ADMIN
// role-name gate runs first as a cheap pre-filter, then the
// fine-grained roles:manage permission.
func SetupRoleRoutes(app *fiber.App) {
	roleGroup := app.Group("/role",
		middleware.JWTMiddleware,
		middleware.AuthorizeRoles("ADMIN"),
		middleware.CheckPermission("roles", models.ActionManage),
	)

	roleGroup.Post("/", validators.CreateRole(), controllers.CreateRole)
	roleGroup.Get("/list", controllers.ListRoles)
	roleGroup.Delete("/:id", controllers.DeleteRole)

	roleGroup.Post("/grant", validators.GrantPermission(), controllers.GrantPermission)
	roleGroup.Get("/permissions", controllers.ListPermissions)

	roleGroup.Post("/assign", validators.UserRole(), controllers.AssignRole)
	roleGroup.Post("/deactivate", validators.UserRole(), controllers.DeactivateUserRole)
}
