package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing and details
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/my", middleware.JWTMiddleware, controllers.GetMyCourses)
	courseGroup.Get("/:identifier", middleware.JWTMiddleware, controllers.GetCourseDetails)

	// Hierarchy (enrollment-gated)
	courseGroup.Get("/:identifier/hierarchy", middleware.JWTMiddleware, controllers.GetCourseHierarchy)

	// Enrollment lifecycle
	courseGroup.Post("/:identifier/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)
	courseGroup.Post("/:identifier/drop", middleware.JWTMiddleware, controllers.DropEnrollment)
	courseGroup.Put("/:identifier/progress", middleware.JWTMiddleware, validators.UpdateProgress(), controllers.UpdateProgress)

	// Phase content (enrollment-gated)
	phaseGroup := app.Group("/phase")
	phaseGroup.Get("/:identifier/weeks", middleware.JWTMiddleware, controllers.GetPhaseWeeks)

	// User enrollments
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetEnrollments)
}
