package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up the authoring routes. Every route is
// guarded by the matching resource:action permission.
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware)

	// Courses
	adminGroup.Post("/course", middleware.CheckPermission("courses", models.ActionCreate), validators.CreateCourse(), controllers.CreateCourse)
	adminGroup.Put("/course/:id", middleware.CheckPermission("courses", models.ActionUpdate), validators.UpdateCourse(), controllers.UpdateCourse)
	adminGroup.Delete("/course/:id", middleware.CheckPermission("courses", models.ActionDelete), controllers.DeleteCourse)

	// Batches
	adminGroup.Post("/batch", middleware.CheckPermission("batches", models.ActionCreate), validators.CreateBatch(), controllers.CreateBatch)
	adminGroup.Post("/batch/course", middleware.CheckPermission("batches", models.ActionUpdate), validators.AddCourseToBatch(), controllers.AddCourseToBatch)

	// Phases and weeks
	adminGroup.Post("/phase", middleware.CheckPermission("phases", models.ActionCreate), validators.CreatePhase(), controllers.CreatePhase)
	adminGroup.Post("/week", middleware.CheckPermission("weeks", models.ActionCreate), validators.CreateWeek(), controllers.CreateWeek)

	// Week components and their contents
	adminGroup.Post("/week-component", middleware.CheckPermission("week_components", models.ActionCreate), validators.CreateWeekComponent(), controllers.CreateWeekComponent)
	adminGroup.Post("/week-component/content", middleware.CheckPermission("week_components", models.ActionCreate), validators.CreateComponentContent(), controllers.CreateWeekComponentContent)

	// Class topics, components, contents
	adminGroup.Post("/class-topic", middleware.CheckPermission("class_topics", models.ActionCreate), validators.CreateClassTopic(), controllers.CreateClassTopic)
	adminGroup.Post("/class-component", middleware.CheckPermission("class_topics", models.ActionCreate), validators.CreateClassComponent(), controllers.CreateClassComponent)
	adminGroup.Post("/class-component/content", middleware.CheckPermission("class_topics", models.ActionCreate), validators.CreateComponentContent(), controllers.CreateClassComponentContent)

	// Sessions
	adminGroup.Post("/video-section", middleware.CheckPermission("sessions", models.ActionCreate), validators.CreateVideoSection(), controllers.CreateVideoSection)
	adminGroup.Post("/live-session", middleware.CheckPermission("sessions", models.ActionCreate), validators.CreateLiveSession(), controllers.CreateLiveSession)
	adminGroup.Post("/group-session", middleware.CheckPermission("sessions", models.ActionCreate), validators.CreateGroupSession(), controllers.CreateGroupSession)
}
