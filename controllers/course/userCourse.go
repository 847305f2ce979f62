package controllers

import (
	"context"
	"time"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// treeTimeout bounds the store round-trips of one tree assembly so a
// slow query degrades the request instead of hanging it
const treeTimeout = 10 * time.Second

// GetPhaseWeeks returns the full nested week tree of one phase for an
// enrolled user. Flow: auth (JWT middleware) -> enrollment gate ->
// tree builder -> envelope.
func GetPhaseWeeks(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	phase, err := ResolvePhase(database.Database.Db, c.Params("identifier"))
	if err != nil {
		switch err {
		case gorm.ErrRecordNotFound:
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Phase not found!")
		case ErrAmbiguousIdentifier:
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Phase identifier is ambiguous!")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch phase!")
		}
	}

	access, err := CanAccessPhase(database.Database.Db, userID, phase.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Phase not found!")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to verify course access!")
	}
	if !access.Allowed {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, access.Reason)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), treeTimeout)
	defer cancel()

	tree, err := BuildPhaseWeeks(ctx, database.Database.Db, phase.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Phase not found!")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build phase content!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Phase weeks fetched successfully!", fiber.Map{
		"phase": tree,
	})
}

// GetCourseHierarchy returns the phase/week tree of a whole course the
// user is actively enrolled in. The course identifier may be a numeric
// id or a public hash.
func GetCourseHierarchy(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	course, _, err := ResolveCourseForUser(database.Database.Db, userID, c.Params("identifier"))
	if err != nil {
		switch err {
		case ErrCourseNotFound:
			return middleware.ErrorResponse(c, fiber.StatusForbidden, "Not enrolled in this course!")
		case ErrAmbiguousIdentifier:
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Course identifier is ambiguous!")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to resolve course!")
		}
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), treeTimeout)
	defer cancel()

	tree, err := BuildCourseTree(ctx, database.Database.Db, course.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found!")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build course content!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course hierarchy fetched successfully!", fiber.Map{
		"course": tree,
	})
}

// GetCourseDetails returns one published course with the caller's
// enrollment state
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	db := database.Database.Db

	course, err := findPublishedCourse(db, c.Params("identifier"))
	if err != nil {
		switch err {
		case gorm.ErrRecordNotFound:
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found!")
		case ErrAmbiguousIdentifier:
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Course identifier is ambiguous!")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch course!")
		}
	}

	var enrollment courseModels.Enrollment
	isEnrolled := db.Joins("JOIN batch_courses ON batch_courses.id = enrollments.batch_course_id").
		Where("enrollments.user_id = ? AND batch_courses.course_id = ? AND enrollments.status = ?",
			userID, course.ID, courseModels.EnrollmentActive).
		First(&enrollment).Error == nil

	data := fiber.Map{
		"course":      course,
		"is_enrolled": isEnrolled,
	}
	if isEnrolled {
		data["enrollment"] = enrollment
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", data)
}

// GetAllCourses lists published courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ?", false, true)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch courses!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetMyCourses lists the courses the user is actively enrolled in
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND status = ?", userID, courseModels.EnrollmentActive).
		Preload("BatchCourse.Course").
		Find(&enrollments).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch courses!")
	}

	courses := make([]fiber.Map, 0, len(enrollments))
	for _, enrollment := range enrollments {
		courses = append(courses, fiber.Map{
			"course":              enrollment.BatchCourse.Course,
			"batch_id":            enrollment.BatchCourse.BatchID,
			"progress_percentage": enrollment.ProgressPercentage,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}
