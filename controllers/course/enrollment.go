package controllers

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollInCourse enrolls the caller in a batch-course. At most one
// active-or-completed enrollment may exist per (user, batch_course);
// a dropped row does not block re-enrollment and is reactivated instead
// of duplicated.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "User not found!")
	}

	reqData, ok := c.Locals("validatedEnrollment").(*struct {
		BatchID uint `json:"batch_id"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	course, err := findPublishedCourse(db, c.Params("identifier"))
	if err != nil {
		switch err {
		case gorm.ErrRecordNotFound:
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found or not published!")
		case ErrAmbiguousIdentifier:
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Course identifier is ambiguous!")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch course!")
		}
	}

	var batchCourse courseModels.BatchCourse
	if err := db.Where("batch_id = ? AND course_id = ?", reqData.BatchID, course.ID).First(&batchCourse).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course is not offered in this batch!")
	}

	var existing courseModels.Enrollment
	err = db.Where("user_id = ? AND batch_course_id = ?", userID, batchCourse.ID).First(&existing).Error
	switch {
	case err == nil && existing.Status != courseModels.EnrollmentDropped:
		return middleware.ErrorResponse(c, fiber.StatusConflict, "User already enrolled in this course!")
	case err == nil:
		// Reactivate the dropped row; its progress history stays
		existing.Status = courseModels.EnrollmentActive
		existing.Version++
		if err := db.Save(&existing).Error; err != nil {
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to enroll in course!")
		}
		go sendEnrollmentMail(user, course, batchCourse.BatchID)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", existing)
	case err != gorm.ErrRecordNotFound:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to check enrollment!")
	}

	enrollment := courseModels.Enrollment{
		UserID:        userID,
		BatchCourseID: batchCourse.ID,
		Status:        courseModels.EnrollmentActive,
	}

	if err := db.Create(&enrollment).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to enroll in course!")
	}

	go sendEnrollmentMail(user, course, batchCourse.BatchID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

func sendEnrollmentMail(user models.User, course *courseModels.Course, batchID uint) {
	if user.Email == "" {
		return
	}
	var batch courseModels.Batch
	database.Database.Db.First(&batch, batchID)
	// best effort, errors already logged by the mail service
	_ = SendEnrollmentEmailFn(user.Email, user.Name, course.Name, batch.Name)
}

// SendEnrollmentEmailFn is swapped out in tests
var SendEnrollmentEmailFn = utils.SendEnrollmentEmail

// DropEnrollment sets the caller's active enrollment to dropped. The row
// is kept as history; nothing is physically deleted.
func DropEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	course, enrollment, err := ResolveCourseForUser(database.Database.Db, userID, c.Params("identifier"))
	if err != nil {
		switch err {
		case ErrCourseNotFound:
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "No active enrollment for this course!")
		case ErrAmbiguousIdentifier:
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Course identifier is ambiguous!")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to resolve course!")
		}
	}

	enrollment.Status = courseModels.EnrollmentDropped
	enrollment.Version++
	if err := database.Database.Db.Save(enrollment).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to drop enrollment!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dropped enrollment successfully!", fiber.Map{
		"course_id": course.ID,
		"status":    enrollment.Status,
	})
}

// UpdateProgress updates the caller's progress on an active enrollment.
// The update is a compare-and-swap on the enrollment version; a stale
// version means a concurrent update won and the caller gets 409 instead
// of silently overwriting it.
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		ProgressPercentage *float64 `json:"progress_percentage"`
		Version            *int     `json:"version"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	_, enrollment, err := ResolveCourseForUser(database.Database.Db, userID, c.Params("identifier"))
	if err != nil {
		switch err {
		case ErrCourseNotFound:
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "No active enrollment for this course!")
		case ErrAmbiguousIdentifier:
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Course identifier is ambiguous!")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to resolve course!")
		}
	}

	progress := *reqData.ProgressPercentage
	updates := map[string]interface{}{
		"progress_percentage": progress,
		"version":             gorm.Expr("version + 1"),
	}
	if progress >= 100 {
		now := time.Now()
		updates["status"] = courseModels.EnrollmentCompleted
		updates["completion_date"] = &now
	}

	result := database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("id = ? AND version = ?", enrollment.ID, *reqData.Version).
		Updates(updates)
	if result.Error != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update progress!")
	}
	if result.RowsAffected == 0 {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Progress was updated concurrently, refetch and retry!")
	}

	var updated courseModels.Enrollment
	if err := database.Database.Db.First(&updated, enrollment.ID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch enrollment!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", updated)
}

// GetEnrollments lists all of the caller's enrollments, newest first
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Preload("BatchCourse.Course").
		Preload("BatchCourse.Batch").
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch enrollments!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
	})
}
