package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateCourse creates a course with a fresh public hash
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Name             string `json:"name"`
		Path             string `json:"path"`
		BriefDescription string `json:"brief_description"`
		FullDescription  string `json:"full_description"`
		Icon             string `json:"icon"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	hash, err := utils.GenerateHash(db, "courses")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate course id!")
	}

	course := courseModels.Course{
		Name:             reqData.Name,
		Path:             reqData.Path,
		BriefDescription: reqData.BriefDescription,
		FullDescription:  reqData.FullDescription,
		Icon:             reqData.Icon,
		Hash:             hash,
	}
	if err := db.Create(&course).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create course!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates mutable course fields, including publishing
func UpdateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Name             *string `json:"name"`
		Path             *string `json:"path"`
		BriefDescription *string `json:"brief_description"`
		FullDescription  *string `json:"full_description"`
		Icon             *string `json:"icon"`
		IsPublished      *bool   `json:"is_published"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", c.Params("id"), false).First(&course).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found!")
	}

	updates := map[string]interface{}{}
	if reqData.Name != nil {
		updates["name"] = *reqData.Name
	}
	if reqData.Path != nil {
		updates["path"] = *reqData.Path
	}
	if reqData.BriefDescription != nil {
		updates["brief_description"] = *reqData.BriefDescription
	}
	if reqData.FullDescription != nil {
		updates["full_description"] = *reqData.FullDescription
	}
	if reqData.Icon != nil {
		updates["icon"] = *reqData.Icon
	}
	if reqData.IsPublished != nil {
		updates["is_published"] = *reqData.IsPublished
	}

	if len(updates) > 0 {
		if err := db.Model(&course).Updates(updates).Error; err != nil {
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update course!")
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft-deletes a course
func DeleteCourse(c *fiber.Ctx) error {
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", c.Params("id"), false).First(&course).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found!")
	}

	if err := db.Model(&course).Update("is_deleted", true).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete course!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// CreateBatch creates a cohort
func CreateBatch(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBatch").(*struct {
		Name string `json:"name"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	batch := courseModels.Batch{Name: reqData.Name}
	if err := database.Database.Db.Create(&batch).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create batch!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Batch created successfully!", batch)
}

// AddCourseToBatch joins a course to a batch so users can enroll
func AddCourseToBatch(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBatchCourse").(*struct {
		BatchID  uint `json:"batch_id"`
		CourseID uint `json:"course_id"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var batch courseModels.Batch
	if err := db.Where("id = ? AND is_deleted = ?", reqData.BatchID, false).First(&batch).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Batch not found!")
	}
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found!")
	}

	var existing courseModels.BatchCourse
	if err := db.Where("batch_id = ? AND course_id = ?", reqData.BatchID, reqData.CourseID).First(&existing).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Course already added to this batch!")
	}

	batchCourse := courseModels.BatchCourse{
		BatchID:  reqData.BatchID,
		CourseID: reqData.CourseID,
	}
	if err := db.Create(&batchCourse).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to add course to batch!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course added to batch successfully!", batchCourse)
}

// CreatePhase creates an ordered phase in a course. The order value must
// be free within the course.
func CreatePhase(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPhase").(*struct {
		CourseID         uint   `json:"course_id"`
		Name             string `json:"name"`
		Path             string `json:"path"`
		BriefDescription string `json:"brief_description"`
		FullDescription  string `json:"full_description"`
		Icon             string `json:"icon"`
		Order            int    `json:"order"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found!")
	}

	if taken, err := orderTaken(db, &courseModels.Phase{}, "course_id", reqData.CourseID, "order_number", reqData.Order); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to validate phase order!")
	} else if taken {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Phase order already used in this course!")
	}

	hash, err := utils.GenerateHash(db, "phases")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate phase id!")
	}

	phase := courseModels.Phase{
		CourseID:         reqData.CourseID,
		Name:             reqData.Name,
		Path:             reqData.Path,
		BriefDescription: reqData.BriefDescription,
		FullDescription:  reqData.FullDescription,
		Icon:             reqData.Icon,
		Hash:             hash,
		Order:            reqData.Order,
	}
	if err := db.Create(&phase).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create phase!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Phase created successfully!", phase)
}

// CreateWeek creates an ordered week in a phase
func CreateWeek(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedWeek").(*struct {
		PhaseID  uint   `json:"phase_id"`
		WeekName string `json:"week_name"`
		Title    string `json:"title"`
		Order    int    `json:"order"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var phase courseModels.Phase
	if err := db.Where("id = ? AND is_deleted = ?", reqData.PhaseID, false).First(&phase).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Phase not found!")
	}

	if taken, err := orderTaken(db, &courseModels.Week{}, "phase_id", reqData.PhaseID, "week_order", reqData.Order); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to validate week order!")
	} else if taken {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Week order already used in this phase!")
	}

	hash, err := utils.GenerateHash(db, "weeks")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate week id!")
	}

	week := courseModels.Week{
		PhaseID:   reqData.PhaseID,
		WeekName:  reqData.WeekName,
		Title:     reqData.Title,
		WeekOrder: reqData.Order,
		Hash:      hash,
	}
	if err := db.Create(&week).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create week!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Week created successfully!", week)
}

// orderTaken reports whether a sibling already uses the order value
// inside the given parent scope
func orderTaken(db *gorm.DB, model interface{}, parentColumn string, parentID uint, orderColumn string, order int) (bool, error) {
	var count int64
	err := db.Model(model).
		Where(parentColumn+" = ? AND "+orderColumn+" = ? AND is_deleted = ?", parentID, order, false).
		Count(&count).Error
	return count > 0, err
}
