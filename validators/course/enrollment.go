package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			BatchID uint `json:"batch_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.BatchID == 0 {
			errors["batch_id"] = "Batch ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnrollment", reqData)
		return c.Next()
	}
}

func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ProgressPercentage *float64 `json:"progress_percentage"`
			Version            *int     `json:"version"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.ProgressPercentage == nil {
			errors["progress_percentage"] = "Progress percentage is required!"
		} else if *reqData.ProgressPercentage < 0 || *reqData.ProgressPercentage > 100 {
			errors["progress_percentage"] = "Progress percentage must be between 0 and 100!"
		}

		if reqData.Version == nil || *reqData.Version < 1 {
			errors["version"] = "Current enrollment version is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
