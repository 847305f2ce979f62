package courseValidator

import (
	"strings"
	"time"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

var allowedContentTypes = map[string]bool{
	"":     true, // defaults to TEXT in the model
	"TEXT": true,
	"LINK": true,
	"FILE": true,
}

func CreateWeekComponent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			WeekID   uint   `json:"week_id"`
			Title    string `json:"title"`
			Order    int    `json:"order"`
			IconType string `json:"icon_type"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.WeekID == 0 {
			errors["week_id"] = "Week ID is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Order < 1 {
			errors["order"] = "Order must be a positive integer!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWeekComponent", reqData)
		return c.Next()
	}
}

// CreateComponentContent validates entries for both week and class
// components; the parent_id is interpreted by the route
func CreateComponentContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ParentID    uint   `json:"parent_id"`
			Title       string `json:"title"`
			ContentType string `json:"content_type"`
			TextContent string `json:"text_content"`
			URL         string `json:"url"`
			Order       int    `json:"order"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.ParentID == 0 {
			errors["parent_id"] = "Parent component ID is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Order < 1 {
			errors["order"] = "Order must be a positive integer!"
		}
		if !allowedContentTypes[reqData.ContentType] {
			errors["content_type"] = "Content type must be TEXT, LINK or FILE!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedComponentContent", reqData)
		return c.Next()
	}
}

func CreateClassTopic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			WeekID       uint   `json:"week_id"`
			Title        string `json:"title"`
			Description  string `json:"description"`
			Order        int    `json:"order"`
			HasChecklist bool   `json:"has_checklist"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.WeekID == 0 {
			errors["week_id"] = "Week ID is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Order < 1 {
			errors["order"] = "Order must be a positive integer!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedClassTopic", reqData)
		return c.Next()
	}
}

func CreateClassComponent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ClassTopicID uint   `json:"class_topic_id"`
			Title        string `json:"title"`
			Order        int    `json:"order"`
			IconType     string `json:"icon_type"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.ClassTopicID == 0 {
			errors["class_topic_id"] = "Class topic ID is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Order < 1 {
			errors["order"] = "Order must be a positive integer!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedClassComponent", reqData)
		return c.Next()
	}
}

func CreateVideoSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ClassTopicID           uint   `json:"class_topic_id"`
			Title                  string `json:"title"`
			Order                  int    `json:"order"`
			VideoURL               string `json:"video_url"`
			MinimumMinutesRequired int    `json:"minimum_minutes_required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.ClassTopicID == 0 {
			errors["class_topic_id"] = "Class topic ID is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Order < 1 {
			errors["order"] = "Order must be a positive integer!"
		}
		if reqData.MinimumMinutesRequired < 0 {
			errors["minimum_minutes_required"] = "Minimum minutes cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVideoSection", reqData)
		return c.Next()
	}
}

func CreateLiveSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ClassTopicID           uint       `json:"class_topic_id"`
			Title                  string     `json:"title"`
			ScheduledAt            *time.Time `json:"scheduled_at"`
			MinimumMinutesRequired int        `json:"minimum_minutes_required"`
			VideoLengthMinutes     int        `json:"video_length_minutes"`
			RecordingURL           string     `json:"recording_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.ClassTopicID == 0 {
			errors["class_topic_id"] = "Class topic ID is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.MinimumMinutesRequired < 0 {
			errors["minimum_minutes_required"] = "Minimum minutes cannot be negative!"
		}
		if reqData.VideoLengthMinutes < 0 {
			errors["video_length_minutes"] = "Video length cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLiveSession", reqData)
		return c.Next()
	}
}

func CreateGroupSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			WeekID                 uint       `json:"week_id"`
			Title                  string     `json:"title"`
			ScheduledAt            *time.Time `json:"scheduled_at"`
			MinimumMinutesRequired int        `json:"minimum_minutes_required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.WeekID == 0 {
			errors["week_id"] = "Week ID is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGroupSession", reqData)
		return c.Next()
	}
}
