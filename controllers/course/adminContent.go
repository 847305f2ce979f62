package controllers

import (
	"time"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateWeekComponent adds a week-level block (e.g. a TODO list)
func CreateWeekComponent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedWeekComponent").(*struct {
		WeekID   uint   `json:"week_id"`
		Title    string `json:"title"`
		Order    int    `json:"order"`
		IconType string `json:"icon_type"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var week courseModels.Week
	if err := db.Where("id = ? AND is_deleted = ?", reqData.WeekID, false).First(&week).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Week not found!")
	}

	if taken, err := orderTaken(db, &courseModels.WeekComponent{}, "week_id", reqData.WeekID, "order_number", reqData.Order); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to validate component order!")
	} else if taken {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Component order already used in this week!")
	}

	component := courseModels.WeekComponent{
		WeekID:   reqData.WeekID,
		Title:    reqData.Title,
		Order:    reqData.Order,
		IconType: reqData.IconType,
	}
	if err := db.Create(&component).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create week component!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Week component created successfully!", component)
}

// CreateWeekComponentContent adds an entry to a week component
func CreateWeekComponentContent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedComponentContent").(*struct {
		ParentID    uint   `json:"parent_id"`
		Title       string `json:"title"`
		ContentType string `json:"content_type"`
		TextContent string `json:"text_content"`
		URL         string `json:"url"`
		Order       int    `json:"order"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var component courseModels.WeekComponent
	if err := db.Where("id = ? AND is_deleted = ?", reqData.ParentID, false).First(&component).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Week component not found!")
	}

	if taken, err := orderTaken(db, &courseModels.WeekComponentContent{}, "week_component_id", reqData.ParentID, "order_number", reqData.Order); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to validate content order!")
	} else if taken {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Content order already used in this component!")
	}

	content := courseModels.WeekComponentContent{
		WeekComponentID: reqData.ParentID,
		Title:           reqData.Title,
		ContentType:     reqData.ContentType,
		TextContent:     reqData.TextContent,
		URL:             reqData.URL,
		Order:           reqData.Order,
	}
	if err := db.Create(&content).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create content!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", content)
}

// CreateClassTopic adds a class to a week
func CreateClassTopic(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedClassTopic").(*struct {
		WeekID       uint   `json:"week_id"`
		Title        string `json:"title"`
		Description  string `json:"description"`
		Order        int    `json:"order"`
		HasChecklist bool   `json:"has_checklist"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var week courseModels.Week
	if err := db.Where("id = ? AND is_deleted = ?", reqData.WeekID, false).First(&week).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Week not found!")
	}

	if taken, err := orderTaken(db, &courseModels.ClassTopic{}, "week_id", reqData.WeekID, "order_number", reqData.Order); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to validate topic order!")
	} else if taken {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Topic order already used in this week!")
	}

	hash, err := utils.GenerateHash(db, "class_topics")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate topic id!")
	}

	topic := courseModels.ClassTopic{
		WeekID:       reqData.WeekID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		Order:        reqData.Order,
		Hash:         hash,
		HasChecklist: reqData.HasChecklist,
	}
	if err := db.Create(&topic).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create class topic!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Class topic created successfully!", topic)
}

// CreateClassComponent adds a block to a class topic
func CreateClassComponent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedClassComponent").(*struct {
		ClassTopicID uint   `json:"class_topic_id"`
		Title        string `json:"title"`
		Order        int    `json:"order"`
		IconType     string `json:"icon_type"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var topic courseModels.ClassTopic
	if err := db.Where("id = ? AND is_deleted = ?", reqData.ClassTopicID, false).First(&topic).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Class topic not found!")
	}

	if taken, err := orderTaken(db, &courseModels.ClassComponent{}, "class_topic_id", reqData.ClassTopicID, "order_number", reqData.Order); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to validate component order!")
	} else if taken {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Component order already used in this topic!")
	}

	component := courseModels.ClassComponent{
		ClassTopicID: reqData.ClassTopicID,
		Title:        reqData.Title,
		Order:        reqData.Order,
		IconType:     reqData.IconType,
	}
	if err := db.Create(&component).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create class component!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Class component created successfully!", component)
}

// CreateClassComponentContent adds an entry to a class component
func CreateClassComponentContent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedComponentContent").(*struct {
		ParentID    uint   `json:"parent_id"`
		Title       string `json:"title"`
		ContentType string `json:"content_type"`
		TextContent string `json:"text_content"`
		URL         string `json:"url"`
		Order       int    `json:"order"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var component courseModels.ClassComponent
	if err := db.Where("id = ? AND is_deleted = ?", reqData.ParentID, false).First(&component).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Class component not found!")
	}

	if taken, err := orderTaken(db, &courseModels.ClassComponentContent{}, "class_component_id", reqData.ParentID, "order_number", reqData.Order); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to validate content order!")
	} else if taken {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Content order already used in this component!")
	}

	content := courseModels.ClassComponentContent{
		ClassComponentID: reqData.ParentID,
		Title:            reqData.Title,
		ContentType:      reqData.ContentType,
		TextContent:      reqData.TextContent,
		URL:              reqData.URL,
		Order:            reqData.Order,
	}
	if err := db.Create(&content).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create content!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", content)
}

// CreateVideoSection adds an ordered recorded-video section to a topic
func CreateVideoSection(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVideoSection").(*struct {
		ClassTopicID           uint   `json:"class_topic_id"`
		Title                  string `json:"title"`
		Order                  int    `json:"order"`
		VideoURL               string `json:"video_url"`
		MinimumMinutesRequired int    `json:"minimum_minutes_required"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var topic courseModels.ClassTopic
	if err := db.Where("id = ? AND is_deleted = ?", reqData.ClassTopicID, false).First(&topic).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Class topic not found!")
	}

	if taken, err := orderTaken(db, &courseModels.VideoSection{}, "class_topic_id", reqData.ClassTopicID, "order_number", reqData.Order); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to validate section order!")
	} else if taken {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Section order already used in this topic!")
	}

	hash, err := utils.GenerateHash(db, "video_sections")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate section id!")
	}

	section := courseModels.VideoSection{
		ClassTopicID:           reqData.ClassTopicID,
		Title:                  reqData.Title,
		Order:                  reqData.Order,
		Hash:                   hash,
		VideoURL:               reqData.VideoURL,
		MinimumMinutesRequired: reqData.MinimumMinutesRequired,
	}
	if err := db.Create(&section).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create video section!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video section created successfully!", section)
}

// CreateLiveSession schedules a live class on a topic. When a recording
// URL is supplied without an explicit length, the video provider is
// asked for the duration; a failed lookup leaves the length at 0.
func CreateLiveSession(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLiveSession").(*struct {
		ClassTopicID           uint       `json:"class_topic_id"`
		Title                  string     `json:"title"`
		ScheduledAt            *time.Time `json:"scheduled_at"`
		MinimumMinutesRequired int        `json:"minimum_minutes_required"`
		VideoLengthMinutes     int        `json:"video_length_minutes"`
		RecordingURL           string     `json:"recording_url"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var topic courseModels.ClassTopic
	if err := db.Where("id = ? AND is_deleted = ?", reqData.ClassTopicID, false).First(&topic).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Class topic not found!")
	}

	hash, err := utils.GenerateHash(db, "live_sessions")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate session id!")
	}

	videoLength := reqData.VideoLengthMinutes
	if videoLength == 0 && reqData.RecordingURL != "" {
		videoLength = utils.FetchVideoLengthMinutes(reqData.RecordingURL)
	}

	session := courseModels.LiveSession{
		ClassTopicID:           reqData.ClassTopicID,
		Title:                  reqData.Title,
		Hash:                   hash,
		ScheduledAt:            reqData.ScheduledAt,
		MinimumMinutesRequired: reqData.MinimumMinutesRequired,
		VideoLengthMinutes:     videoLength,
		RecordingURL:           reqData.RecordingURL,
	}
	if err := db.Create(&session).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create live session!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Live session created successfully!", session)
}

// CreateGroupSession schedules a group meeting on a week
func CreateGroupSession(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedGroupSession").(*struct {
		WeekID                 uint       `json:"week_id"`
		Title                  string     `json:"title"`
		ScheduledAt            *time.Time `json:"scheduled_at"`
		MinimumMinutesRequired int        `json:"minimum_minutes_required"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	db := database.Database.Db

	var week courseModels.Week
	if err := db.Where("id = ? AND is_deleted = ?", reqData.WeekID, false).First(&week).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Week not found!")
	}

	hash, err := utils.GenerateHash(db, "group_sessions")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate session id!")
	}

	session := courseModels.GroupSession{
		WeekID:                 reqData.WeekID,
		Title:                  reqData.Title,
		Hash:                   hash,
		ScheduledAt:            reqData.ScheduledAt,
		MinimumMinutesRequired: reqData.MinimumMinutesRequired,
	}
	if err := db.Create(&session).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create group session!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Group session created successfully!", session)
}
