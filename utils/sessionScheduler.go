package utils

import (
	"log"
	"time"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SESSION-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// InitializeSessionScheduler starts the live-session maintenance jobs
func InitializeSessionScheduler() {
	logScheduler("Initializing session scheduler...")

	c := cron.New()

	// Every 15 minutes: complete sessions whose scheduled time has passed
	c.AddFunc("*/15 * * * *", func() {
		CompletePastSessions()
	})

	// Hourly: remind enrolled users of sessions starting within 24h
	c.AddFunc("0 * * * *", func() {
		SendUpcomingSessionReminders()
	})

	c.Start()
	logScheduler("Session scheduler started")
}

// CompletePastSessions transitions SCHEDULED sessions whose time has
// passed to COMPLETED. Cancelled sessions are left alone.
func CompletePastSessions() {
	db := database.Database.Db
	now := time.Now()

	result := db.Model(&courseModels.LiveSession{}).
		Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at < ? AND is_deleted = false", courseModels.SessionScheduled, now).
		Update("status", courseModels.SessionCompleted)
	if result.Error != nil {
		logScheduler("Error completing past live sessions: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logScheduler("Marked past live sessions completed")
	}

	if err := db.Model(&courseModels.GroupSession{}).
		Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at < ? AND is_deleted = false", courseModels.SessionScheduled, now).
		Update("status", courseModels.SessionCompleted).Error; err != nil {
		logScheduler("Error completing past group sessions: " + err.Error())
	}
}

// SendUpcomingSessionReminders emails every actively-enrolled user of a
// course whose live session starts within the next 24 hours. Each
// session is reminded once (reminder_sent flag).
func SendUpcomingSessionReminders() {
	db := database.Database.Db
	now := time.Now()
	dayFromNow := now.Add(24 * time.Hour)

	var sessions []courseModels.LiveSession
	if err := db.Where("status = ? AND reminder_sent = false AND is_deleted = false", courseModels.SessionScheduled).
		Where("scheduled_at BETWEEN ? AND ?", now, dayFromNow).
		Find(&sessions).Error; err != nil {
		logScheduler("Error fetching upcoming sessions: " + err.Error())
		return
	}

	for _, session := range sessions {
		courseID, err := courseIDForTopic(session.ClassTopicID)
		if err != nil {
			logScheduler("Skipping reminder, cannot resolve course for topic: " + err.Error())
			continue
		}

		var enrollments []courseModels.Enrollment
		if err := db.Joins("JOIN batch_courses ON batch_courses.id = enrollments.batch_course_id").
			Where("batch_courses.course_id = ? AND enrollments.status = ?", courseID, courseModels.EnrollmentActive).
			Find(&enrollments).Error; err != nil {
			logScheduler("Error fetching enrollments for reminder: " + err.Error())
			continue
		}

		for _, enrollment := range enrollments {
			var u models.User
			if err := db.Select("name, email").First(&u, enrollment.UserID).Error; err == nil && u.Email != "" {
				SendSessionReminderEmail(u.Email, u.Name, session.Title, *session.ScheduledAt)
			}
		}

		db.Model(&courseModels.LiveSession{}).Where("id = ?", session.ID).Update("reminder_sent", true)
	}
}

// courseIDForTopic walks topic -> week -> phase to the owning course
func courseIDForTopic(topicID uint) (uint, error) {
	db := database.Database.Db

	var topic courseModels.ClassTopic
	if err := db.First(&topic, topicID).Error; err != nil {
		return 0, err
	}
	var week courseModels.Week
	if err := db.First(&week, topic.WeekID).Error; err != nil {
		return 0, err
	}
	var phase courseModels.Phase
	if err := db.First(&phase, week.PhaseID).Error; err != nil {
		return 0, err
	}
	return phase.CourseID, nil
}
