package course

import (
	"time"

	"gorm.io/gorm"
)

// Session statuses
const (
	SessionScheduled = "SCHEDULED"
	SessionCompleted = "COMPLETED"
	SessionCancelled = "CANCELLED"
)

// VideoSection is a recorded video segment of a class topic
type VideoSection struct {
	gorm.Model
	ClassTopicID           uint   `json:"class_topic_id" gorm:"index;not null"`
	Title                  string `json:"title"`
	Order                  int    `json:"order" gorm:"column:order_number;not null"`
	Hash                   string `json:"hash" gorm:"uniqueIndex;size:12"`
	VideoURL               string `json:"video_url"`
	MinimumMinutesRequired int    `json:"minimum_minutes_required" gorm:"default:0"`
	IsDeleted              bool   `gorm:"default:false"`
}

// LiveSession is a scheduled live class attached to a class topic.
// ReminderSent guards the one-shot reminder email from the scheduler.
type LiveSession struct {
	gorm.Model
	ClassTopicID           uint       `json:"class_topic_id" gorm:"index;not null"`
	Title                  string     `json:"title"`
	Hash                   string     `json:"hash" gorm:"uniqueIndex;size:12"`
	ScheduledAt            *time.Time `json:"scheduled_at"`
	Status                 string     `json:"status" gorm:"default:'SCHEDULED'"`
	MinimumMinutesRequired int        `json:"minimum_minutes_required" gorm:"default:0"`
	VideoLengthMinutes     int        `json:"video_length_minutes" gorm:"default:0"`
	RecordingURL           string     `json:"recording_url"`
	ReminderSent           bool       `json:"-" gorm:"default:false"`
	IsDeleted              bool       `gorm:"default:false"`
}

// GroupSession is a scheduled group meeting attached directly to a week
type GroupSession struct {
	gorm.Model
	WeekID                 uint       `json:"week_id" gorm:"index;not null"`
	Title                  string     `json:"title"`
	Hash                   string     `json:"hash" gorm:"uniqueIndex;size:12"`
	ScheduledAt            *time.Time `json:"scheduled_at"`
	Status                 string     `json:"status" gorm:"default:'SCHEDULED'"`
	MinimumMinutesRequired int        `json:"minimum_minutes_required" gorm:"default:0"`
	IsDeleted              bool       `gorm:"default:false"`
}
