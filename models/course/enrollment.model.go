package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentDropped   = "dropped"
)

// Enrollment tracks a user's membership in a batch-course with progress.
// At most one row exists per (user, batch_course) pair, enforced by the
// composite unique index; dropped rows remain as history and are
// reactivated on re-enrollment rather than duplicated. Rows are never
// hard-deleted.
// Version gates concurrent progress updates (compare-and-swap).
type Enrollment struct {
	gorm.Model
	UserID             uint        `json:"user_id" gorm:"not null;uniqueIndex:idx_user_batch_course"`
	BatchCourseID      uint        `json:"batch_course_id" gorm:"index;not null;uniqueIndex:idx_user_batch_course"`
	Status             string      `json:"status" gorm:"default:'active'"`
	ProgressPercentage float64     `json:"progress_percentage" gorm:"default:0"` // 0-100
	CompletionDate     *time.Time  `json:"completion_date"`
	Version            int         `json:"version" gorm:"default:1"`
	BatchCourse        BatchCourse `json:"batch_course" gorm:"foreignKey:BatchCourseID"`
}
