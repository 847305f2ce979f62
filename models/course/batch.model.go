package course

import (
	"time"

	"gorm.io/gorm"
)

// Batch is a cohort of students that runs one or more courses together
type Batch struct {
	gorm.Model
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date"`
	IsDeleted bool       `gorm:"default:false"`
}

// BatchCourse joins a batch to a course. Enrollments reference this row,
// not the course directly; a phase's course is reached through it for
// access checks.
type BatchCourse struct {
	gorm.Model
	BatchID  uint   `json:"batch_id" gorm:"uniqueIndex:idx_batch_course;not null"`
	CourseID uint   `json:"course_id" gorm:"uniqueIndex:idx_batch_course;not null"`
	Batch    Batch  `json:"batch" gorm:"foreignKey:BatchID"`
	Course   Course `json:"course" gorm:"foreignKey:CourseID"`
}
