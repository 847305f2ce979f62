package course

import "gorm.io/gorm"

// Phase is an ordered stage within a course. Order is 1-based and unique
// within the owning course.
type Phase struct {
	gorm.Model
	CourseID         uint   `json:"course_id" gorm:"index;uniqueIndex:idx_course_phase_order;not null"`
	Name             string `json:"name"`
	Path             string `json:"path"`
	BriefDescription string `json:"brief_description"`
	FullDescription  string `json:"full_description" gorm:"type:text"`
	Icon             string `json:"icon"`
	Hash             string `json:"hash" gorm:"uniqueIndex;size:12"`
	Order            int    `json:"order" gorm:"column:order_number;uniqueIndex:idx_course_phase_order;not null"`
	IsDeleted        bool   `gorm:"default:false"`
}
