package course

import "gorm.io/gorm"

// Week is an ordered unit within a phase. WeekOrder is 1-based and
// unique within the owning phase.
type Week struct {
	gorm.Model
	PhaseID   uint   `json:"phase_id" gorm:"index;uniqueIndex:idx_phase_week_order;not null"`
	WeekName  string `json:"week_name"`
	Title     string `json:"title"`
	WeekOrder int    `json:"order" gorm:"column:week_order;uniqueIndex:idx_phase_week_order;not null"`
	Hash      string `json:"hash" gorm:"uniqueIndex;size:12"`
	IsDeleted bool   `gorm:"default:false"`
}
