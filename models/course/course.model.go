package course

import "gorm.io/gorm"

// Course is the root of the curriculum tree
type Course struct {
	gorm.Model
	Name             string `json:"name"`
	Path             string `json:"path"`
	BriefDescription string `json:"brief_description"`
	FullDescription  string `json:"full_description" gorm:"type:text"`
	Icon             string `json:"icon"`
	Hash             string `json:"hash" gorm:"uniqueIndex;size:12"` // short public id, see utils.GenerateHash
	IsPublished      bool   `json:"is_published" gorm:"default:false"`
	IsDeleted        bool   `gorm:"default:false"`
}
