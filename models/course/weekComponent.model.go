package course

import "gorm.io/gorm"

// WeekComponent is a week-level block (e.g. a TODO list) that lives
// beside the per-class topics rather than inside them.
type WeekComponent struct {
	gorm.Model
	WeekID    uint   `json:"week_id" gorm:"index;not null"`
	Title     string `json:"title"`
	Order     int    `json:"order" gorm:"column:order_number;not null"`
	IconType  string `json:"icon_type"`
	IsDeleted bool   `gorm:"default:false"`
}

// WeekComponentContent is one entry inside a week component
type WeekComponentContent struct {
	gorm.Model
	WeekComponentID uint   `json:"week_component_id" gorm:"index;not null"`
	Title           string `json:"title"`
	ContentType     string `json:"content_type" gorm:"default:'TEXT'"` // TEXT, LINK, FILE
	TextContent     string `json:"text_content" gorm:"type:text"`
	URL             string `json:"url"`
	Order           int    `json:"order" gorm:"column:order_number;not null"`
	IsDeleted       bool   `gorm:"default:false"`
}
