package course

import "gorm.io/gorm"

// ClassTopic is one class within a week
type ClassTopic struct {
	gorm.Model
	WeekID       uint   `json:"week_id" gorm:"index;not null"`
	Title        string `json:"title"`
	Description  string `json:"description" gorm:"type:text"`
	Order        int    `json:"order" gorm:"column:order_number;not null"`
	Hash         string `json:"hash" gorm:"uniqueIndex;size:12"`
	HasChecklist bool   `json:"has_checklist" gorm:"default:false"`
	IsDeleted    bool   `gorm:"default:false"`
}

// ClassComponent is a block inside a class topic
type ClassComponent struct {
	gorm.Model
	ClassTopicID uint   `json:"class_topic_id" gorm:"index;not null"`
	Title        string `json:"title"`
	Order        int    `json:"order" gorm:"column:order_number;not null"`
	IconType     string `json:"icon_type"`
	IsDeleted    bool   `gorm:"default:false"`
}

// ClassComponentContent is one entry inside a class component
type ClassComponentContent struct {
	gorm.Model
	ClassComponentID uint   `json:"class_component_id" gorm:"index;not null"`
	Title            string `json:"title"`
	ContentType      string `json:"content_type" gorm:"default:'TEXT'"` // TEXT, LINK, FILE
	TextContent      string `json:"text_content" gorm:"type:text"`
	URL              string `json:"url"`
	Order            int    `json:"order" gorm:"column:order_number;not null"`
	IsDeleted        bool   `gorm:"default:false"`
}
