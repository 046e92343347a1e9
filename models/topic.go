package models

// Topic is a material topic raters score along the financial and impact axes.
type Topic struct {
	TopicID     int    `gorm:"primaryKey;column:topic_id" json:"topic_id"`
	DimensionID int    `gorm:"column:dimension_id" json:"dimension_id"`
	Name        string `gorm:"column:name" json:"name"`
}

// TableName specifies the table name for Topic.
func (Topic) TableName() string {
	return "topics"
}
