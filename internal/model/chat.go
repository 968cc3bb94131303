package model

// ChatMessage is a per-project chat line. Rows are never deleted, so
// ids are strictly increasing and cursor reads stay correct.
type ChatMessage struct {
	BaseModel
	ProjectID int64  `gorm:"not null;index" json:"project_id"`
	UserID    int64  `gorm:"not null" json:"user_id"`
	Content   string `gorm:"type:text;not null" json:"content"`
}

func (ChatMessage) TableName() string {
	return "project_chat"
}
