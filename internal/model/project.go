package model

import "time"

// Project is the container for tasks, chat and reports. Exactly one owner.
type Project struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text;default:''" json:"description"`
	OwnerID     int64  `gorm:"not null;index" json:"owner_id"`
	Status      string `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectMember grants a user visibility and participation in a project.
// The composite key keeps a (project, user) pair unique.
type ProjectMember struct {
	ProjectID     int64     `gorm:"primaryKey;autoIncrement:false" json:"project_id"`
	UserID        int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	RoleInProject string    `gorm:"size:20;not null;default:'MEMBER'" json:"role_in_project"`
	JoinedAt      time.Time `gorm:"not null;autoCreateTime" json:"joined_at"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}
