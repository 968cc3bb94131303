package model

// User account. The password is an opaque credential compared verbatim.
type User struct {
	BaseModel
	Username string `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     string `gorm:"size:20;not null;default:'MEMBER'" json:"role"`
	Status   string `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
}

func (User) TableName() string {
	return "users"
}
