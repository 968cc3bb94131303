package model

// Report is a project status report. Mutable and deletable by the
// project owner; deletion cascades to its comments and files.
type Report struct {
	BaseModel
	ProjectID   int64  `gorm:"not null;index" json:"project_id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text;default:''" json:"description"`
	CreatedBy   int64  `gorm:"not null" json:"created_by"`
}

func (Report) TableName() string {
	return "reports"
}

type ReportComment struct {
	BaseModel
	ReportID int64  `gorm:"not null;index" json:"report_id"`
	UserID   int64  `gorm:"not null" json:"user_id"`
	Content  string `gorm:"type:text;not null" json:"content"`
}

func (ReportComment) TableName() string {
	return "report_comments"
}

type ReportFile struct {
	BaseModel
	ReportID int64  `gorm:"not null;index" json:"report_id"`
	Filename string `gorm:"size:255;not null" json:"filename"`
	Filepath string `gorm:"size:512;not null" json:"filepath"`
}

func (ReportFile) TableName() string {
	return "report_files"
}
