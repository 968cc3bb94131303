package repository

import "gorm.io/gorm"

// Repositories bundles every entity repository over one connection.
type Repositories struct {
	User       UserRepository
	Project    ProjectRepository
	Member     MemberRepository
	Task       TaskRepository
	Comment    CommentRepository
	Attachment AttachmentRepository
	Chat       ChatRepository
	Report     ReportRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Project:    NewProjectRepository(db),
		Member:     NewMemberRepository(db),
		Task:       NewTaskRepository(db),
		Comment:    NewCommentRepository(db),
		Attachment: NewAttachmentRepository(db),
		Chat:       NewChatRepository(db),
		Report:     NewReportRepository(db),
	}
}
