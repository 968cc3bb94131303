package repository

import (
	"time"

	"gorm.io/gorm"

	"taskhub/internal/model"
	pkgErrors "taskhub/pkg/responses"
)

// FileRow is one attachment or report-file record.
type FileRow struct {
	ID        int64
	Filename  string
	Filepath  string
	CreatedAt time.Time
}

type AttachmentRepository interface {
	Add(attachment *model.TaskAttachment) error
	ListByTask(taskID int64) ([]FileRow, error)
}

type attachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Add(attachment *model.TaskAttachment) error {
	if err := r.db.Create(attachment).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "add attachment failed", err)
	}
	return nil
}

func (r *attachmentRepository) ListByTask(taskID int64) ([]FileRow, error) {
	var rows []FileRow
	err := r.db.Table("task_attachments a").
		Select("a.id, a.filename, a.filepath, a.created_at").
		Where("a.task_id = ?", taskID).
		Order("a.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "list attachments failed", err)
	}
	return rows, nil
}
