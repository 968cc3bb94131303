package repository

import (
	"time"

	"gorm.io/gorm"

	"taskhub/internal/model"
	pkgErrors "taskhub/pkg/responses"
)

// AuthoredRow is one comment or chat record with the author resolved
// to a username ("?" when the account is gone).
type AuthoredRow struct {
	ID        int64
	Username  string
	Content   string
	CreatedAt time.Time
}

type CommentRepository interface {
	Add(comment *model.TaskComment) error
	ListByTask(taskID int64) ([]AuthoredRow, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Add(comment *model.TaskComment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "add comment failed", err)
	}
	return nil
}

func (r *commentRepository) ListByTask(taskID int64) ([]AuthoredRow, error) {
	var rows []AuthoredRow
	err := r.db.Table("task_comments c").
		Select("c.id, IFNULL(u.username, '?') AS username, c.content, c.created_at").
		Joins("LEFT JOIN users u ON c.user_id = u.id").
		Where("c.task_id = ?", taskID).
		Order("c.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "list comments failed", err)
	}
	return rows, nil
}
