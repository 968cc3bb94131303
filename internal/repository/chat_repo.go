package repository

import (
	"gorm.io/gorm"

	"taskhub/internal/model"
	pkgErrors "taskhub/pkg/responses"
)

type ChatRepository interface {
	Add(message *model.ChatMessage) error
	// ListAfter returns messages with id strictly greater than afterID,
	// ascending, so a client polling with its highest seen id never
	// re-receives or skips a message.
	ListAfter(projectID, afterID int64) ([]AuthoredRow, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Add(message *model.ChatMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "add chat message failed", err)
	}
	return nil
}

func (r *chatRepository) ListAfter(projectID, afterID int64) ([]AuthoredRow, error) {
	var rows []AuthoredRow
	err := r.db.Table("project_chat c").
		Select("c.id, IFNULL(u.username, '?') AS username, c.content, c.created_at").
		Joins("LEFT JOIN users u ON c.user_id = u.id").
		Where("c.project_id = ? AND c.id > ?", projectID, afterID).
		Order("c.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "list chat failed", err)
	}
	return rows, nil
}
