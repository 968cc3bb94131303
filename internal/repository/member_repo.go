package repository

import (
	"gorm.io/gorm"

	"taskhub/internal/model"
	pkgErrors "taskhub/pkg/responses"
)

type MemberRepository interface {
	// Add inserts a membership row; a (project, user) pair that already
	// exists is a conflict, never a second row.
	Add(projectID, userID int64) error
	Exists(projectID, userID int64) (bool, error)
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Add(projectID, userID int64) error {
	exists, err := r.Exists(projectID, userID)
	if err != nil {
		return err
	}
	if exists {
		return pkgErrors.New(pkgErrors.CodeConflict, "Member already added")
	}

	member := &model.ProjectMember{ProjectID: projectID, UserID: userID}
	if err := r.db.Create(member).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "add member failed", err)
	}
	return nil
}

func (r *memberRepository) Exists(projectID, userID int64) (bool, error) {
	var n int64
	err := r.db.Model(&model.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&n).Error
	if err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "query membership failed", err)
	}
	return n > 0, nil
}
