package repository

import (
	"errors"

	"gorm.io/gorm"

	"taskhub/internal/model"
	pkgErrors "taskhub/pkg/responses"
)

// ProjectListRow is one row of LIST_PROJECT output.
type ProjectListRow struct {
	ID   int64
	Name string
}

type ProjectRepository interface {
	// CreateWithOwner inserts the project and the owner's membership row
	// in one transaction.
	CreateWithOwner(project *model.Project) error
	FindByID(id int64) (*model.Project, error)
	ListForUser(userID int64) ([]ProjectListRow, error)
	IsOwner(projectID, userID int64) (bool, error)
	Count() (int64, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) CreateWithOwner(project *model.Project) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		member := &model.ProjectMember{
			ProjectID:     project.ID,
			UserID:        project.OwnerID,
			RoleInProject: "OWNER",
		}
		return tx.Create(member).Error
	})
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "create project failed", err)
	}
	return nil
}

func (r *projectRepository) FindByID(id int64) (*model.Project, error) {
	var project model.Project
	err := r.db.First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.New(pkgErrors.CodeNotFound, "Project not found")
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "query project failed", err)
	}
	return &project, nil
}

// ListForUser returns the projects where userID holds a membership,
// ascending by id.
func (r *projectRepository) ListForUser(userID int64) ([]ProjectListRow, error) {
	var rows []ProjectListRow
	err := r.db.Table("projects").
		Select("projects.id, projects.name").
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Order("projects.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "list projects failed", err)
	}
	return rows, nil
}

func (r *projectRepository) IsOwner(projectID, userID int64) (bool, error) {
	var n int64
	err := r.db.Model(&model.Project{}).
		Where("id = ? AND owner_id = ?", projectID, userID).
		Count(&n).Error
	if err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "query project owner failed", err)
	}
	return n > 0, nil
}

func (r *projectRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&model.Project{}).Count(&n).Error; err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "count projects failed", err)
	}
	return n, nil
}
