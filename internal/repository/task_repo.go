package repository

import (
	"errors"

	"gorm.io/gorm"

	"taskhub/internal/model"
	pkgErrors "taskhub/pkg/responses"
)

// TaskListRow is one row of LIST_TASK / LIST_TASK_GANTT output, with
// the assignee resolved to a username ("None" when unassigned).
type TaskListRow struct {
	ID        int64
	Title     string
	Assignee  string
	Status    string
	Progress  int
	StartDate string
	EndDate   string
}

// TaskDetailRow is the full single-task record for LIST_TASK_DETAIL.
type TaskDetailRow struct {
	ID          int64
	ProjectID   int64
	Title       string
	Description string
	Assignee    string
	Status      string
	Progress    int
	StartDate   string
	EndDate     string
}

type TaskRepository interface {
	// Create inserts the task, assigning the next per-project ordinal.
	Create(task *model.Task) error
	FindByID(id int64) (*model.Task, error)
	ProjectID(taskID int64) (int64, error)
	ListByProject(projectID int64) ([]TaskListRow, error)
	Detail(taskID int64) (*TaskDetailRow, error)
	Assign(taskID, userID int64) error
	UpdateStatus(taskID int64, status string) error
	// UpdateProgress writes progress and re-derives status from it. This
	// is the single place status is derived.
	UpdateProgress(taskID int64, progress int) error
	SetDates(taskID int64, startDate, endDate string) error
	Count() (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *model.Task) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var nextNo int
		row := tx.Model(&model.Task{}).
			Select("COALESCE(MAX(project_task_no), 0) + 1").
			Where("project_id = ?", task.ProjectID).
			Row()
		if err := row.Scan(&nextNo); err != nil {
			return err
		}
		task.ProjectTaskNo = nextNo
		return tx.Create(task).Error
	})
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "create task failed", err)
	}
	return nil
}

func (r *taskRepository) FindByID(id int64) (*model.Task, error) {
	var task model.Task
	err := r.db.First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.New(pkgErrors.CodeNotFound, "Task not found")
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "query task failed", err)
	}
	return &task, nil
}

func (r *taskRepository) ProjectID(taskID int64) (int64, error) {
	task, err := r.FindByID(taskID)
	if err != nil {
		return 0, err
	}
	return task.ProjectID, nil
}

func (r *taskRepository) ListByProject(projectID int64) ([]TaskListRow, error) {
	var rows []TaskListRow
	err := r.db.Table("tasks t").
		Select("t.id, t.title, IFNULL(u.username, 'None') AS assignee, t.status, t.progress, t.start_date, t.end_date").
		Joins("LEFT JOIN users u ON t.assignee_id = u.id").
		Where("t.project_id = ?", projectID).
		Order("t.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "list tasks failed", err)
	}
	return rows, nil
}

func (r *taskRepository) Detail(taskID int64) (*TaskDetailRow, error) {
	var row TaskDetailRow
	result := r.db.Table("tasks t").
		Select("t.id, t.project_id, t.title, t.description, IFNULL(u.username, 'None') AS assignee, t.status, t.progress, t.start_date, t.end_date").
		Joins("LEFT JOIN users u ON t.assignee_id = u.id").
		Where("t.id = ?", taskID).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "query task detail failed", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, pkgErrors.New(pkgErrors.CodeNotFound, "Task not found")
	}
	return &row, nil
}

func (r *taskRepository) Assign(taskID, userID int64) error {
	err := r.db.Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("assignee_id", userID).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "assign task failed", err)
	}
	return nil
}

func (r *taskRepository) UpdateStatus(taskID int64, status string) error {
	err := r.db.Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("status", status).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "update task status failed", err)
	}
	return nil
}

func (r *taskRepository) UpdateProgress(taskID int64, progress int) error {
	err := r.db.Model(&model.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"progress": progress,
			"status":   model.StatusForProgress(progress),
		}).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "update task progress failed", err)
	}
	return nil
}

func (r *taskRepository) SetDates(taskID int64, startDate, endDate string) error {
	err := r.db.Model(&model.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"start_date": startDate,
			"end_date":   endDate,
		}).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "update task dates failed", err)
	}
	return nil
}

func (r *taskRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&model.Task{}).Count(&n).Error; err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "count tasks failed", err)
	}
	return n, nil
}
