package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"taskhub/internal/model"
	pkgErrors "taskhub/pkg/responses"
)

// ReportListRow is one row of LIST_REPORTS output.
type ReportListRow struct {
	ID        int64
	Title     string
	Author    string
	CreatedAt time.Time
}

// ReportDetailRow is the full record for GET_REPORT.
type ReportDetailRow struct {
	ID          int64
	ProjectID   int64
	Title       string
	Description string
	Author      string
	CreatedAt   time.Time
}

type ReportRepository interface {
	Create(report *model.Report) error
	FindByID(id int64) (*model.Report, error)
	ProjectID(reportID int64) (int64, error)
	// ListByProject returns reports newest-first.
	ListByProject(projectID int64) ([]ReportListRow, error)
	Detail(reportID int64) (*ReportDetailRow, error)
	Update(reportID int64, title, description string) error
	// Delete removes the report and cascades to its comments and files
	// in one transaction.
	Delete(reportID int64) error

	AddComment(comment *model.ReportComment) error
	ListComments(reportID int64) ([]AuthoredRow, error)
	AddFile(file *model.ReportFile) error
	ListFiles(reportID int64) ([]FileRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *model.Report) error {
	if err := r.db.Create(report).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "create report failed", err)
	}
	return nil
}

func (r *reportRepository) FindByID(id int64) (*model.Report, error) {
	var report model.Report
	err := r.db.First(&report, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.New(pkgErrors.CodeNotFound, "Report not found")
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "query report failed", err)
	}
	return &report, nil
}

func (r *reportRepository) ProjectID(reportID int64) (int64, error) {
	report, err := r.FindByID(reportID)
	if err != nil {
		return 0, err
	}
	return report.ProjectID, nil
}

func (r *reportRepository) ListByProject(projectID int64) ([]ReportListRow, error) {
	var rows []ReportListRow
	err := r.db.Table("reports r").
		Select("r.id, r.title, IFNULL(u.username, '?') AS author, r.created_at").
		Joins("LEFT JOIN users u ON r.created_by = u.id").
		Where("r.project_id = ?", projectID).
		Order("r.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "list reports failed", err)
	}
	return rows, nil
}

func (r *reportRepository) Detail(reportID int64) (*ReportDetailRow, error) {
	var row ReportDetailRow
	result := r.db.Table("reports r").
		Select("r.id, r.project_id, r.title, r.description, IFNULL(u.username, '?') AS author, r.created_at").
		Joins("LEFT JOIN users u ON r.created_by = u.id").
		Where("r.id = ?", reportID).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "query report failed", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, pkgErrors.New(pkgErrors.CodeNotFound, "Report not found")
	}
	return &row, nil
}

func (r *reportRepository) Update(reportID int64, title, description string) error {
	err := r.db.Model(&model.Report{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
		}).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "update report failed", err)
	}
	return nil
}

func (r *reportRepository) Delete(reportID int64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", reportID).Delete(&model.ReportComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", reportID).Delete(&model.ReportFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Report{}, reportID).Error
	})
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "delete report failed", err)
	}
	return nil
}

func (r *reportRepository) AddComment(comment *model.ReportComment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "add report comment failed", err)
	}
	return nil
}

func (r *reportRepository) ListComments(reportID int64) ([]AuthoredRow, error) {
	var rows []AuthoredRow
	err := r.db.Table("report_comments c").
		Select("c.id, IFNULL(u.username, '?') AS username, c.content, c.created_at").
		Joins("LEFT JOIN users u ON c.user_id = u.id").
		Where("c.report_id = ?", reportID).
		Order("c.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "list report comments failed", err)
	}
	return rows, nil
}

func (r *reportRepository) AddFile(file *model.ReportFile) error {
	if err := r.db.Create(file).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "add report file failed", err)
	}
	return nil
}

func (r *reportRepository) ListFiles(reportID int64) ([]FileRow, error) {
	var rows []FileRow
	err := r.db.Table("report_files f").
		Select("f.id, f.filename, f.filepath, f.created_at").
		Where("f.report_id = ?", reportID).
		Order("f.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "list report files failed", err)
	}
	return rows, nil
}
