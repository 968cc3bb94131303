package server

import (
	"fmt"

	"github.com/samber/lo"

	"taskhub/internal/model"
	"taskhub/internal/protocol"
	"taskhub/internal/repository"
)

// handleAddReport creates a report under a project the caller owns.
func handleAddReport(s *session, args []string) (string, error) {
	projectID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	if _, err := s.srv.repos.Project.FindByID(projectID); err != nil {
		return "", err
	}
	if err := s.srv.rules.RequireOwner(projectID, s.userID, "Only project owner can add report"); err != nil {
		return "", err
	}

	report := &model.Report{
		ProjectID:   projectID,
		Title:       protocol.Unescape(args[1]),
		Description: protocol.Unescape(args[2]),
		CreatedBy:   s.userID,
	}
	if err := s.srv.repos.Report.Create(report); err != nil {
		return "", err
	}
	return "Report created", nil
}

// handleListReports lists a project's reports newest first.
func handleListReports(s *session, args []string) (string, error) {
	projectID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	if _, err := s.srv.repos.Project.FindByID(projectID); err != nil {
		return "", err
	}
	if err := s.srv.rules.RequireMemberOrOwner(projectID, s.userID, "Not authorized"); err != nil {
		return "", err
	}

	rows, err := s.srv.repos.Report.ListByProject(projectID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No reports", nil
	}

	records := lo.Map(rows, func(r repository.ReportListRow, _ int) string {
		return fmt.Sprintf("%d|%s|By:%s|At:%s",
			r.ID, protocol.Escape(r.Title), r.Author, r.CreatedAt.Format(model.TimeFormat))
	})
	return protocol.JoinRecords(records), nil
}

// handleGetReport returns the full single-report record.
func handleGetReport(s *session, args []string) (string, error) {
	reportID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	detail, err := s.srv.repos.Report.Detail(reportID)
	if err != nil {
		return "", err
	}
	if err := s.srv.rules.RequireMemberOrOwner(detail.ProjectID, s.userID, "Not authorized"); err != nil {
		return "", err
	}

	return fmt.Sprintf("%d|%d|%s|%s|By:%s|At:%s",
		detail.ID, detail.ProjectID,
		protocol.Escape(detail.Title), protocol.Escape(detail.Description),
		detail.Author, detail.CreatedAt.Format(model.TimeFormat)), nil
}

func handleUpdateReport(s *session, args []string) (string, error) {
	reportID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	projectID, err := s.srv.rules.ProjectOfReport(reportID)
	if err != nil {
		return "", err
	}
	if err := s.srv.rules.RequireOwner(projectID, s.userID, "Only project owner can update report"); err != nil {
		return "", err
	}

	if err := s.srv.repos.Report.Update(reportID, protocol.Unescape(args[1]), protocol.Unescape(args[2])); err != nil {
		return "", err
	}
	return "Report updated", nil
}

// handleDeleteReport removes the report and its comments and files in
// one transaction.
func handleDeleteReport(s *session, args []string) (string, error) {
	reportID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	projectID, err := s.srv.rules.ProjectOfReport(reportID)
	if err != nil {
		return "", err
	}
	if err := s.srv.rules.RequireOwner(projectID, s.userID, "Only project owner can delete report"); err != nil {
		return "", err
	}

	if err := s.srv.repos.Report.Delete(reportID); err != nil {
		return "", err
	}
	return "Report deleted", nil
}

// memberViaReport lifts a report id to its project and checks
// membership.
func memberViaReport(s *session, reportID int64) error {
	projectID, err := s.srv.rules.ProjectOfReport(reportID)
	if err != nil {
		return err
	}
	return s.srv.rules.RequireMemberOrOwner(projectID, s.userID, "Not authorized")
}

func handleAddReportComment(s *session, args []string) (string, error) {
	reportID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	if err := memberViaReport(s, reportID); err != nil {
		return "", err
	}

	comment := &model.ReportComment{
		ReportID: reportID,
		UserID:   s.userID,
		Content:  protocol.Unescape(args[1]),
	}
	if err := s.srv.repos.Report.AddComment(comment); err != nil {
		return "", err
	}
	return "Report comment added", nil
}

func handleListReportComments(s *session, args []string) (string, error) {
	reportID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	if err := memberViaReport(s, reportID); err != nil {
		return "", err
	}

	rows, err := s.srv.repos.Report.ListComments(reportID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No comments", nil
	}
	return protocol.JoinRecords(formatAuthoredRows(rows)), nil
}

func handleAddReportFile(s *session, args []string) (string, error) {
	reportID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	projectID, err := s.srv.rules.ProjectOfReport(reportID)
	if err != nil {
		return "", err
	}
	if err := s.srv.rules.RequireOwner(projectID, s.userID, "Only project owner can add report file"); err != nil {
		return "", err
	}

	file := &model.ReportFile{
		ReportID: reportID,
		Filename: protocol.Unescape(args[1]),
		Filepath: protocol.Unescape(args[2]),
	}
	if err := s.srv.repos.Report.AddFile(file); err != nil {
		return "", err
	}
	return "Report file added", nil
}

func handleListReportFiles(s *session, args []string) (string, error) {
	reportID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	if err := memberViaReport(s, reportID); err != nil {
		return "", err
	}

	rows, err := s.srv.repos.Report.ListFiles(reportID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No files", nil
	}
	return protocol.JoinRecords(formatFileRows(rows)), nil
}
