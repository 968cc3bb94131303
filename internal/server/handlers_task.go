package server

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"taskhub/internal/model"
	"taskhub/internal/protocol"
	"taskhub/internal/repository"
	pkgErrors "taskhub/pkg/responses"
)

// handleCreateTask creates a task in a project the caller owns. The
// assignee must already hold a membership there.
func handleCreateTask(s *session, args []string) (string, error) {
	projectID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	if _, err := s.srv.repos.Project.FindByID(projectID); err != nil {
		return "", err
	}
	assignee, err := s.srv.repos.User.FindByUsername(args[3])
	if err != nil {
		return "", pkgErrors.New(pkgErrors.CodeNotFound, "Assignee not found")
	}

	if err := s.srv.rules.RequireOwner(projectID, s.userID, "Only project owner can create tasks"); err != nil {
		return "", err
	}

	member, err := s.srv.rules.IsMember(projectID, assignee.ID)
	if err != nil {
		return "", err
	}
	if !member {
		return "", pkgErrors.New(pkgErrors.CodeForbidden, "Assignee is not a member of this project")
	}

	task := &model.Task{
		ProjectID:   projectID,
		Title:       protocol.Unescape(args[1]),
		Description: protocol.Unescape(args[2]),
		AssigneeID:  &assignee.ID,
		StartDate:   args[4],
		EndDate:     args[5],
	}
	if err := s.srv.repos.Task.Create(task); err != nil {
		return "", err
	}
	return "Task created", nil
}

// handleAssignTask sets the task assignee; the new assignee must be a
// member of the task's project.
func handleAssignTask(s *session, args []string) (string, error) {
	taskID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	task, err := s.srv.repos.Task.FindByID(taskID)
	if err != nil {
		return "", err
	}
	user, err := s.srv.repos.User.FindByUsername(args[1])
	if err != nil {
		return "", err
	}

	if err := s.srv.rules.RequireOwner(task.ProjectID, s.userID, "Only project owner can assign tasks"); err != nil {
		return "", err
	}

	member, err := s.srv.rules.IsMember(task.ProjectID, user.ID)
	if err != nil {
		return "", err
	}
	if !member {
		return "", pkgErrors.New(pkgErrors.CodeForbidden, "Assignee is not a member of this project")
	}

	if err := s.srv.repos.Task.Assign(taskID, user.ID); err != nil {
		return "", err
	}
	return "Task assigned", nil
}

// handleUpdateTaskStatus sets the status directly; progress is left
// untouched, so the two can disagree.
func handleUpdateTaskStatus(s *session, args []string) (string, error) {
	taskID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	status := args[1]
	if !model.ValidTaskStatus(status) {
		return "", errInvalidFormat
	}

	task, err := s.srv.repos.Task.FindByID(taskID)
	if err != nil {
		return "", err
	}
	if err := requireTaskWriter(s, task, "Only assignee or project owner can update status"); err != nil {
		return "", err
	}

	if err := s.srv.repos.Task.UpdateStatus(taskID, status); err != nil {
		return "", err
	}
	return "Task status updated", nil
}

// handleUpdateTaskProgress clamps progress to [0,100]; the write
// re-derives status.
func handleUpdateTaskProgress(s *session, args []string) (string, error) {
	taskID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	progress, err := strconv.Atoi(args[1])
	if err != nil {
		return "", errInvalidFormat
	}
	if progress < 0 {
		progress = 0
	} else if progress > 100 {
		progress = 100
	}

	task, err := s.srv.repos.Task.FindByID(taskID)
	if err != nil {
		return "", err
	}
	if err := requireTaskWriter(s, task, "Only assignee or project owner can update progress"); err != nil {
		return "", err
	}

	if err := s.srv.repos.Task.UpdateProgress(taskID, progress); err != nil {
		return "", err
	}
	return "Task progress updated", nil
}

// handleSetTaskDates sets the start/end date strings.
func handleSetTaskDates(s *session, args []string) (string, error) {
	taskID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	task, err := s.srv.repos.Task.FindByID(taskID)
	if err != nil {
		return "", err
	}
	if err := s.srv.rules.RequireOwner(task.ProjectID, s.userID, "Only project owner can set task dates"); err != nil {
		return "", err
	}

	if err := s.srv.repos.Task.SetDates(taskID, args[1], args[2]); err != nil {
		return "", err
	}
	return "Task dates updated", nil
}

// handleListTask lists the tasks of a project the caller belongs to.
func handleListTask(s *session, args []string) (string, error) {
	projectID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	if _, err := s.srv.repos.Project.FindByID(projectID); err != nil {
		return "", err
	}
	if err := s.srv.rules.RequireMemberOrOwner(projectID, s.userID, "Not a member of this project"); err != nil {
		return "", err
	}

	rows, err := s.srv.repos.Task.ListByProject(projectID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No tasks", nil
	}

	records := lo.Map(rows, func(r repository.TaskListRow, _ int) string {
		return fmt.Sprintf("%d|%s|Assignee:%s|Status:%s|Progress:%d|Start:%s|End:%s",
			r.ID, protocol.Escape(r.Title), r.Assignee, r.Status, r.Progress, r.StartDate, r.EndDate)
	})
	return protocol.JoinRecords(records), nil
}

// handleListTaskDetail returns the full single-task record.
func handleListTaskDetail(s *session, args []string) (string, error) {
	taskID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	detail, err := s.srv.repos.Task.Detail(taskID)
	if err != nil {
		return "", err
	}
	if err := s.srv.rules.RequireMemberOrOwner(detail.ProjectID, s.userID, "Not authorized"); err != nil {
		return "", err
	}

	return fmt.Sprintf("%d|%d|%s|%s|Assignee:%s|Status:%s|Progress:%d|Start:%s|End:%s",
		detail.ID, detail.ProjectID,
		protocol.Escape(detail.Title), protocol.Escape(detail.Description),
		detail.Assignee, detail.Status, detail.Progress, detail.StartDate, detail.EndDate), nil
}

// handleListTaskGantt returns task rows shaped for chart rendering.
func handleListTaskGantt(s *session, args []string) (string, error) {
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

	rows, err := s.srv.repos.Task.ListByProject(projectID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No tasks", nil
	}

	records := lo.Map(rows, func(r repository.TaskListRow, _ int) string {
		return fmt.Sprintf("%d|%s|Status:%s|Progress:%d|Start:%s|End:%s|Assignee:%s",
			r.ID, protocol.Escape(r.Title), r.Status, r.Progress, r.StartDate, r.EndDate, r.Assignee)
	})
	return protocol.JoinRecords(records), nil
}
