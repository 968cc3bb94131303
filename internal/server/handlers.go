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

// parseID parses a positive entity id field.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidFormat
	}
	return id, nil
}

// parseCursor parses a chat watermark; zero means "from the start".
func parseCursor(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 0 {
		return 0, errInvalidFormat
	}
	return id, nil
}

// requireTaskWriter allows the project owner or the task's assignee.
func requireTaskWriter(s *session, task *model.Task, message string) error {
	owner, err := s.srv.rules.IsOwner(task.ProjectID, s.userID)
	if err != nil {
		return err
	}
	if owner {
		return nil
	}
	if task.AssigneeID != nil && *task.AssigneeID == s.userID {
		return nil
	}
	return pkgErrors.New(pkgErrors.CodeForbidden, message)
}

func formatAuthoredRows(rows []repository.AuthoredRow) []string {
	return lo.Map(rows, func(r repository.AuthoredRow, _ int) string {
		return fmt.Sprintf("%d|%s|%s|%s",
			r.ID, r.Username, protocol.Escape(r.Content), r.CreatedAt.Format(model.TimeFormat))
	})
}

func formatFileRows(rows []repository.FileRow) []string {
	return lo.Map(rows, func(r repository.FileRow, _ int) string {
		return fmt.Sprintf("%d|%s|%s|%s",
			r.ID, protocol.Escape(r.Filename), protocol.Escape(r.Filepath), r.CreatedAt.Format(model.TimeFormat))
	})
}
