package server

import (
	"fmt"

	"github.com/samber/lo"

	"taskhub/internal/model"
	"taskhub/internal/protocol"
	"taskhub/internal/repository"
)

// handleCreateProject creates a project; the creator becomes owner and
// gets a membership row in the same transaction.
func handleCreateProject(s *session, args []string) (string, error) {
	project := &model.Project{
		Name:    protocol.Unescape(args[0]),
		OwnerID: s.userID,
	}
	if err := s.srv.repos.Project.CreateWithOwner(project); err != nil {
		return "", err
	}
	return "Project created", nil
}

// handleInviteMember adds a membership row for the invitee.
func handleInviteMember(s *session, args []string) (string, error) {
	projectID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	if _, err := s.srv.repos.Project.FindByID(projectID); err != nil {
		return "", err
	}
	user, err := s.srv.repos.User.FindByUsername(args[1])
	if err != nil {
		return "", err
	}

	if err := s.srv.rules.RequireOwner(projectID, s.userID, "Only project owner can invite members"); err != nil {
		return "", err
	}

	if err := s.srv.repos.Member.Add(projectID, user.ID); err != nil {
		return "", err
	}
	return "Member invited", nil
}

// handleListProject lists the projects where the caller holds a
// membership.
func handleListProject(s *session, _ []string) (string, error) {
	rows, err := s.srv.repos.Project.ListForUser(s.userID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No projects", nil
	}

	records := lo.Map(rows, func(r repository.ProjectListRow, _ int) string {
		return fmt.Sprintf("%d|%s", r.ID, protocol.Escape(r.Name))
	})
	return protocol.JoinRecords(records), nil
}
