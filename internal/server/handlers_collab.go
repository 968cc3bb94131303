package server

import (
	"taskhub/internal/model"
	"taskhub/internal/protocol"
)

// memberViaTask lifts a task id to its project and checks membership.
func memberViaTask(s *session, taskID int64) error {
	projectID, err := s.srv.rules.ProjectOfTask(taskID)
	if err != nil {
		return err
	}
	return s.srv.rules.RequireMemberOrOwner(projectID, s.userID, "Not authorized")
}

func handleAddComment(s *session, args []string) (string, error) {
	taskID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	if err := memberViaTask(s, taskID); err != nil {
		return "", err
	}

	comment := &model.TaskComment{
		TaskID:  taskID,
		UserID:  s.userID,
		Content: protocol.Unescape(args[1]),
	}
	if err := s.srv.repos.Comment.Add(comment); err != nil {
		return "", err
	}
	return "Comment added", nil
}

func handleListComments(s *session, args []string) (string, error) {
	taskID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	if err := memberViaTask(s, taskID); err != nil {
		return "", err
	}

	rows, err := s.srv.repos.Comment.ListByTask(taskID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No comments", nil
	}
	return protocol.JoinRecords(formatAuthoredRows(rows)), nil
}

func handleAddAttachment(s *session, args []string) (string, error) {
	taskID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	if err := memberViaTask(s, taskID); err != nil {
		return "", err
	}

	attachment := &model.TaskAttachment{
		TaskID:   taskID,
		Filename: protocol.Unescape(args[1]),
		Filepath: protocol.Unescape(args[2]),
	}
	if err := s.srv.repos.Attachment.Add(attachment); err != nil {
		return "", err
	}
	return "Attachment added", nil
}

func handleListAttachments(s *session, args []string) (string, error) {
	taskID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	if err := memberViaTask(s, taskID); err != nil {
		return "", err
	}

	rows, err := s.srv.repos.Attachment.ListByTask(taskID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No attachments", nil
	}
	return protocol.JoinRecords(formatFileRows(rows)), nil
}

// handleSendChat appends a chat message to a project the caller
// belongs to.
func handleSendChat(s *session, args []string) (string, error) {
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

	message := &model.ChatMessage{
		ProjectID: projectID,
		UserID:    s.userID,
		Content:   protocol.Unescape(args[1]),
	}
	if err := s.srv.repos.Chat.Add(message); err != nil {
		return "", err
	}
	return "Chat sent", nil
}

// handleListChat returns messages with id strictly greater than the
// supplied watermark. An empty result is an empty payload, not a
// placeholder line.
func handleListChat(s *session, args []string) (string, error) {
	projectID, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	afterID, err := parseCursor(args[1])
	if err != nil {
		return "", err
	}
	if _, err := s.srv.repos.Project.FindByID(projectID); err != nil {
		return "", err
	}
	if err := s.srv.rules.RequireMemberOrOwner(projectID, s.userID, "Not authorized"); err != nil {
		return "", err
	}

	rows, err := s.srv.repos.Chat.ListAfter(projectID, afterID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	return protocol.JoinRecords(formatAuthoredRows(rows)), nil
}
