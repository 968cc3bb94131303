package server

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"taskhub/internal/protocol"
	pkgErrors "taskhub/pkg/responses"
)

// handlerFunc runs one command: validate, authorize, persist. It
// returns the success payload, or an error mapped to the failure line.
type handlerFunc func(s *session, args []string) (string, error)

// command declares the wire shape of one keyword: how many argument
// fields, whether the final field swallows the rest of the line, and
// whether a session identity is required.
type command struct {
	arity      int
	restOfLine bool
	needsAuth  bool
	handler    handlerFunc
}

// errInvalidFormat signals a parse failure inside a handler; the
// dispatcher substitutes the per-command format message.
var errInvalidFormat = errors.New("invalid format")

// Dispatcher maps command keywords to handlers.
type Dispatcher struct {
	commands map[string]command
}

func newDispatcher() *Dispatcher {
	d := &Dispatcher{commands: make(map[string]command)}

	reg := func(keyword string, arity int, restOfLine, needsAuth bool, h handlerFunc) {
		d.commands[keyword] = command{arity: arity, restOfLine: restOfLine, needsAuth: needsAuth, handler: h}
	}

	reg(protocol.CmdRegister, 2, false, false, handleRegister)
	reg(protocol.CmdLogin, 2, false, false, handleLogin)

	reg(protocol.CmdCreateProject, 1, true, true, handleCreateProject)
	reg(protocol.CmdInviteMember, 2, false, true, handleInviteMember)
	reg(protocol.CmdListProject, 0, false, true, handleListProject)

	reg(protocol.CmdCreateTask, 6, false, true, handleCreateTask)
	reg(protocol.CmdAssignTask, 2, false, true, handleAssignTask)
	reg(protocol.CmdListTask, 1, false, true, handleListTask)
	reg(protocol.CmdUpdateTaskStatus, 2, false, true, handleUpdateTaskStatus)
	reg(protocol.CmdUpdateTaskProgress, 2, false, true, handleUpdateTaskProgress)
	reg(protocol.CmdSetTaskDates, 3, false, true, handleSetTaskDates)
	reg(protocol.CmdListTaskDetail, 1, false, true, handleListTaskDetail)
	reg(protocol.CmdListTaskGantt, 1, false, true, handleListTaskGantt)

	reg(protocol.CmdAddComment, 2, true, true, handleAddComment)
	reg(protocol.CmdListComments, 1, false, true, handleListComments)
	reg(protocol.CmdAddAttachment, 3, true, true, handleAddAttachment)
	reg(protocol.CmdListAttachments, 1, false, true, handleListAttachments)

	reg(protocol.CmdSendChat, 2, true, true, handleSendChat)
	reg(protocol.CmdListChat, 2, false, true, handleListChat)

	reg(protocol.CmdAddReport, 3, true, true, handleAddReport)
	reg(protocol.CmdListReports, 1, false, true, handleListReports)
	reg(protocol.CmdGetReport, 1, false, true, handleGetReport)
	reg(protocol.CmdUpdateReport, 3, true, true, handleUpdateReport)
	reg(protocol.CmdDeleteReport, 1, false, true, handleDeleteReport)
	reg(protocol.CmdAddReportComment, 2, true, true, handleAddReportComment)
	reg(protocol.CmdListReportComments, 1, false, true, handleListReportComments)
	reg(protocol.CmdAddReportFile, 3, true, true, handleAddReportFile)
	reg(protocol.CmdListReportFiles, 1, false, true, handleListReportFiles)

	return d
}

// Dispatch turns one request line into one response line. Every
// failure is recovered here; nothing propagates to the session loop.
func (d *Dispatcher) Dispatch(s *session, line string) string {
	keyword, rest := protocol.SplitCommand(line)

	cmd, found := d.commands[keyword]
	if !found {
		return protocol.EncodeResponse(protocol.CodeFail, "Unknown command")
	}

	if cmd.needsAuth && !s.authenticated() {
		return protocol.EncodeResponse(protocol.CodeFail, pkgErrors.ErrNotLoggedIn.Message)
	}

	args, ok := protocol.SplitArgs(rest, cmd.arity, cmd.restOfLine)
	if !ok {
		return protocol.EncodeResponse(protocol.CodeFail, formatMessage(keyword))
	}

	payload, err := cmd.handler(s, args)
	if err != nil {
		return protocol.EncodeResponse(protocol.CodeFail, failureMessage(s, keyword, err))
	}
	return protocol.EncodeResponse(protocol.CodeOK, payload)
}

func formatMessage(keyword string) string {
	return fmt.Sprintf("Invalid %s format", keyword)
}

// failureMessage maps a handler error to the one-line failure payload.
func failureMessage(s *session, keyword string, err error) string {
	if errors.Is(err, errInvalidFormat) {
		return formatMessage(keyword)
	}
	if appErr := pkgErrors.AsAppError(err); appErr != nil {
		if appErr.Code == pkgErrors.CodeDatabaseError {
			s.log.Error("storage failure",
				zap.String("command", keyword),
				zap.Error(err),
			)
			return appErr.Message
		}
		return appErr.Message
	}
	s.log.Error("unexpected failure",
		zap.String("command", keyword),
		zap.Error(err),
	)
	return "Internal error"
}
