// Package protocol defines the wire contract: one `|`-separated request
// line in, one `<code>|<payload>` response line out.
package protocol

// Command keywords.
const (
	CmdRegister = "REGISTER"
	CmdLogin    = "LOGIN"

	CmdCreateProject = "CREATE_PROJECT"
	CmdInviteMember  = "INVITE_MEMBER"
	CmdListProject   = "LIST_PROJECT"

	CmdCreateTask         = "CREATE_TASK"
	CmdAssignTask         = "ASSIGN_TASK"
	CmdListTask           = "LIST_TASK"
	CmdUpdateTaskStatus   = "UPDATE_TASK_STATUS"
	CmdUpdateTaskProgress = "UPDATE_TASK_PROGRESS"
	CmdSetTaskDates       = "SET_TASK_DATES"
	CmdListTaskDetail     = "LIST_TASK_DETAIL"
	CmdListTaskGantt      = "LIST_TASK_GANTT"

	CmdAddComment      = "ADD_COMMENT"
	CmdListComments    = "LIST_COMMENTS"
	CmdAddAttachment   = "ADD_ATTACHMENT"
	CmdListAttachments = "LIST_ATTACHMENTS"

	CmdSendChat = "SEND_CHAT"
	CmdListChat = "LIST_CHAT"

	CmdAddReport          = "ADD_REPORT"
	CmdListReports        = "LIST_REPORTS"
	CmdGetReport          = "GET_REPORT"
	CmdUpdateReport       = "UPDATE_REPORT"
	CmdDeleteReport       = "DELETE_REPORT"
	CmdAddReportComment   = "ADD_REPORT_COMMENT"
	CmdListReportComments = "LIST_REPORT_COMMENTS"
	CmdAddReportFile      = "ADD_REPORT_FILE"
	CmdListReportFiles    = "LIST_REPORT_FILES"
)

// Response codes. A single decimal digit on the wire.
const (
	CodeOK   = 0
	CodeFail = 1
)
