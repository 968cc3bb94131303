package server

import (
	"bufio"
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskhub/internal/pkg/config"
	"taskhub/internal/pkg/database"
)

// startTestServer boots a server on a loopback ephemeral port over a
// fresh sqlite database.
func startTestServer(t *testing.T) *Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.ServerConfig{Name: "test", Host: "127.0.0.1", Port: 0}
	srv := New(cfg, db, zap.NewNop())
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Shutdown)

	return srv
}

// testClient drives one protocol connection.
type testClient struct {
	t      *testing.T
	conn   net.Conn
	reader *bufio.Reader
}

func newClient(t *testing.T, srv *Server) *testClient {
	t.Helper()

	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	return &testClient{t: t, conn: conn, reader: bufio.NewReader(conn)}
}

// send writes one request line and reads one response line.
func (c *testClient) send(line string) string {
	c.t.Helper()

	_, err := c.conn.Write([]byte(line + "\n"))
	require.NoError(c.t, err)

	resp, err := c.reader.ReadString('\n')
	require.NoError(c.t, err)
	return strings.TrimSuffix(resp, "\n")
}

// sendList writes one request line and reads a response whose payload
// spans extra embedded lines.
func (c *testClient) sendList(line string, lines int) []string {
	c.t.Helper()

	out := []string{c.send(line)}
	for i := 1; i < lines; i++ {
		next, err := c.reader.ReadString('\n')
		require.NoError(c.t, err)
		out = append(out, strings.TrimSuffix(next, "\n"))
	}
	return out
}

func (c *testClient) register(username, password string) {
	c.t.Helper()
	require.Equal(c.t, "0|Register OK", c.send(fmt.Sprintf("REGISTER|%s|%s", username, password)))
}

func (c *testClient) login(username, password string) {
	c.t.Helper()
	require.Equal(c.t, "0|Login OK", c.send(fmt.Sprintf("LOGIN|%s|%s", username, password)))
}

func TestAuthFlow(t *testing.T) {
	srv := startTestServer(t)
	c := newClient(t, srv)

	assert.Equal(t, "1|Unknown command", c.send("BOGUS|x"))
	assert.Equal(t, "1|Not logged in", c.send("LIST_PROJECT"))

	c.register("alice", "secret")
	assert.Equal(t, "1|Username already taken", c.send("REGISTER|alice|other"))

	assert.Equal(t, "1|Login failed", c.send("LOGIN|alice|wrong"))
	assert.Equal(t, "1|Invalid LOGIN format", c.send("LOGIN|alice"))
	c.login("alice", "secret")

	assert.Equal(t, "0|No projects", c.send("LIST_PROJECT"))
}

func TestProjectAndMembership(t *testing.T) {
	srv := startTestServer(t)
	owner := newClient(t, srv)
	member := newClient(t, srv)

	owner.register("owner", "pw")
	member.register("member", "pw")
	owner.login("owner", "pw")
	member.login("member", "pw")

	assert.Equal(t, "0|Project created", owner.send("CREATE_PROJECT|demo"))
	assert.Equal(t, "0|1|demo", owner.send("LIST_PROJECT"))

	// invitee visibility follows the membership row
	assert.Equal(t, "0|No projects", member.send("LIST_PROJECT"))
	assert.Equal(t, "1|Only project owner can invite members", member.send("INVITE_MEMBER|1|member"))
	assert.Equal(t, "0|Member invited", owner.send("INVITE_MEMBER|1|member"))
	assert.Equal(t, "1|Member already added", owner.send("INVITE_MEMBER|1|member"))
	assert.Equal(t, "0|1|demo", member.send("LIST_PROJECT"))

	assert.Equal(t, "1|User not found", owner.send("INVITE_MEMBER|1|ghost"))
	assert.Equal(t, "1|Project not found", owner.send("INVITE_MEMBER|9|member"))
}

func TestTaskLifecycle(t *testing.T) {
	srv := startTestServer(t)
	owner := newClient(t, srv)
	member := newClient(t, srv)
	outsider := newClient(t, srv)

	owner.register("owner", "pw")
	member.register("member", "pw")
	outsider.register("outsider", "pw")
	owner.login("owner", "pw")
	member.login("member", "pw")
	outsider.login("outsider", "pw")

	require.Equal(t, "0|Project created", owner.send("CREATE_PROJECT|demo"))
	require.Equal(t, "0|Member invited", owner.send("INVITE_MEMBER|1|member"))

	// only the owner creates tasks, and only for members
	assert.Equal(t, "1|Only project owner can create tasks",
		member.send("CREATE_TASK|1|title|desc|member|2026-01-01|2026-01-31"))
	assert.Equal(t, "1|Assignee is not a member of this project",
		owner.send("CREATE_TASK|1|title|desc|outsider|2026-01-01|2026-01-31"))
	assert.Equal(t, "1|Assignee not found",
		owner.send("CREATE_TASK|1|title|desc|ghost|2026-01-01|2026-01-31"))
	assert.Equal(t, "0|Task created",
		owner.send("CREATE_TASK|1|Build login|Wire it up|member|2026-01-01|2026-01-31"))

	assert.Equal(t, "0|1|Build login|Assignee:member|Status:NOT_STARTED|Progress:0|Start:2026-01-01|End:2026-01-31",
		member.send("LIST_TASK|1"))
	assert.Equal(t, "1|Not a member of this project", outsider.send("LIST_TASK|1"))

	// progress writes derive status
	assert.Equal(t, "0|Task progress updated", member.send("UPDATE_TASK_PROGRESS|1|50"))
	assert.Equal(t, "0|1|1|Build login|Wire it up|Assignee:member|Status:IN_PROGRESS|Progress:50|Start:2026-01-01|End:2026-01-31",
		member.send("LIST_TASK_DETAIL|1"))

	// out-of-range progress clamps
	assert.Equal(t, "0|Task progress updated", member.send("UPDATE_TASK_PROGRESS|1|150"))
	assert.Equal(t, "0|1|1|Build login|Wire it up|Assignee:member|Status:DONE|Progress:100|Start:2026-01-01|End:2026-01-31",
		member.send("LIST_TASK_DETAIL|1"))

	// status writes are independent of progress
	assert.Equal(t, "0|Task status updated", member.send("UPDATE_TASK_STATUS|1|IN_PROGRESS"))
	assert.Equal(t, "1|Invalid UPDATE_TASK_STATUS format", member.send("UPDATE_TASK_STATUS|1|BOGUS"))
	assert.Equal(t, "1|Only assignee or project owner can update status",
		outsider.send("UPDATE_TASK_STATUS|1|DONE"))

	assert.Equal(t, "1|Only project owner can set task dates", member.send("SET_TASK_DATES|1|2026-02-01|2026-02-28"))
	assert.Equal(t, "0|Task dates updated", owner.send("SET_TASK_DATES|1|2026-02-01|2026-02-28"))

	assert.Equal(t, "0|1|Build login|Status:IN_PROGRESS|Progress:100|Start:2026-02-01|End:2026-02-28|Assignee:member",
		owner.send("LIST_TASK_GANTT|1"))

	assert.Equal(t, "1|Task not found", owner.send("LIST_TASK_DETAIL|9"))
}

func TestCommentsAndAttachments(t *testing.T) {
	srv := startTestServer(t)
	owner := newClient(t, srv)
	outsider := newClient(t, srv)

	owner.register("owner", "pw")
	outsider.register("outsider", "pw")
	owner.login("owner", "pw")
	outsider.login("outsider", "pw")

	require.Equal(t, "0|Project created", owner.send("CREATE_PROJECT|demo"))
	require.Equal(t, "0|Task created",
		owner.send("CREATE_TASK|1|t|d|owner|2026-01-01|2026-01-31"))

	assert.Equal(t, "0|No comments", owner.send("LIST_COMMENTS|1"))
	assert.Equal(t, "0|Comment added", owner.send("ADD_COMMENT|1|looks good | ship it"))
	assert.Equal(t, "1|Not authorized", outsider.send("ADD_COMMENT|1|sneaky"))

	resp := owner.send("LIST_COMMENTS|1")
	assert.True(t, strings.HasPrefix(resp, `0|1|owner|looks good \| ship it|`), resp)

	assert.Equal(t, "0|No attachments", owner.send("LIST_ATTACHMENTS|1"))
	assert.Equal(t, "0|Attachment added", owner.send("ADD_ATTACHMENT|1|notes.pdf|/srv/files/notes.pdf"))
	resp = owner.send("LIST_ATTACHMENTS|1")
	assert.True(t, strings.HasPrefix(resp, "0|1|notes.pdf|/srv/files/notes.pdf|"), resp)
}

func TestChatWatermark(t *testing.T) {
	srv := startTestServer(t)
	owner := newClient(t, srv)
	member := newClient(t, srv)

	owner.register("owner", "pw")
	member.register("member", "pw")
	owner.login("owner", "pw")
	member.login("member", "pw")

	require.Equal(t, "0|Project created", owner.send("CREATE_PROJECT|demo"))
	require.Equal(t, "0|Member invited", owner.send("INVITE_MEMBER|1|member"))

	// empty history is an empty payload
	assert.Equal(t, "0|", member.send("LIST_CHAT|1|0"))

	assert.Equal(t, "0|Chat sent", owner.send("SEND_CHAT|1|hello"))
	assert.Equal(t, "0|Chat sent", member.send("SEND_CHAT|1|hi there"))

	lines := member.sendList("LIST_CHAT|1|0", 2)
	assert.True(t, strings.HasPrefix(lines[0], "0|1|owner|hello|"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2|member|hi there|"), lines[1])

	// polling from the highest seen id returns only the newer message
	resp := member.send("LIST_CHAT|1|1")
	assert.True(t, strings.HasPrefix(resp, "0|2|member|hi there|"), resp)

	assert.Equal(t, "0|", member.send("LIST_CHAT|1|2"))
	assert.Equal(t, "1|Invalid LIST_CHAT format", member.send("LIST_CHAT|1|abc"))
}

func TestReportLifecycle(t *testing.T) {
	srv := startTestServer(t)
	owner := newClient(t, srv)
	member := newClient(t, srv)

	owner.register("owner", "pw")
	member.register("member", "pw")
	owner.login("owner", "pw")
	member.login("member", "pw")

	require.Equal(t, "0|Project created", owner.send("CREATE_PROJECT|demo"))
	require.Equal(t, "0|Member invited", owner.send("INVITE_MEMBER|1|member"))

	assert.Equal(t, "0|No reports", member.send("LIST_REPORTS|1"))
	assert.Equal(t, "1|Only project owner can add report", member.send("ADD_REPORT|1|weekly|summary"))
	assert.Equal(t, "0|Report created", owner.send("ADD_REPORT|1|weekly|all on track"))

	resp := member.send("LIST_REPORTS|1")
	assert.True(t, strings.HasPrefix(resp, "0|1|weekly|By:owner|At:"), resp)

	resp = member.send("GET_REPORT|1")
	assert.True(t, strings.HasPrefix(resp, "0|1|1|weekly|all on track|By:owner|At:"), resp)

	assert.Equal(t, "1|Only project owner can update report", member.send("UPDATE_REPORT|1|weekly v2|revised"))
	assert.Equal(t, "0|Report updated", owner.send("UPDATE_REPORT|1|weekly v2|revised"))

	assert.Equal(t, "0|No comments", member.send("LIST_REPORT_COMMENTS|1"))
	assert.Equal(t, "0|Report comment added", member.send("ADD_REPORT_COMMENT|1|nice work"))
	resp = owner.send("LIST_REPORT_COMMENTS|1")
	assert.True(t, strings.HasPrefix(resp, "0|1|member|nice work|"), resp)

	assert.Equal(t, "0|No files", member.send("LIST_REPORT_FILES|1"))
	assert.Equal(t, "1|Only project owner can add report file", member.send("ADD_REPORT_FILE|1|r.pdf|/srv/files/r.pdf"))
	assert.Equal(t, "0|Report file added", owner.send("ADD_REPORT_FILE|1|r.pdf|/srv/files/r.pdf"))
	resp = member.send("LIST_REPORT_FILES|1")
	assert.True(t, strings.HasPrefix(resp, "0|1|r.pdf|/srv/files/r.pdf|"), resp)

	assert.Equal(t, "1|Only project owner can delete report", member.send("DELETE_REPORT|1"))
	assert.Equal(t, "0|Report deleted", owner.send("DELETE_REPORT|1"))
	assert.Equal(t, "1|Report not found", owner.send("GET_REPORT|1"))
}

func TestSessionIsolation(t *testing.T) {
	srv := startTestServer(t)
	c1 := newClient(t, srv)
	c2 := newClient(t, srv)

	c1.register("alice", "pw")
	c1.login("alice", "pw")

	// a second connection holds its own unauthenticated state
	assert.Equal(t, "1|Not logged in", c2.send("LIST_PROJECT"))
}
