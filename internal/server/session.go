package server

import (
	"bufio"
	"net"
	"strings"

	"go.uber.org/zap"
)

// session is one connection's worker. The authenticated user id is the
// only mutable session state; it is private to this goroutine, so no
// synchronization is needed for it.
type session struct {
	srv    *Server
	conn   net.Conn
	reader *bufio.Reader
	log    *zap.Logger

	userID   int64 // 0 until LOGIN succeeds
	username string
}

func newSession(srv *Server, conn net.Conn) *session {
	return &session{
		srv:    srv,
		conn:   conn,
		reader: bufio.NewReader(conn),
		log:    srv.log.With(zap.String("remote", conn.RemoteAddr().String())),
	}
}

func (s *session) authenticated() bool {
	return s.userID != 0
}

// run reads one request line at a time and writes exactly one response
// per request until the connection drops.
func (s *session) run() {
	defer func() {
		_ = s.conn.Close()
		s.log.Debug("session closed", zap.String("user", s.username))
	}()

	s.log.Debug("session opened")

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}

		s.log.Debug("recv", zap.String("line", line))

		resp := s.srv.dispatcher.Dispatch(s, line)
		if _, err := s.conn.Write([]byte(resp)); err != nil {
			return
		}
	}
}
