package server

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub/internal/access"
	"taskhub/internal/pkg/config"
	"taskhub/internal/repository"
)

// Server owns the protocol listener and spawns one session worker per
// accepted connection.
type Server struct {
	cfg        *config.ServerConfig
	log        *zap.Logger
	repos      *repository.Repositories
	rules      *access.Rules
	dispatcher *Dispatcher

	listener net.Listener
	wg       sync.WaitGroup
	active   atomic.Int64
	done     chan struct{}
	stopOnce sync.Once
}

func New(cfg *config.ServerConfig, db *gorm.DB, log *zap.Logger) *Server {
	repos := repository.NewRepositories(db)
	return &Server{
		cfg:        cfg,
		log:        log,
		repos:      repos,
		rules:      access.NewRules(repos),
		dispatcher: newDispatcher(),
		done:       make(chan struct{}),
	}
}

// Start binds the listener and runs the accept loop in the background.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.listener = listener

	s.log.Info("protocol listener started", zap.String("address", listener.Addr().String()))

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Addr returns the bound listener address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// ActiveSessions returns the number of connected workers.
func (s *Server) ActiveSessions() int64 {
	return s.active.Load()
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
			}
			s.log.Warn("accept failed", zap.Error(err))
			continue
		}

		sess := newSession(s, conn)
		s.active.Add(1)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.active.Add(-1)
			sess.run()
		}()
	}
}

// Shutdown closes the listener and waits for all workers to drain.
func (s *Server) Shutdown() {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			_ = s.listener.Close()
		}
	})
	s.wg.Wait()
}
