package server

import (
	"go.uber.org/zap"

	"taskhub/internal/model"
)

// handleRegister creates a user account. Valid before LOGIN.
func handleRegister(s *session, args []string) (string, error) {
	user := &model.User{
		Username: args[0],
		Password: args[1],
	}
	if err := s.srv.repos.User.Create(user); err != nil {
		return "", err
	}
	return "Register OK", nil
}

// handleLogin verifies the credential and binds the session identity.
func handleLogin(s *session, args []string) (string, error) {
	user, err := s.srv.repos.User.Authenticate(args[0], args[1])
	if err != nil {
		return "", err
	}

	s.userID = user.ID
	s.username = user.Username
	s.log.Info("user logged in", zap.String("user", user.Username))

	return "Login OK", nil
}
