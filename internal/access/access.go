// Package access holds the authorization predicates gating every
// project-scoped command. All predicates are read-only.
package access

import (
	"taskhub/internal/repository"
	pkgErrors "taskhub/pkg/responses"
)

// Rules evaluates owner/member relationships against storage.
type Rules struct {
	repos *repository.Repositories
}

func NewRules(repos *repository.Repositories) *Rules {
	return &Rules{repos: repos}
}

// IsOwner reports whether userID owns projectID.
func (r *Rules) IsOwner(projectID, userID int64) (bool, error) {
	return r.repos.Project.IsOwner(projectID, userID)
}

// IsMember reports whether userID holds a membership in projectID.
// The owner always holds one, created with the project.
func (r *Rules) IsMember(projectID, userID int64) (bool, error) {
	return r.repos.Member.Exists(projectID, userID)
}

// IsMemberOrOwner combines the two membership checks.
func (r *Rules) IsMemberOrOwner(projectID, userID int64) (bool, error) {
	member, err := r.IsMember(projectID, userID)
	if err != nil || member {
		return member, err
	}
	return r.IsOwner(projectID, userID)
}

// ProjectOfTask lifts a task id to its owning project. A task that does
// not resolve is a not-found failure, never a crash.
func (r *Rules) ProjectOfTask(taskID int64) (int64, error) {
	return r.repos.Task.ProjectID(taskID)
}

// ProjectOfReport lifts a report id to its owning project.
func (r *Rules) ProjectOfReport(reportID int64) (int64, error) {
	return r.repos.Report.ProjectID(reportID)
}

// RequireOwner fails with an authorization error unless userID owns
// projectID. The project must already be resolved to exist.
func (r *Rules) RequireOwner(projectID, userID int64, message string) error {
	ok, err := r.IsOwner(projectID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return pkgErrors.New(pkgErrors.CodeForbidden, message)
	}
	return nil
}

// RequireMemberOrOwner fails with an authorization error unless userID
// is a member or the owner of projectID.
func (r *Rules) RequireMemberOrOwner(projectID, userID int64, message string) error {
	ok, err := r.IsMemberOrOwner(projectID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return pkgErrors.New(pkgErrors.CodeForbidden, message)
	}
	return nil
}
