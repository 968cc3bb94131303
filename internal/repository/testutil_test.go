package repository

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskhub/internal/model"
	"taskhub/internal/pkg/database"
)

// setupTestDB opens a file-backed sqlite database in a per-test temp
// dir and migrates the schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

func setupRepos(t *testing.T) *Repositories {
	t.Helper()
	return NewRepositories(setupTestDB(t))
}

// mustUser registers a user and returns it.
func mustUser(t *testing.T, repos *Repositories, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Password: "pw"}
	require.NoError(t, repos.User.Create(user))
	return user
}

// mustProject creates a project owned by ownerID, with the owner
// membership row.
func mustProject(t *testing.T, repos *Repositories, name string, ownerID int64) *model.Project {
	t.Helper()
	project := &model.Project{Name: name, OwnerID: ownerID}
	require.NoError(t, repos.Project.CreateWithOwner(project))
	return project
}

func mustTask(t *testing.T, repos *Repositories, projectID int64, title string, assigneeID *int64) *model.Task {
	t.Helper()
	task := &model.Task{
		ProjectID:  projectID,
		Title:      title,
		AssigneeID: assigneeID,
		Status:     model.TaskStatusNotStarted,
		StartDate:  "2026-01-01",
		EndDate:    "2026-01-31",
	}
	require.NoError(t, repos.Task.Create(task))
	return task
}
