package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub/internal/model"
	pkgErrors "taskhub/pkg/responses"
)

func TestReportListNewestFirst(t *testing.T) {
	repos := setupRepos(t)

	alice := mustUser(t, repos, "alice")
	project := mustProject(t, repos, "p", alice.ID)

	for _, title := range []string{"week 1", "week 2", "week 3"} {
		require.NoError(t, repos.Report.Create(&model.Report{
			ProjectID: project.ID,
			Title:     title,
			CreatedBy: alice.ID,
		}))
	}

	rows, err := repos.Report.ListByProject(project.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "week 3", rows[0].Title)
	assert.Equal(t, "week 1", rows[2].Title)
	assert.Equal(t, "alice", rows[0].Author)
}

func TestReportUpdate(t *testing.T) {
	repos := setupRepos(t)

	alice := mustUser(t, repos, "alice")
	project := mustProject(t, repos, "p", alice.ID)
	report := &model.Report{ProjectID: project.ID, Title: "draft", CreatedBy: alice.ID}
	require.NoError(t, repos.Report.Create(report))

	require.NoError(t, repos.Report.Update(report.ID, "final", "all done"))

	detail, err := repos.Report.Detail(report.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", detail.Title)
	assert.Equal(t, "all done", detail.Description)
}

func TestReportDeleteCascades(t *testing.T) {
	repos := setupRepos(t)

	alice := mustUser(t, repos, "alice")
	project := mustProject(t, repos, "p", alice.ID)
	report := &model.Report{ProjectID: project.ID, Title: "r", CreatedBy: alice.ID}
	require.NoError(t, repos.Report.Create(report))

	require.NoError(t, repos.Report.AddComment(&model.ReportComment{
		ReportID: report.ID, UserID: alice.ID, Content: "lgtm",
	}))
	require.NoError(t, repos.Report.AddFile(&model.ReportFile{
		ReportID: report.ID, Filename: "a.pdf", Filepath: "/srv/files/a.pdf",
	}))

	require.NoError(t, repos.Report.Delete(report.ID))

	_, err := repos.Report.FindByID(report.ID)
	require.Error(t, err)
	assert.Equal(t, "Report not found", pkgErrors.AsAppError(err).Message)

	comments, err := repos.Report.ListComments(report.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	files, err := repos.Report.ListFiles(report.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
}
