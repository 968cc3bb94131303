package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgErrors "taskhub/pkg/responses"
)

func TestProjectCreateWithOwnerMembership(t *testing.T) {
	repos := setupRepos(t)

	alice := mustUser(t, repos, "alice")
	project := mustProject(t, repos, "p", alice.ID)

	// the creator gets a membership row along with ownership
	member, err := repos.Member.Exists(project.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, member)

	owner, err := repos.Project.IsOwner(project.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, owner)
}

func TestProjectListForUser(t *testing.T) {
	repos := setupRepos(t)

	alice := mustUser(t, repos, "alice")
	bob := mustUser(t, repos, "bob")
	mine := mustProject(t, repos, "mine", alice.ID)
	theirs := mustProject(t, repos, "theirs", bob.ID)

	require.NoError(t, repos.Member.Add(theirs.ID, alice.ID))

	rows, err := repos.Project.ListForUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, mine.ID, rows[0].ID)
	assert.Equal(t, theirs.ID, rows[1].ID)

	rows, err = repos.Project.ListForUser(bob.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestMemberAddDuplicate(t *testing.T) {
	repos := setupRepos(t)

	alice := mustUser(t, repos, "alice")
	bob := mustUser(t, repos, "bob")
	project := mustProject(t, repos, "p", alice.ID)

	require.NoError(t, repos.Member.Add(project.ID, bob.ID))

	err := repos.Member.Add(project.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, "Member already added", pkgErrors.AsAppError(err).Message)
}
