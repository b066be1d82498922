package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proposalgen/proposal-backend/internal/db"
	"github.com/proposalgen/proposal-backend/internal/models"
	"github.com/proposalgen/proposal-backend/internal/repository"
)

const storedContent = "# Borehole Project\n\n**Generated on:** 2026-03-01 09:05 UTC\n\n---\n\n## Objectives\n\nClean water.\n"

// seedDatabase готовит файл SQLite с одним пользователем и одним предложением.
func seedDatabase(t *testing.T) int64 {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "proposals.db") + "?_pragma=foreign_keys(1)"
	t.Setenv("APP_ENV", "test")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", dsn)
	t.Setenv("PDF_ENGINE", "gofpdf")

	ctx := context.Background()
	conn, err := db.NewSQLite(ctx, dsn)
	require.NoError(t, err)
	defer conn.Close()

	migrations, err := db.Migrations(db.DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(ctx, conn, migrations))

	user := &models.User{Username: "amina", Email: "amina@example.com", PasswordHash: "x"}
	require.NoError(t, repository.NewUserRepository(conn).Create(ctx, user))

	proposal := &models.Proposal{
		Title:       "Borehole Project",
		Content:     storedContent,
		ProjectType: "Other Business",
		GeneratedAt: time.Date(2026, 3, 1, 9, 5, 0, 0, time.UTC),
		UserID:      user.ID,
	}
	require.NoError(t, repository.NewProposalRepository(conn).Create(ctx, proposal))

	return proposal.ID
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExportCommand_Markdown(t *testing.T) {
	id := seedDatabase(t)
	dir := t.TempDir()

	out, err := run(t, "export", strconv.FormatInt(id, 10), "--format", "md", "--dir", dir)
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "proposal_"+strconv.FormatInt(id, 10)+"_"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, storedContent, string(data))
}

func TestExportCommand_PDF(t *testing.T) {
	id := seedDatabase(t)
	dir := t.TempDir()

	out, err := run(t, "export", strconv.FormatInt(id, 10), "--format", "pdf", "--dir", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportCommand_Errors(t *testing.T) {
	seedDatabase(t)

	_, err := run(t, "export", "abc", "--format", "md")
	assert.Error(t, err)

	_, err = run(t, "export", "1", "--format", "odt")
	assert.Error(t, err)

	_, err = run(t, "export", "999", "--format", "md", "--dir", t.TempDir())
	assert.ErrorIs(t, err, repository.ErrProposalNotFound)
}

func TestListCommand(t *testing.T) {
	seedDatabase(t)

	out, err := run(t, "list", "--user", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Borehole Project")
	assert.Contains(t, out, "Total: 1 proposal(s)")

	_, err = run(t, "list", "--user", "0")
	assert.Error(t, err)
}
