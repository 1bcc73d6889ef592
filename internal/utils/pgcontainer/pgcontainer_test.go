package pgcontainer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecer struct {
	failOn string
	stmts  []string
}

func (r *recordingExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if sql == r.failOn {
		return pgconn.CommandTag{}, errors.New("syntax error")
	}
	r.stmts = append(r.stmts, sql)
	return pgconn.CommandTag{}, nil
}

func writeSQL(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.sql")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestExecFile(t *testing.T) {
	path := writeSQL(t, "TRUNCATE accounts;\n\n  INSERT INTO accounts VALUES (1) ;\n;")

	ex := &recordingExecer{}
	require.NoError(t, ExecFile(context.Background(), ex, path))
	assert.Equal(t, []string{"TRUNCATE accounts", "INSERT INTO accounts VALUES (1)"}, ex.stmts)
}

func TestExecFile_errors(t *testing.T) {
	err := ExecFile(context.Background(), &recordingExecer{}, filepath.Join(t.TempDir(), "absent.sql"))
	require.Error(t, err)

	path := writeSQL(t, "SELECT 1; BROKEN; SELECT 2")
	ex := &recordingExecer{failOn: "BROKEN"}
	err = ExecFile(context.Background(), ex, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BROKEN")
	assert.Equal(t, []string{"SELECT 1"}, ex.stmts)
}
