package files

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, backupDir string) *Manager {
	t.Helper()
	m := NewManager(backupDir, slog.Default())
	m.now = func() time.Time {
		return time.Date(2026, 10, 19, 10, 15, 0, 0, time.UTC)
	}
	return m
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "products.xlsx")
	require.NoError(t, os.WriteFile(file, []byte("data"), 0644))

	m := newTestManager(t, dir)

	assert.True(t, m.FileExists(file))
	assert.False(t, m.FileExists(filepath.Join(dir, "missing.xlsx")))
	assert.False(t, m.FileExists(dir), "directories are not files")
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.xlsx")
	dst := filepath.Join(dir, "nested", "dst.xlsx")
	require.NoError(t, os.WriteFile(src, []byte("workbook bytes"), 0644))

	m := newTestManager(t, dir)
	require.NoError(t, m.CopyFile(src, dst))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "workbook bytes", string(content))
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	m := newTestManager(t, dir)

	err := m.CopyFile(filepath.Join(dir, "missing.xlsx"), filepath.Join(dir, "dst.xlsx"))
	assert.Error(t, err)
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "products.xlsx")
	require.NoError(t, os.WriteFile(src, []byte("original"), 0644))

	backupDir := filepath.Join(dir, "backups")
	m := newTestManager(t, backupDir)

	backupPath, err := m.Backup(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(backupDir, "products.20261019T101500.bak.xlsx"), backupPath)

	content, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))

	// Source untouched
	content, err = os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))
}

func TestBackup_MissingFile(t *testing.T) {
	dir := t.TempDir()
	m := newTestManager(t, filepath.Join(dir, "backups"))

	backupPath, err := m.Backup(context.Background(), filepath.Join(dir, "new.xlsx"))
	require.NoError(t, err)
	assert.Empty(t, backupPath)

	_, err = os.Stat(filepath.Join(dir, "backups"))
	assert.True(t, os.IsNotExist(err), "backup dir must not be created when nothing is backed up")
}

func TestBackup_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := newTestManager(t, t.TempDir())
	_, err := m.Backup(ctx, "products.xlsx")
	assert.ErrorIs(t, err, context.Canceled)
}
