package files

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "trendcli/internal/errors"
	"trendcli/internal/validation"
)

const backupTimeFormat = "20060102T150405"

// Manager provides file management operations
type Manager struct {
	backupDir string
	validator *validation.FileValidator
	logger    *slog.Logger
	now       func() time.Time
}

// NewManager creates a new file manager writing backups under backupDir
func NewManager(backupDir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		backupDir: backupDir,
		validator: validation.NewFileValidator(logger),
		logger:    logger,
		now:       time.Now,
	}
}

// FileExists checks if a regular file exists at the given path
func (m *Manager) FileExists(path string) bool {
	info, err := os.Stat(path)
	exists := err == nil && !info.IsDir()

	m.logger.Debug("FileExists check",
		slog.String("path", path),
		slog.Bool("exists", exists))

	return exists
}

// CopyFile copies a file from source to destination
func (m *Manager) CopyFile(src, dst string) error {
	m.logger.Info("Copying file",
		slog.String("src", src),
		slog.String("dst", dst))

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	return dstFile.Sync()
}

// Backup copies path into the backup directory under a timestamped name and
// returns the backup path. A missing file is not an error; it returns "".
func (m *Manager) Backup(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !m.FileExists(path) {
		return "", nil
	}

	if err := m.validator.ValidateOutputDirectory(m.backupDir); err != nil {
		return "", err
	}

	dst := filepath.Join(m.backupDir, m.backupName(path))
	if err := m.CopyFile(path, dst); err != nil {
		return "", apperrors.NewStorageError("failed to back up workbook", err).
			WithContext("path", path).
			WithContext("backup", dst)
	}

	return dst, nil
}

// backupName turns products.xlsx into products.<timestamp>.bak.xlsx
func (m *Manager) backupName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s.%s.bak%s", stem, m.now().Format(backupTimeFormat), ext)
}
