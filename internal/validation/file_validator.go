package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "trendcli/internal/errors"
)

// excelExtensions lists the workbook formats excelize can open.
var excelExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// FileValidator provides file checks shared by the workbook store and backups
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat output directory %s", dir), err)
	}
	if !info.IsDir() {
		return apperrors.NewValidationError(fmt.Sprintf("%s is not a directory", dir), nil)
	}

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewNotFoundError(fmt.Sprintf("file %s", path), err)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat file %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewValidationError(fmt.Sprintf("%s is a directory, not a file", path), nil)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateExcelFile checks that path is an existing workbook excelize can open
func (v *FileValidator) ValidateExcelFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !excelExtensions[ext] {
		v.logger.Error("File is not an Excel file",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewValidationError(fmt.Sprintf("file %s is not an Excel file (extension: %s)", path, ext), nil)
	}

	// Office lock files share the workbook's extension
	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Refusing temporary Excel file",
			slog.String("file", path))
		return apperrors.NewValidationError(fmt.Sprintf("file %s is a temporary Excel file", path), nil)
	}

	return nil
}
