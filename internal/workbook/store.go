package workbook

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"trendcli/internal/catalog"
	apperrors "trendcli/internal/errors"
	"trendcli/internal/infrastructure"
	"trendcli/internal/validation"
)

// defaultSheetName is the sheet a fresh excelize workbook starts with.
const defaultSheetName = "Sheet1"

// Store reads and writes catalog tables in .xlsx workbooks.
type Store struct {
	sheet     string
	logger    *slog.Logger
	validator *validation.FileValidator
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithSheet selects the sheet to load by name instead of the first one.
func WithSheet(name string) StoreOption {
	return func(s *Store) { s.sheet = name }
}

// WithLogger sets the store's logger, the global application logger by default.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a workbook store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{logger: infrastructure.GetLogger()}
	for _, opt := range opts {
		opt(s)
	}
	s.validator = validation.NewFileValidator(s.logger)
	return s
}

var (
	_ catalog.TableLoader = (*Store)(nil)
	_ catalog.TableWriter = (*Store)(nil)
)

// LoadTable reads the configured sheet of the workbook at path.
func (s *Store) LoadTable(ctx context.Context, path string) (*catalog.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateExcelFile(path); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	sheet, sheetErr := s.resolveSheet(f)
	if sheetErr != nil {
		return nil, sheetErr.WithContext("path", path)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read rows", err).
			WithContext("path", path).
			WithContext("sheet", sheet)
	}

	reader, err := newCellReader(f, sheet)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read workbook properties", err).
			WithContext("path", path)
	}

	table := &catalog.Table{Sheet: sheet}
	if len(rows) == 0 {
		s.logger.Debug("Sheet is empty",
			slog.String("path", path),
			slog.String("sheet", sheet))
		return table, nil
	}

	width := 0
	for i, row := range rows {
		if i == 0 || !isBlankRow(row) {
			width = max(width, len(row))
		}
	}
	table.Columns = columnNames(rows[0], width)

	table.Rows = make([][]any, 0, len(rows)-1)
	blank := 0
	for r, row := range rows[1:] {
		if isBlankRow(row) {
			blank++
			continue
		}
		record := make([]any, width)
		for c, raw := range row {
			if raw == "" {
				continue
			}
			// Header is spreadsheet row 1, so record r sits on row r+2.
			value, err := reader.value(c+1, r+2, raw)
			if err != nil {
				return nil, apperrors.NewParsingError("failed to read cell", err).
					WithContext("path", path).
					WithContext("sheet", sheet)
			}
			record[c] = value
		}
		table.Rows = append(table.Rows, record)
	}

	s.logger.Debug("Workbook loaded",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("rows", len(table.Rows)),
		slog.Int("blank_rows", blank),
		slog.Int("columns", len(table.Columns)))

	return table, nil
}

// WriteTable replaces the workbook at path with a single sheet holding t.
func (s *Store) WriteTable(ctx context.Context, path string, t *catalog.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = defaultSheetName
	}
	if sheet != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, sheet); err != nil {
			return apperrors.NewStorageError("failed to name sheet", err).WithContext("sheet", sheet)
		}
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return apperrors.NewStorageError("failed to write header", err).WithContext("path", path)
	}

	styles := newTimeStyles(f)
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewStorageError("failed to address row", err).WithContext("row", i+2)
		}
		record := row
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err).
				WithContext("path", path)
		}
		for c, v := range row {
			ts, ok := v.(time.Time)
			if !ok {
				continue
			}
			dateCell, _ := excelize.CoordinatesToCellName(c+1, i+2)
			if err := styles.apply(sheet, dateCell, ts); err != nil {
				return apperrors.NewStorageError("failed to format date cell", err).
					WithContext("path", path).
					WithContext("cell", dateCell)
			}
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.NewStorageError("failed to create directory", err).WithContext("path", path)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).WithContext("path", path)
	}

	s.logger.Debug("Workbook written",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("rows", len(t.Rows)),
		slog.Int("columns", len(t.Columns)))

	return nil
}

func (s *Store) resolveSheet(f *excelize.File) (string, *apperrors.AppError) {
	sheets := f.GetSheetList()
	if s.sheet == "" {
		if len(sheets) == 0 {
			return "", apperrors.NewParsingError("workbook has no sheets", nil)
		}
		return sheets[0], nil
	}

	for _, name := range sheets {
		if name == s.sheet {
			return name, nil
		}
	}
	return "", apperrors.NewParsingError(fmt.Sprintf("sheet %q not found", s.sheet), nil).
		WithContext("sheets", strings.Join(sheets, ", "))
}

// columnNames names every column up to width, filling blanks the way
// dataframe tooling does ("Unnamed: 3").
func columnNames(header []string, width int) []string {
	names := make([]string, width)
	for i := range names {
		if i < len(header) && strings.TrimSpace(header[i]) != "" {
			names[i] = header[i]
			continue
		}
		names[i] = fmt.Sprintf("Unnamed: %d", i)
	}
	return names
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

// cellReader converts raw cell strings of one sheet to typed values.
type cellReader struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	dates    *dateStyles
}

func newCellReader(f *excelize.File, sheet string) (*cellReader, error) {
	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, err
	}
	return &cellReader{
		f:        f,
		sheet:    sheet,
		date1904: props.Date1904 != nil && *props.Date1904,
		dates:    newDateStyles(f),
	}, nil
}

// value converts a raw cell string using the cell's type and number format.
// Numbers shown as dates come back as time.Time.
func (r *cellReader) value(col, row int, raw string) (any, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}

	typ, err := r.f.GetCellType(r.sheet, cell)
	if err != nil {
		return nil, err
	}

	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true"), nil
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return t, nil
		}
		return raw, nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return raw, nil
		}
		styleID, err := r.f.GetCellStyle(r.sheet, cell)
		if err != nil {
			return nil, err
		}
		isDate, err := r.dates.isDate(styleID)
		if err != nil {
			return nil, err
		}
		if isDate && v >= 0 {
			return excelize.ExcelDateToTime(v, r.date1904)
		}
		return v, nil
	default:
		return raw, nil
	}
}
