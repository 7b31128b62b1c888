package workbook

import (
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/xuri/nfp"
)

const (
	dateFormat     = "yyyy-mm-dd"
	datetimeFormat = "yyyy-mm-dd hh:mm:ss"
)

// dateNumFmts lists the built-in number format IDs that show a calendar date.
// Time-of-day and elapsed-time formats are left out; those cells stay numeric.
var dateNumFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true,
}

// isDateFormat reports whether a custom number format renders a date part
// (year, day or month name).
func isDateFormat(code string) bool {
	parser := nfp.NumberFormatParser()
	for _, section := range parser.Parse(code) {
		for _, token := range section.Items {
			if token.TType != nfp.TokenTypeDateTimes {
				continue
			}
			v := strings.ToLower(token.TValue)
			if strings.ContainsAny(v, "yde") || strings.HasPrefix(v, "mmm") {
				return true
			}
		}
	}
	return false
}

// dateStyles caches whether a cell style index formats its value as a date.
type dateStyles struct {
	f     *excelize.File
	cache map[int]bool
}

func newDateStyles(f *excelize.File) *dateStyles {
	return &dateStyles{f: f, cache: make(map[int]bool)}
}

func (d *dateStyles) isDate(styleID int) (bool, error) {
	if styleID == 0 {
		return false, nil
	}
	if v, ok := d.cache[styleID]; ok {
		return v, nil
	}

	style, err := d.f.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	isDate := dateNumFmts[style.NumFmt]
	if style.CustomNumFmt != nil {
		isDate = isDateFormat(*style.CustomNumFmt)
	}
	d.cache[styleID] = isDate
	return isDate, nil
}

// timeStyles registers the number formats applied to written time.Time cells:
// a plain date at midnight, date and time otherwise.
type timeStyles struct {
	f   *excelize.File
	ids map[string]int
}

func newTimeStyles(f *excelize.File) *timeStyles {
	return &timeStyles{f: f, ids: make(map[string]int)}
}

func (s *timeStyles) apply(sheet, cell string, t time.Time) error {
	format := dateFormat
	if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		format = datetimeFormat
	}

	id, ok := s.ids[format]
	if !ok {
		var err error
		id, err = s.f.NewStyle(&excelize.Style{CustomNumFmt: &format})
		if err != nil {
			return err
		}
		s.ids[format] = id
	}
	return s.f.SetCellStyle(sheet, cell, cell, id)
}
