// Package workbook loads and writes catalog tables as Excel workbooks.
//
// Store implements both catalog.TableLoader and catalog.TableWriter. Loading
// reads one sheet (the first by default): the first row is the header and
// every following non-blank row is a record. Cells keep their type: numbers
// become float64, numbers with a date format time.Time, booleans bool,
// everything else string, empty cells nil.
//
// Writing produces a fresh single-sheet workbook with the header row followed
// by the records, replacing the destination file. time.Time cells are written
// as dates formatted yyyy-mm-dd, or yyyy-mm-dd hh:mm:ss when they carry a
// time of day.
package workbook
