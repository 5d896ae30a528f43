// internal/feed/feed.go
package feed

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/net/html/charset"
)

// Columns of the Timeworld feed consumed by the builders. Every other column
// is kept verbatim on the Remnant anyway.
const (
	ColCode     = "Код"
	ColQuantity = "Количество"
	ColPrice    = "Цена"
)

// Remnant is one feed row, column name -> cell value.
type Remnant map[string]string

func (r Remnant) Code() string     { return r[ColCode] }
func (r Remnant) Quantity() string { return r[ColQuantity] }
func (r Remnant) Price() string    { return r[ColPrice] }

// Loader downloads the inventory archive and parses the spreadsheet inside
// it. The archive holds a single member: the legacy .xls the feed has always
// shipped, an .xlsx, or a .csv in a single-byte charset.
type Loader struct {
	log        zerolog.Logger
	rc         *resty.Client
	url        string
	headerRow  int    // zero-based index of the column-name row
	csvCharset string // charset label for .csv members
}

func NewLoader(log zerolog.Logger, url string, headerRow int, csvCharset string) *Loader {
	if headerRow < 0 {
		headerRow = 0
	}
	return &Loader{
		log:        log,
		rc:         resty.New().SetTimeout(60 * time.Second),
		url:        url,
		headerRow:  headerRow,
		csvCharset: csvCharset,
	}
}

// Download fetches the archive, extracts the spreadsheet into a temp dir,
// parses it and removes the extracted file again. Rows before the header-row
// offset are ignored.
func (l *Loader) Download(ctx context.Context) ([]Remnant, error) {
	resp, err := l.rc.R().SetContext(ctx).Get(l.url)
	if err != nil {
		return nil, fmt.Errorf("feed download: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("feed download: http %s", resp.Status())
	}

	body := resp.Body()
	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("feed archive: %w", err)
	}

	member := pickMember(archive)
	if member == nil {
		return nil, fmt.Errorf("feed archive: no spreadsheet member")
	}

	dir, err := os.MkdirTemp("", "watchsync-feed-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filepath.Base(member.Name))
	if err := extract(member, path); err != nil {
		return nil, fmt.Errorf("feed extract: %w", err)
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(member.Name)) {
	case ".xls":
		rows, err = readXLS(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	case ".csv":
		rows, err = readCSV(path, l.csvCharset)
	}
	if err != nil {
		return nil, fmt.Errorf("feed parse %s: %w", member.Name, err)
	}

	remnants := l.assemble(rows)
	l.log.Info().
		Str("member", member.Name).
		Int("rows", len(remnants)).
		Msg("feed loaded")
	return remnants, nil
}

func pickMember(archive *zip.Reader) *zip.File {
	for _, f := range archive.File {
		if f.FileInfo().IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(f.Name)) {
		case ".xls", ".xlsx", ".csv":
			return f
		}
	}
	return nil
}

func extract(member *zip.File, path string) error {
	src, err := member.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// readXLS handles the BIFF workbook the feed actually ships (ostatki.xls).
// Row positions are preserved: a row the reader cannot give us still
// occupies its index, so the header offset stays valid.
func readXLS(path string) ([][]string, error) {
	wb, err := xls.OpenFile(path)
	if err != nil {
		return nil, err
	}
	sh, err := wb.GetSheet(0)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, sh.GetNumberRows())
	for i := 0; i <= sh.GetNumberRows(); i++ {
		var line []string
		if r, err := sh.GetRow(i); err == nil && r != nil {
			cols := r.GetCols()
			line = make([]string, len(cols))
			for j, c := range cols {
				line[j] = c.GetString()
			}
		}
		rows = append(rows, line)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func readCSV(path, charsetLabel string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rd, err := charset.NewReaderLabel(normalizeCharset(charsetLabel), f)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(rd)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

// assemble maps spreadsheet rows to Remnants: the row at headerRow names the
// columns, every following non-empty row becomes one record. All original
// column names are preserved as keys; missing trailing cells read as "".
func (l *Loader) assemble(rows [][]string) []Remnant {
	if len(rows) <= l.headerRow+1 {
		return nil
	}
	header := rows[l.headerRow]

	remnants := make([]Remnant, 0, len(rows)-l.headerRow-1)
	for _, row := range rows[l.headerRow+1:] {
		if empty(row) {
			continue
		}
		r := make(Remnant, len(header))
		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if i < len(row) {
				r[name] = strings.TrimSpace(row[i])
			} else {
				r[name] = ""
			}
		}
		remnants = append(remnants, r)
	}
	return remnants
}

func empty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// normalizeCharset maps loose charset labels onto names recognized by
// charset.NewReaderLabel.
func normalizeCharset(cs string) string {
	c := strings.TrimSpace(strings.ToLower(cs))
	switch c {
	case "", "cp1251", "windows1251", "win-1251":
		return "windows-1251"
	case "koi8r":
		return "koi8-r"
	default:
		return c
	}
}
