package feed

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func zipWith(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func serve(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDownloadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	// Timeworld layout: 17 rows of preamble, header on row 18 (index 17)
	if err := f.SetSheetRow(sheet, "A18", &[]any{"Код", "Количество", "Цена"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow(sheet, "A19", &[]any{"72023", "5", "5'990.00 руб."}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow(sheet, "A20", &[]any{"72024", ">10", "12'500.00 руб."}); err != nil {
		t.Fatal(err)
	}
	xlsx, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	srv := serve(t, zipWith(t, "ostatki.xlsx", xlsx.Bytes()))

	l := NewLoader(zerolog.Nop(), srv.URL, 17, "windows-1251")
	remnants, err := l.Download(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(remnants) != 2 {
		t.Fatalf("got %d remnants, want 2", len(remnants))
	}
	if remnants[0].Code() != "72023" || remnants[0].Quantity() != "5" {
		t.Fatalf("remnants[0] = %v", remnants[0])
	}
	if remnants[1].Quantity() != ">10" || remnants[1].Price() != "12'500.00 руб." {
		t.Fatalf("remnants[1] = %v", remnants[1])
	}
}

func TestDownloadCSVWindows1251(t *testing.T) {
	lines := []string{
		";;",
		";;",
		"Код;Количество;Цена",
		"72023;1;1'234.50 руб.",
	}
	enc, err := charmap.Windows1251.NewEncoder().String(strings.Join(lines, "\n"))
	if err != nil {
		t.Fatal(err)
	}

	srv := serve(t, zipWith(t, "ostatki.csv", []byte(enc)))

	l := NewLoader(zerolog.Nop(), srv.URL, 2, "windows-1251")
	remnants, err := l.Download(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(remnants) != 1 {
		t.Fatalf("got %d remnants, want 1", len(remnants))
	}
	r := remnants[0]
	if r.Code() != "72023" || r.Quantity() != "1" || r.Price() != "1'234.50 руб." {
		t.Fatalf("remnant = %v", r)
	}
}

func TestDownloadKeepsAllColumns(t *testing.T) {
	lines := []string{
		"Код;Наименование;Количество;Цена",
		"1;CASIO GA-100;7;1000",
	}
	enc, err := charmap.Windows1251.NewEncoder().String(strings.Join(lines, "\n"))
	if err != nil {
		t.Fatal(err)
	}
	srv := serve(t, zipWith(t, "ostatki.csv", []byte(enc)))

	l := NewLoader(zerolog.Nop(), srv.URL, 0, "windows-1251")
	remnants, err := l.Download(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(remnants) != 1 {
		t.Fatalf("got %d remnants, want 1", len(remnants))
	}
	if got := remnants[0]["Наименование"]; got != "CASIO GA-100" {
		t.Fatalf("extra column lost: %v", remnants[0])
	}
}

func TestPickMemberAcceptsLegacyXLS(t *testing.T) {
	// the real feed archive ships ostatki.xls
	body := zipWith(t, "ostatki.xls", []byte("biff"))
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		t.Fatal(err)
	}
	m := pickMember(zr)
	if m == nil || m.Name != "ostatki.xls" {
		t.Fatalf("legacy .xls member not picked: %v", m)
	}
}

func TestDownloadRoutesLegacyXLSToParser(t *testing.T) {
	srv := serve(t, zipWith(t, "ostatki.xls", []byte("not a workbook")))

	l := NewLoader(zerolog.Nop(), srv.URL, 17, "")
	_, err := l.Download(context.Background())
	if err == nil {
		t.Fatal("garbage workbook should fail to parse")
	}
	// the member must reach the parser, not be rejected up front
	if strings.Contains(err.Error(), "no spreadsheet member") {
		t.Fatalf("member rejected instead of parsed: %v", err)
	}
	if !strings.Contains(err.Error(), "feed parse") {
		t.Fatalf("unexpected failure: %v", err)
	}
}

func TestDownloadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	l := NewLoader(zerolog.Nop(), srv.URL, 17, "")
	if _, err := l.Download(context.Background()); err == nil {
		t.Fatal("expected error on http 404")
	}
}

func TestDownloadNoSpreadsheetMember(t *testing.T) {
	srv := serve(t, zipWith(t, "readme.txt", []byte("nothing here")))

	l := NewLoader(zerolog.Nop(), srv.URL, 17, "")
	if _, err := l.Download(context.Background()); err == nil {
		t.Fatal("expected error for archive without a spreadsheet")
	}
}
