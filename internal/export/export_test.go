package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rezonia/reimburse-report/internal/export"
	"github.com/rezonia/reimburse-report/internal/model"
	"github.com/rezonia/reimburse-report/internal/normalizer"
)

var fixedClock = func() time.Time {
	return time.Date(2024, 5, 1, 15, 4, 5, 0, time.UTC)
}

func recordFrom(t *testing.T, body string) *model.Record {
	t.Helper()
	raw, err := normalizer.Parse([]byte(body))
	require.NoError(t, err)
	return normalizer.Normalize(raw)
}

func TestBuildRows(t *testing.T) {
	rec := recordFrom(t, `{
		"expense_type": "Travel",
		"invoice_info": {"invoice_type": "VAT general", "invoice_number": "N1", "invoice_date": "2024-05-01", "total_amount": 100, "total_tax": 13},
		"accounting_analysis": {"account_subject": "Travel-Transport"},
		"risk_analysis": {"risk_score": 0.2},
		"verification": {"is_valid": false}
	}`)

	rows, err := export.BuildRows(rec, nil, "ticket.pdf")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, export.Header, rows[0])
	assert.Equal(t, []string{
		"ticket.pdf", "VAT general", "N1", "2024-05-01",
		"100.00", "13.00", "113.00",
		"Travel", "Travel-Transport", "low", "failed",
	}, rows[1])
}

func TestBuildRows_AlignedToHeader(t *testing.T) {
	for _, body := range []string{`{}`, `{"invoice": {"total": 1}}`, `{"verification": {"result": "pending"}}`} {
		rows, err := export.BuildRows(recordFrom(t, body), nil, "")
		require.NoError(t, err)
		for _, row := range rows {
			assert.Len(t, row, len(export.Header))
		}
	}
}

func TestBuildRows_Defaults(t *testing.T) {
	rows, err := export.BuildRows(recordFrom(t, `{"invoice_info": {"total_amount": 100}}`), nil, "  ")
	require.NoError(t, err)

	row := rows[1]
	assert.Equal(t, export.DefaultFileName, row[0])
	assert.Equal(t, "100.00", row[4])
	assert.Equal(t, "", row[5], "missing tax stays empty")
	assert.Equal(t, "", row[6], "incl-tax is not derived from a missing operand")
	assert.Equal(t, "", row[9], "no risk information")
	assert.Equal(t, "passed", row[10])
}

func TestBuildRows_VerificationVerdict(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"verification": {"is_valid": true}}`, "passed"},
		{`{"verification": {"is_valid": false, "result": "passed"}}`, "failed"},
		{`{"verification": {"verification_result": "manual review"}}`, "manual review"},
		{`{"check": {"result": "pending"}}`, "pending"},
		{`{}`, "passed"},
	}

	for _, tt := range tests {
		rows, err := export.BuildRows(recordFrom(t, tt.body), nil, "a.pdf")
		require.NoError(t, err)
		assert.Equal(t, tt.want, rows[1][10], tt.body)
	}
}

func TestBuildRows_FallsBackToRaw(t *testing.T) {
	raw, err := normalizer.Parse([]byte(`{"invoice": {"number": "R-1"}}`))
	require.NoError(t, err)

	rows, err := export.BuildRows(nil, raw, "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "R-1", rows[1][2])

	_, err = export.BuildRows(nil, nil, "a.pdf")
	var exportErr *model.ExportError
	require.True(t, errors.As(err, &exportErr))
}

func TestEncodeCSV(t *testing.T) {
	rows := export.Rows{
		{"a", "b,c", `say "hi"`},
		{"line\nbreak", "cr\rhere", "plain"},
	}

	got := string(export.EncodeCSV(rows))

	assert.True(t, strings.HasPrefix(got, "\ufeff"))
	assert.Equal(t, "\ufeff"+`a,"b,c","say ""hi"""`+"\r\n"+`"line`+"\n"+`break","cr`+"\r"+`here",plain`, got)
}

func TestEncodeCSV_DecodesToSameRows(t *testing.T) {
	raw, err := normalizer.Parse([]byte(`{"invoice_info": {"invoice_type": "Acme, \"Ltd\"\nline2", "invoice_number": "N1"}}`))
	require.NoError(t, err)

	rows, err := export.BuildRows(nil, raw, `a,"b".pdf`)
	require.NoError(t, err)
	require.Equal(t, "Acme, \"Ltd\"\nline2", rows[1][1])

	data := strings.TrimPrefix(string(export.EncodeCSV(rows)), "\ufeff")
	decoded, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string(rows), decoded)
}

func TestEncodeCSV_RowSeparator(t *testing.T) {
	rows, err := export.BuildRows(recordFrom(t, `{}`), nil, "a.pdf")
	require.NoError(t, err)

	got := string(export.EncodeCSV(rows))
	assert.Equal(t, 1, strings.Count(got, "\r\n"))
	assert.False(t, strings.HasSuffix(got, "\r\n"))
}

func TestColumnWidths(t *testing.T) {
	rows := export.Rows{
		{"a", strings.Repeat("x", 25), strings.Repeat("y", 100)},
		{"", "短文本", ""},
	}
	assert.Equal(t, []int{10, 25, 60}, export.ColumnWidths(rows))
}

func TestXLSXEncoder(t *testing.T) {
	rows, err := export.BuildRows(recordFrom(t, `{"invoice_info": {"invoice_number": "N1", "total_amount": 100, "total_tax": 13}}`), nil, "a.pdf")
	require.NoError(t, err)

	data, err := export.NewXLSXEncoder().Encode(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.SheetName}, f.GetSheetList())

	got, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, export.Header, got[0])
	assert.Equal(t, "N1", got[1][2])
	assert.Equal(t, "113.00", got[1][6])

	width, err := f.GetColWidth(export.SheetName, "A")
	require.NoError(t, err)
	assert.Equal(t, 10.0, width)

	width, err = f.GetColWidth(export.SheetName, "K")
	require.NoError(t, err)
	assert.Equal(t, 19.0, width)
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 1, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "invoice-analysis_2024-01-09.csv", export.FileName(export.FormatCSV, at))
	assert.Equal(t, "invoice-analysis_2024-01-09.xlsx", export.FileName(export.FormatXLSX, at))
}

func TestExporter_Export(t *testing.T) {
	e := export.New(export.WithClock(fixedClock))
	rows, err := export.BuildRows(recordFrom(t, `{}`), nil, "a.pdf")
	require.NoError(t, err)

	csv, err := e.CSV(rows)
	require.NoError(t, err)
	assert.Equal(t, "invoice-analysis_2024-05-01.csv", csv.Name)
	assert.Equal(t, "text/csv; charset=utf-8", csv.ContentType)

	xlsx, err := e.XLSX(rows)
	require.NoError(t, err)
	assert.Equal(t, "invoice-analysis_2024-05-01.xlsx", xlsx.Name)
	assert.NotEmpty(t, xlsx.Data)

	_, err = e.Export(export.Format("pdf"), rows)
	assert.Error(t, err)
}

func TestExporter_LoaderFailure(t *testing.T) {
	var calls atomic.Int32
	e := export.New(export.WithWorkbookLoader(func() (export.WorkbookEncoder, error) {
		calls.Add(1)
		return nil, errors.New("capability unavailable")
	}))

	for i := 0; i < 3; i++ {
		_, err := e.XLSX(export.Rows{export.Header})
		var exportErr *model.ExportError
		require.True(t, errors.As(err, &exportErr))
		assert.Equal(t, "xlsx", exportErr.Format)
	}
	assert.Equal(t, int32(1), calls.Load(), "failed initialization is memoized")

	_, err := e.CSV(export.Rows{export.Header})
	assert.NoError(t, err, "csv does not need the workbook capability")
}

func TestLazy_InitializesOnceUnderConcurrency(t *testing.T) {
	var calls atomic.Int32
	lazy := export.NewLazy(func() (export.WorkbookEncoder, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return export.NewXLSXEncoder(), nil
	})

	var wg sync.WaitGroup
	encoders := make([]export.WorkbookEncoder, 16)
	for i := range encoders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			enc, err := lazy.Get()
			assert.NoError(t, err)
			encoders[i] = enc
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, enc := range encoders {
		assert.Same(t, encoders[0], enc)
	}
}

func TestExporter_SharesProcessWorkbook(t *testing.T) {
	a, b := export.New(), export.New(export.WithClock(fixedClock))
	assert.Same(t, export.Shared(), a.Workbook())
	assert.Same(t, a.Workbook(), b.Workbook())

	encA, err := a.Workbook().Get()
	require.NoError(t, err)
	encB, err := b.Workbook().Get()
	require.NoError(t, err)
	assert.Same(t, encA, encB)

	custom := export.New(export.WithWorkbookLoader(func() (export.WorkbookEncoder, error) {
		return export.NewXLSXEncoder(), nil
	}))
	assert.NotSame(t, export.Shared(), custom.Workbook())
}

func TestExporter_Bundle(t *testing.T) {
	e := export.New(export.WithClock(fixedClock))
	rows, err := export.BuildRows(recordFrom(t, `{}`), nil, "a.pdf")
	require.NoError(t, err)

	artifacts, err := e.Bundle(context.Background(), rows)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, export.FormatCSV, artifacts[0].Format)
	assert.Equal(t, export.FormatXLSX, artifacts[1].Format)
}

func TestExporter_BundleFailure(t *testing.T) {
	e := export.New(export.WithWorkbookLoader(func() (export.WorkbookEncoder, error) {
		return nil, errors.New("boom")
	}))

	_, err := e.Bundle(context.Background(), export.Rows{export.Header})
	var exportErr *model.ExportError
	require.True(t, errors.As(err, &exportErr))
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, export.FormatXLSX, f)

	_, err = export.ParseFormat("xls")
	assert.Error(t, err)
}
