package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/booking-invoicer/internal/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	jsonOutput, noReport, verbose = false, false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

type workspace struct {
	dir     string
	appYAML string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	ws := &workspace{dir: dir, appYAML: filepath.Join(dir, "app.yaml")}

	content := fmt.Sprintf(`data_dir: %[1]s/data
settings_file: %[1]s/config/config.ini
template_file: %[1]s/config/payload-template.json
log_file: %[1]s/logs/invoicer.log
http_timeout: 5s
`, dir)
	require.NoError(t, os.WriteFile(ws.appYAML, []byte(content), 0644))
	return ws
}

func (ws *workspace) path(parts ...string) string {
	return filepath.Join(append([]string{ws.dir}, parts...)...)
}

func exportCSV(bookings ...string) string {
	header := make([]string, 27)
	for i := range header {
		header[i] = fmt.Sprintf("Column %d", i+1)
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, ";") + "\n")
	for _, number := range bookings {
		row := make([]string, 27)
		row[0] = number
		row[1] = "Jana Kovacova"
		row[3] = "2024-06-01"
		row[4] = "2024-06-03"
		row[9] = "2"
		row[12] = "180.00 EUR"
		row[19] = "cz"
		row[23] = "2"
		row[26] = `"+420 777 000 111"`
		b.WriteString(strings.Join(row, ";") + "\n")
	}
	return b.String()
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Booking Invoicer")
	assert.Contains(t, out, "Version:    "+Version)
}

func TestInit_IsIdempotent(t *testing.T) {
	ws := newWorkspace(t)

	out, err := execute(t, "init", "--config", ws.appYAML)
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+ws.path("config", "config.ini"))
	assert.Contains(t, out, "Created "+ws.path("config", "payload-template.json"))
	assert.NotContains(t, out, "Created "+ws.appYAML)

	for _, dir := range []string{"incoming", "processed", "payloads", "reports"} {
		assert.DirExists(t, ws.path("data", dir))
	}
	assert.DirExists(t, ws.path("logs"))

	out, err = execute(t, "init", "--config", ws.appYAML)
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to create")
}

func TestValidate_DefaultsPass(t *testing.T) {
	ws := newWorkspace(t)
	_, err := execute(t, "init", "--config", ws.appYAML)
	require.NoError(t, err)

	out, err := execute(t, "validate", "--config", ws.appYAML)
	require.NoError(t, err)
	assert.Contains(t, out, "No validation errors.")
}

func TestValidate_ReportsErrors(t *testing.T) {
	ws := newWorkspace(t)
	_, err := execute(t, "init", "--config", ws.appYAML)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(ws.path("config", "config.ini"), []byte(
		"API_ENDPOINT=ftp://example.com\nAUTH_HEADER=x\nCONTENT_TYPE=application/json\nCITY_TAX=1.50\nVAT=150\n"), 0644))

	out, err := execute(t, "validate", "--config", ws.appYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 error(s)")
	assert.Contains(t, out, "API_ENDPOINT")
	assert.Contains(t, out, "VAT")
}

func TestEndToEnd(t *testing.T) {
	var received [][]byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received = append(received, body)
		if r.Header.Get("Authorization") != "Basic dGVzdDp0ZXN0" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ws := newWorkspace(t)
	_, err := execute(t, "init", "--config", ws.appYAML)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(ws.path("config", "config.ini"), []byte(fmt.Sprintf(
		"API_ENDPOINT=%s\nAUTH_HEADER=Basic dGVzdDp0ZXN0\nCONTENT_TYPE=application/json\nCITY_TAX=2.00\nVAT=10\n", srv.URL)), 0644))

	src := filepath.Join(t.TempDir(), "june.csv")
	require.NoError(t, os.WriteFile(src, []byte(exportCSV("5001", "Total", "5002")), 0644))

	out, err := execute(t, "import", "--config", ws.appYAML, src)
	require.NoError(t, err)
	assert.Equal(t, "june.csv\n", out)

	out, err = execute(t, "scan", "--config", ws.appYAML)
	require.NoError(t, err)
	assert.Equal(t, "june.csv\n", out)

	out, err = execute(t, "process", "--config", ws.appYAML, "--json")
	require.NoError(t, err)

	var got []fileResults
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "june.csv", got[0].File)
	require.Len(t, got[0].Results, 2)
	for i, number := range []string{"5001", "5002"} {
		assert.True(t, got[0].Results[i].Success, got[0].Results[i].Message)
		assert.Equal(t, number, got[0].Results[i].BookingNumber)
	}

	require.Len(t, received, 2)
	saved, err := os.ReadFile(ws.path("data", "payloads", "5001.json"))
	require.NoError(t, err)
	assert.Equal(t, saved, received[0])
	assert.Contains(t, string(saved), `"ulica": "+420 777 000 111"`)
	assert.Contains(t, string(saved), `"text_zaver": "Miestof tax for accommodation 2.00 EUR/person/night paid in cash."`)

	assert.FileExists(t, ws.path("data", "processed", "june.csv"))
	assert.NoFileExists(t, ws.path("data", "incoming", "june.csv"))

	reports, err := filepath.Glob(ws.path("data", "reports", "june_*.xlsx"))
	require.NoError(t, err)
	require.Len(t, reports, 1)
	fromReport, err := report.ReadResults(reports[0])
	require.NoError(t, err)
	assert.Equal(t, got[0].Results, fromReport)

	summaries, err := filepath.Glob(ws.path("data", "reports", "processing_summary_*.txt"))
	require.NoError(t, err)
	assert.Len(t, summaries, 1)

	out, err = execute(t, "report", reports[0])
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Successfully processed booking 5001")
	assert.Contains(t, out, "2 result(s), 0 failed")

	out, err = execute(t, "scan", "--config", ws.appYAML)
	require.NoError(t, err)
	assert.Contains(t, out, "No CSV files found")
}

func TestProcess_RefusesInvalidSettings(t *testing.T) {
	ws := newWorkspace(t)
	_, err := execute(t, "init", "--config", ws.appYAML)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(ws.path("config", "config.ini"), []byte(
		"API_ENDPOINT=not a url\nAUTH_HEADER=x\nCONTENT_TYPE=application/json\nCITY_TAX=1\nVAT=5\n"), 0644))
	require.NoError(t, os.WriteFile(ws.path("data", "incoming", "a.csv"), []byte(exportCSV("1")), 0644))

	_, err = execute(t, "process", "--config", ws.appYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invoicer validate")
	assert.FileExists(t, ws.path("data", "incoming", "a.csv"))
}

func TestProcess_WrongColumnsTextOutput(t *testing.T) {
	ws := newWorkspace(t)
	_, err := execute(t, "init", "--config", ws.appYAML)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(ws.path("data", "incoming", "narrow.csv"), []byte("a;b\n1;2\n"), 0644))

	out, err := execute(t, "process", "--config", ws.appYAML, "--no-report", "narrow.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "✗ Invalid number of columns in file narrow.csv. Expected 27, got 2")
	assert.Contains(t, out, "Bookings:     0")

	xlsx, err := filepath.Glob(ws.path("data", "reports", "*.xlsx"))
	require.NoError(t, err)
	assert.Empty(t, xlsx)
	assert.FileExists(t, ws.path("data", "incoming", "narrow.csv"))
}
