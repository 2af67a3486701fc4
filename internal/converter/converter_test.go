package converter_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/booking-invoicer/internal/converter"
	"github.com/ginjaninja78/booking-invoicer/internal/sink"
	"github.com/ginjaninja78/booking-invoicer/internal/types"
	"github.com/ginjaninja78/booking-invoicer/mocks"
	"github.com/ginjaninja78/booking-invoicer/pkg/utils"
)

// csvLine builds one export line from a 27-field row.
func csvLine(fields map[int]string) string {
	return strings.Join(rawRow(fields), ";") + "\n"
}

func header() string {
	cols := make([]string, 27)
	for i := range cols {
		cols[i] = "col"
	}
	cols[0] = "Book number"
	return strings.Join(cols, ";") + "\n"
}

func booking(number, name, price string) map[int]string {
	return map[int]string{
		0: number, 1: name, 3: "2024-05-01", 4: "2024-05-04",
		8: "2", 9: "2", 12: price, 19: "sk", 23: "3", 26: "421900111222",
	}
}

type harness struct {
	files    *utils.FileManager
	requests atomic.Int32
	server   *httptest.Server
}

// newHarness wires a processor to a local endpoint that answers 500 for
// payloads mentioning "Reject" and 200 otherwise.
func newHarness(t *testing.T) (*harness, *converter.Processor) {
	t.Helper()
	root := t.TempDir()
	h := &harness{
		files: utils.NewFileManager(
			filepath.Join(root, "incoming"),
			filepath.Join(root, "processed"),
			filepath.Join(root, "payloads"),
			filepath.Join(root, "reports"),
		),
	}
	require.NoError(t, os.MkdirAll(h.files.IncomingDir, 0755))

	h.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.requests.Add(1)
		body, _ := io.ReadAll(r.Body)
		if strings.Contains(string(body), "Reject") {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("server error"))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(h.server.Close)

	logger, _ := logtest.NewNullLogger()
	settings := testSettings()
	settings.APIEndpoint = h.server.URL

	s := sink.New(sink.NewFileStore(h.files.PayloadsDir), sink.NewHTTPSubmitter(5*time.Second), settings, logger)
	p := converter.New(h.files, converter.NewTransformer(settings, testTemplate()), s, logger)
	return h, p
}

func (h *harness) write(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(h.files.IncomingPath(name), []byte(content), 0644))
}

func TestRun_MixedBatch(t *testing.T) {
	h, p := newHarness(t)
	h.write(t, "export.csv", header()+
		csvLine(booking("1001", "Jan Novak", "300.00 EUR"))+
		csvLine(booking("abc", "Header Like", "1 EUR"))+
		csvLine(booking("", "No Number", "1 EUR"))+
		csvLine(booking("1002", "Bad Price", "free"))+
		"\n"+
		csvLine(booking("1003", "Reject Me", "120.00 EUR"))+
		"1004;Short Row\n")

	result := p.Run(context.Background(), "export.csv")

	require.Len(t, result.Results, 4)
	assert.Empty(t, result.FileError)

	assert.Equal(t, types.ProcessResult{Success: true, Message: "Successfully processed booking 1001", BookingNumber: "1001"}, result.Results[0])

	assert.False(t, result.Results[1].Success)
	assert.Equal(t, "1002", result.Results[1].BookingNumber)
	assert.True(t, strings.HasPrefix(result.Results[1].Message, "Error processing booking 1002: invalid price"))

	assert.False(t, result.Results[2].Success)
	assert.Equal(t, "1003", result.Results[2].BookingNumber)
	assert.Equal(t, "Failed to process booking 1003. Status: 500. Response: server error", result.Results[2].Message)

	assert.False(t, result.Results[3].Success)
	assert.Equal(t, "1004", result.Results[3].BookingNumber)
	assert.Contains(t, result.Results[3].Message, "missing fields")

	assert.Equal(t, converter.ProcessingStats{Admitted: 4, Skipped: 2, Succeeded: 1, Failed: 3}, result.Stats)
	assert.Equal(t, int32(2), h.requests.Load())

	assert.FileExists(t, filepath.Join(h.files.PayloadsDir, "1001.json"))
	assert.FileExists(t, filepath.Join(h.files.PayloadsDir, "1003.json"))
	assert.NoFileExists(t, filepath.Join(h.files.PayloadsDir, "1002.json"))

	assert.True(t, result.Moved)
	assert.NoFileExists(t, h.files.IncomingPath("export.csv"))
	assert.FileExists(t, filepath.Join(h.files.ProcessedDir, "export.csv"))

	assert.NotEmpty(t, result.RunID)
	assert.False(t, result.FinishedAt.Before(result.StartedAt))
}

func TestRun_WrongColumnCount(t *testing.T) {
	h, p := newHarness(t)
	h.write(t, "narrow.csv", "a;b;c\n1001;x;y\n")

	results := p.ProcessFile(context.Background(), "narrow.csv")

	require.Len(t, results, 1)
	assert.Equal(t, types.ProcessResult{
		Success: false,
		Message: "Invalid number of columns in file narrow.csv. Expected 27, got 3",
	}, results[0])
	assert.Equal(t, int32(0), h.requests.Load())
	assert.NoDirExists(t, h.files.PayloadsDir)
	assert.FileExists(t, h.files.IncomingPath("narrow.csv"))
}

func TestRun_MissingFile(t *testing.T) {
	_, p := newHarness(t)

	result := p.Run(context.Background(), "absent.csv")

	require.Len(t, result.Results, 1)
	assert.False(t, result.Results[0].Success)
	assert.Empty(t, result.Results[0].BookingNumber)
	assert.True(t, strings.HasPrefix(result.Results[0].Message, "Error processing file absent.csv: "))
	assert.Equal(t, result.Results[0].Message, result.FileError)
	assert.False(t, result.Moved)
}

func TestRun_EmptyFile(t *testing.T) {
	h, p := newHarness(t)
	h.write(t, "empty.csv", "\n\n")

	results := p.ProcessFile(context.Background(), "empty.csv")

	require.Len(t, results, 1)
	assert.Equal(t, "File empty.csv is empty", results[0].Message)
}

func TestRun_MalformedQuotes(t *testing.T) {
	h, p := newHarness(t)
	h.write(t, "broken.csv", header()+
		csvLine(booking("1001", "Jan Novak", "300.00 EUR"))+
		csvLine(booking("1002", `Bad "quote`, "10 EUR")))

	results := p.ProcessFile(context.Background(), "broken.csv")

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Message, "Error processing file broken.csv")
	assert.Equal(t, int32(0), h.requests.Load())
}

func TestRun_HeaderOnly(t *testing.T) {
	h, p := newHarness(t)
	h.write(t, "header.csv", header())

	result := p.Run(context.Background(), "header.csv")

	assert.Empty(t, result.Results)
	assert.True(t, result.Moved)
	assert.FileExists(t, filepath.Join(h.files.ProcessedDir, "header.csv"))
}

func TestRun_ReprocessingOverwritesPayload(t *testing.T) {
	h, p := newHarness(t)
	h.write(t, "first.csv", header()+csvLine(booking("1001", "Jan Novak", "300.00 EUR")))
	h.write(t, "second.csv", header()+csvLine(booking("1001", "Jan Novak", "450.00 EUR")))

	p.ProcessFile(context.Background(), "first.csv")
	p.ProcessFile(context.Background(), "second.csv")

	entries, err := os.ReadDir(h.files.PayloadsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(h.files.PayloadsDir, "1001.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cena_spolu": 450`)
}

func TestRun_ResultCountMatchesAdmittedRows(t *testing.T) {
	root := t.TempDir()
	files := utils.NewFileManager(filepath.Join(root, "in"), filepath.Join(root, "done"),
		filepath.Join(root, "payloads"), filepath.Join(root, "reports"))
	require.NoError(t, files.EnsureDirectories())

	numbers := []string{"7", "", "x1", "8", "Book number", "0009", " 10"}
	var content strings.Builder
	content.WriteString(header())
	for _, n := range numbers {
		content.WriteString(csvLine(booking(n, "Guest", "10 EUR")))
	}
	require.NoError(t, os.WriteFile(files.IncomingPath("batch.csv"), []byte(content.String()), 0644))

	deliver := &mocks.MockPayloadSink{}
	for _, n := range []string{"7", "8", "0009"} {
		deliver.On("Deliver", mock.Anything, n, mock.AnythingOfType("*types.Document")).
			Return(types.Succeeded(n, "ok")).Once()
	}

	logger, _ := logtest.NewNullLogger()
	p := converter.New(files, converter.NewTransformer(testSettings(), testTemplate()), deliver, logger)

	results := p.ProcessFile(context.Background(), "batch.csv")

	require.Len(t, results, 3)
	assert.Equal(t, "7", results[0].BookingNumber)
	assert.Equal(t, "8", results[1].BookingNumber)
	assert.Equal(t, "0009", results[2].BookingNumber)
	deliver.AssertExpectations(t)
}
