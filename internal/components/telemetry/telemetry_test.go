package telemetry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := NewRecorder()
	scoped := NewScopedAPI("outer", NewScopedAPI("inner", rec))

	scoped.ReportBroken("component.method", errors.New("boom"))
	scoped.ReportWarning("component", "a", 1)
	scoped.ReportDebug("message")
	scoped.ReportCount("items", 3)

	require.Equal(t, []string{"inner: outer: component.method"}, rec.Ids(REPORT_BROKEN))
	require.Equal(t, []string{"inner: outer: component"}, rec.Ids(REPORT_WARNING))
	require.Equal(t, []string{"inner: outer: message"}, rec.Ids(REPORT_DEBUG))

	warnings := rec.Reports(REPORT_WARNING)
	require.Equal(t, []any{"a", 1}, warnings[0].Params)

	counts := rec.Reports(REPORT_COUNT)
	require.Len(t, counts, 1)
	require.Equal(t, int64(3), counts[0].Count)
}

func TestRecorderIsEmpty(t *testing.T) {
	rec := NewRecorder()
	require.Empty(t, rec.Reports(REPORT_BROKEN))
	require.Empty(t, rec.Ids(REPORT_WARNING))
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	output, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	require.Equal(t, dir, output.Directory())

	output.Write("7", "contents")
	contents, err := os.ReadFile(filepath.Join(dir, "7"))
	require.NoError(t, err)
	require.Equal(t, "contents", string(contents))
}

func TestFilesystemOutputKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	precious := filepath.Join(dir, "precious.txt")
	require.NoError(t, os.WriteFile(precious, []byte("keep me"), 0600))

	output, err := NewFilesystemOutput(dir)
	require.NoError(t, err)

	contents, err := os.ReadFile(precious)
	require.NoError(t, err)
	require.Equal(t, "keep me", string(contents))

	require.NotEqual(t, dir, output.Directory())
	require.Equal(t, dir, filepath.Dir(output.Directory()))

	output.Write("1", "message")
	_, err = os.Stat(filepath.Join(dir, "1"))
	require.ErrorIs(t, err, os.ErrNotExist)
	contents, err = os.ReadFile(filepath.Join(output.Directory(), "1"))
	require.NoError(t, err)
	require.Equal(t, "message", string(contents))

	// a second run does not touch the first one
	second, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	require.NotEqual(t, output.Directory(), second.Directory())
	_, err = os.Stat(filepath.Join(output.Directory(), "1"))
	require.NoError(t, err)
}

type memoryOutput map[string]string

func (m memoryOutput) Write(id, contents string) {
	m[id] = contents
}

func TestInstrumentResty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Test", "yes")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))
	defer server.Close()

	rec := NewRecorder()
	output := memoryOutput{}
	client := resty.New()
	InstrumentResty(client, rec, output)

	res, err := client.R().Get(server.URL + "/pot")
	require.NoError(t, err)
	require.Equal(t, http.StatusTeapot, res.StatusCode())

	require.Equal(t, []string{report_resty_request, report_resty_response}, rec.Ids(REPORT_DEBUG))
	require.Empty(t, rec.Ids(REPORT_BROKEN))

	message, ok := output["1"]
	require.True(t, ok)
	require.True(t, strings.HasPrefix(message, "---- REQUEST ----"))
	require.Contains(t, message, "GET "+server.URL+"/pot")
	require.Contains(t, message, "418 "+server.URL+"/pot")
	require.Contains(t, message, "X-Test: yes")
	require.Contains(t, message, "short and stout")
}

func TestInstrumentRestyError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL + "/gone"
	server.Close()

	rec := NewRecorder()
	output := memoryOutput{}
	client := resty.New()
	InstrumentResty(client, rec, output)

	_, err := client.R().Get(url)
	require.Error(t, err)

	require.Equal(t, []string{report_resty_response}, rec.Ids(REPORT_BROKEN))
	require.Contains(t, output["1"], "GET "+url)
}

func TestFormatRequestBody(t *testing.T) {
	require.Equal(t, "<NO BODY AVAILABLE>", formatRequestBody(nil))

	req, err := http.NewRequest(http.MethodPost, "http://localhost", strings.NewReader("payload"))
	require.NoError(t, err)
	require.Equal(t, "payload", formatRequestBody(req))
}

func TestFormatHeaders(t *testing.T) {
	require.Equal(t, "", formatHeaders(http.Header{}))
	require.Equal(t, "Accept: text/html", formatHeaders(http.Header{"Accept": {"text/html"}}))
}
