package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/textable/internal/config"
	"github.com/tsawler/textable/store"
)

const psOutput = "  PID TTY          TIME CMD\n" +
	"    1 ?        00:00:01 init\n" +
	"  812 pts/0    00:00:00 bash -l\n"

type parseBody struct {
	DocumentID string              `json:"document_id"`
	Saved      bool                `json:"saved"`
	Command    string              `json:"command"`
	Columns    []map[string]any    `json:"columns"`
	Rows       []map[string]string `json:"rows"`
	RowCount   int                 `json:"row_count"`
	Records    []map[string]string `json:"records"`
	Warnings   []map[string]any    `json:"warnings"`
}

func newTestServer(t *testing.T, withStore bool) *Server {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Mode = "test"

	var st *store.Store
	if withStore {
		var err error
		st, err = store.Open(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { st.Close() })
	}
	return New(cfg, st)
}

func do(t *testing.T, s *Server, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, false)

	w := do(t, s, http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
}

func TestCommandsEndpoint(t *testing.T) {
	s := newTestServer(t, false)

	w := do(t, s, http.MethodGet, "/v1/commands", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		Commands []struct {
			Name   string   `json:"name"`
			Fields []string `json:"fields"`
		} `json:"commands"`
	}](t, w)

	var names []string
	for _, cmd := range body.Commands {
		names = append(names, cmd.Name)
		if cmd.Name == "ps" {
			assert.Contains(t, cmd.Fields, "pid")
		}
	}
	assert.Contains(t, names, "ps")
	assert.Contains(t, names, "lsof")
}

func TestParse_MatchesCommandByName(t *testing.T) {
	s := newTestServer(t, false)

	w := do(t, s, http.MethodPost, "/v1/parse?name=ps.txt", []byte(psOutput), "text/plain")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode[parseBody](t, w)
	assert.Equal(t, "ps", body.Command)
	assert.NotEmpty(t, body.DocumentID)
	assert.False(t, body.Saved)
	assert.Equal(t, 2, body.RowCount)
	require.Len(t, body.Rows, 2)
	assert.Equal(t, "bash -l", body.Rows[1]["CMD"])
	require.Len(t, body.Records, 2)
	assert.Equal(t, "1", body.Records[0]["pid"])
	assert.Equal(t, "bash -l", body.Records[1]["command"])

	require.Len(t, body.Columns, 4)
	assert.Equal(t, "PID", body.Columns[0]["name"])
	assert.EqualValues(t, 2, body.Columns[0]["start"])
	assert.NotNil(t, body.Warnings)
}

func TestParse_ExplicitCommand(t *testing.T) {
	s := newTestServer(t, false)

	w := do(t, s, http.MethodPost, "/v1/parse?command=ps", []byte(psOutput), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ps", decode[parseBody](t, w).Command)
}

func TestParse_Generic(t *testing.T) {
	s := newTestServer(t, false)

	w := do(t, s, http.MethodPost, "/v1/parse", []byte("Filesystem Size\n/dev/sda1  50G\n"), "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[parseBody](t, w)
	assert.Equal(t, "table", body.Command)
	require.Len(t, body.Records, 1)
	assert.Equal(t, "50G", body.Records[0]["Size"])
}

func TestParse_Multipart(t *testing.T) {
	s := newTestServer(t, false)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "ps_aux.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte(psOutput))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := do(t, s, http.MethodPost, "/v1/parse", buf.Bytes(), mw.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode[parseBody](t, w)
	assert.Equal(t, "ps", body.Command)
	assert.Equal(t, "aux", body.Records[0]["arguments"])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"empty body", "/v1/parse", "", http.StatusBadRequest},
		{"no header", "/v1/parse", "\n\n# nothing\n", http.StatusUnprocessableEntity},
		{"unknown command", "/v1/parse?command=netstat", psOutput, http.StatusBadRequest},
		{"binary", "/v1/parse", "\x00\x01\x02\x03", http.StatusUnsupportedMediaType},
		{"bad export format", "/v1/export?format=yaml", psOutput, http.StatusBadRequest},
	}

	s := newTestServer(t, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, tt.target, []byte(tt.body), "")
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.NotEmpty(t, decode[map[string]string](t, w)["error"])
		})
	}
}

func TestParse_TooLarge(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Mode = "test"
	cfg.Server.MaxBodyBytes = 16
	s := New(cfg, nil)

	w := do(t, s, http.MethodPost, "/v1/parse", []byte(psOutput), "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestParse_SaveWithoutStore(t *testing.T) {
	s := newTestServer(t, false)

	w := do(t, s, http.MethodPost, "/v1/parse?save=true", []byte(psOutput), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/v1/documents", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExport(t *testing.T) {
	s := newTestServer(t, false)

	w := do(t, s, http.MethodPost, "/v1/export?format=csv", []byte("Filesystem Size\n/dev/sda1  50G\n"), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "table.csv")
	assert.Equal(t, "Filesystem,Size\n/dev/sda1,50G\n", w.Body.String())

	w = do(t, s, http.MethodPost, "/v1/export", []byte(psOutput), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/x-ndjson", w.Header().Get("Content-Type"))
	assert.Equal(t, 2, strings.Count(w.Body.String(), "\n"))
}

func TestDocuments(t *testing.T) {
	s := newTestServer(t, true)

	w := do(t, s, http.MethodPost, "/v1/parse?name=ps.txt&save=true", []byte(psOutput+"   77\n"), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	parsed := decode[parseBody](t, w)
	require.True(t, parsed.Saved)
	id := parsed.DocumentID

	w = do(t, s, http.MethodGet, "/v1/documents?command=ps", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Documents []store.DocumentInfo `json:"documents"`
	}](t, w)
	require.Len(t, list.Documents, 1)
	assert.Equal(t, id, list.Documents[0].ID)
	assert.Equal(t, 3, list.Documents[0].RowCount)

	w = do(t, s, http.MethodGet, "/v1/documents?command=lsof", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"documents":[]}`, w.Body.String())

	w = do(t, s, http.MethodGet, "/v1/documents/"+id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	doc := decode[struct {
		Document store.DocumentInfo   `json:"document"`
		Rows     []map[string]string `json:"rows"`
	}](t, w)
	assert.Equal(t, "ps", doc.Document.Command)
	require.Len(t, doc.Rows, 3)
	assert.Equal(t, "812", doc.Rows[1]["pid"])

	w = do(t, s, http.MethodDelete, "/v1/documents/"+id, nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, http.MethodGet, "/v1/documents/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodDelete, "/v1/documents/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusFor(&http.MaxBytesError{Limit: 1}))
}
