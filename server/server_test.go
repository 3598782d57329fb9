package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synthetic_data_generator/encoder"
	"synthetic_data_generator/generator"
	"synthetic_data_generator/orchestrator"
	"synthetic_data_generator/publisher"
	"synthetic_data_generator/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	pub, err := publisher.New(publisher.Config{Dir: t.TempDir()}, nil)
	require.NoError(t, err)
	orch, err := orchestrator.New(generator.MockLLM{}, encoder.NewRegistry(encoder.Options{}), pub,
		orchestrator.WithJobStore(store.NewMemoryStore()))
	require.NoError(t, err)
	srv, err := New(orch, Options{GenerateTimeout: time.Minute, EnableMetrics: true})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func postGenerate(t *testing.T, ts *httptest.Server, body string) (int, generateResp) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/generate", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out generateResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestGenerateAndDownload(t *testing.T) {
	ts := newTestServer(t)

	code, out := postGenerate(t, ts, `{"format":"CSV File (.csv)","size":5,"content":"3","subject":"finance"}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, out.OK)
	assert.Equal(t, "✅ Generated 5 rows × 3 columns about 'finance' successfully!", out.Status)
	assert.True(t, strings.HasPrefix(out.File, "synthetic_"))
	require.NotEmpty(t, out.JobID)

	resp, err := http.Get(ts.URL + "/api/jobs/" + out.JobID + "/file")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), out.File)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Transaction_ID,Amount,Currency\n"))

	resp, err = http.Get(ts.URL + "/api/jobs/" + out.JobID)
	require.NoError(t, err)
	defer resp.Body.Close()
	var job store.Job
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&job))
	assert.Equal(t, "finance", job.Subject)
	assert.True(t, job.OK)
}

func TestGenerateValidationErrors(t *testing.T) {
	ts := newTestServer(t)

	code, out := postGenerate(t, ts, `{"format":"Word Document (.docx)","size":"2","content":"memo"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, out.OK)
	assert.Equal(t, "INVALID_CONTENT_TYPE", string(out.Code))
	assert.True(t, strings.HasPrefix(out.Status, "❌ Error: Invalid content type: memo"))
	assert.Empty(t, out.File)

	code, out = postGenerate(t, ts, `{"format":"PDF Document (.pdf)","size":"2","content":"article"}`)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "CAPABILITY_UNAVAILABLE", string(out.Code))

	resp, err := http.Post(ts.URL+"/api/generate", "application/json", strings.NewReader(`{not json`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateRejectsOversizedBody(t *testing.T) {
	ts := newTestServer(t)

	body := `{"format":"CSV File (.csv)","size":5,"content":"3","subject":"` + strings.Repeat("x", maxGenerateBody) + `"}`
	resp, err := http.Post(ts.URL+"/api/generate", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out errorResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INVALID_PARAM", string(out.Code))

	lr, err := http.Get(ts.URL + "/api/jobs")
	require.NoError(t, err)
	defer lr.Body.Close()
	var jobs []store.Job
	require.NoError(t, json.NewDecoder(lr.Body).Decode(&jobs))
	assert.Empty(t, jobs)
}

func TestJobsEndpoints(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 3; i++ {
		code, _ := postGenerate(t, ts, `{"format":"Text File (.txt)","size":1,"content":"article","subject":"ops"}`)
		require.Equal(t, http.StatusOK, code)
	}

	resp, err := http.Get(ts.URL + "/api/jobs?limit=2")
	require.NoError(t, err)
	defer resp.Body.Close()
	var jobs []store.Job
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&jobs))
	assert.Len(t, jobs, 2)

	resp, err = http.Get(ts.URL + "/api/jobs?limit=abc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/jobs/does-not-exist")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var e errorResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "NOT_FOUND", string(e.Code))
}

func TestFormatsHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/formats")
	require.NoError(t, err)
	defer resp.Body.Close()
	var catalog []encoder.FormatOption
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&catalog))
	require.NotEmpty(t, catalog)
	for _, opt := range catalog {
		assert.NotEqual(t, encoder.FormatPDF, opt.Format)
	}

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "synthgen_http_requests_total")
}

func TestFlexString(t *testing.T) {
	var req generateReq
	require.NoError(t, json.Unmarshal([]byte(`{"size":10,"content":"5"}`), &req))
	assert.Equal(t, flexString("10"), req.Size)
	assert.Equal(t, flexString("5"), req.Content)

	assert.Error(t, json.Unmarshal([]byte(`{"size":true}`), &req))
}

func TestNewRequiresOrchestrator(t *testing.T) {
	_, err := New(nil, Options{})
	assert.Error(t, err)
}
