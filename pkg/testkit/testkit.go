// Package testkit provides helpers shared by the package-level tests:
// firing requests at an http.Handler and asserting on the JSON envelope
// responses with testify.
package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoJSON fires a JSON request at handler and returns the recorder.
// body may be nil for bodyless requests.
func DoJSON(t *testing.T, handler http.Handler, method, target string, body interface{}, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "marshal request body")
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// DoForm fires an urlencoded form POST at handler and returns the recorder.
func DoForm(t *testing.T, handler http.Handler, target string, form url.Values, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// RequireStatus fails the test immediately on a status mismatch, printing
// the body so the failure is diagnosable.
func RequireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "unexpected status, body: %s", rec.Body.String())
}

// AssertJSONField decodes the recorded body and asserts one top-level field.
func AssertJSONField(t *testing.T, rec *httptest.ResponseRecorder, field string, want interface{}) {
	t.Helper()

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got),
		"response is not valid JSON: %s", rec.Body.String())
	assert.Equal(t, want, got[field], "field %q mismatch", field)
}

// DecodeJSON unmarshals the recorded body into dest.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest),
		"response is not valid JSON: %s", rec.Body.String())
}
