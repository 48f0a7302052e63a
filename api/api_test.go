package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/abates/control4amp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// silentConn drops writes and never answers, like a real datagram amp.
type silentConn struct{}

func (silentConn) Read(p []byte) (int, error)  { return 0, os.ErrDeadlineExceeded }
func (silentConn) Write(p []byte) (int, error) { return len(p), nil }
func (silentConn) Close() error                { return nil }

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	amp, err := control4amp.New(
		&control4amp.Config{Host: "amp.local", Dialect: control4amp.DialectDatagram, NumInputs: 6, NumOutputs: 4},
		control4amp.ConnectorOption(func() (io.ReadWriteCloser, error) { return silentConn{}, nil }),
	)
	require.NoError(t, err)
	return New(amp)
}

func do(t *testing.T, router http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func status(t *testing.T, router http.Handler, zone string) map[string]interface{} {
	t.Helper()
	w := do(t, router, "GET", "/"+zone+"/status")
	require.Equal(t, http.StatusOK, w.Code)
	decoded := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return decoded
}

func TestListZones(t *testing.T) {
	router := testRouter(t)

	w := do(t, router, "GET", "/zones")
	require.Equal(t, http.StatusOK, w.Code)

	ids := []int{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ids))
	assert.Equal(t, []int{1, 2, 3, 4}, ids)
}

func TestStatusBeforeAnyCommand(t *testing.T) {
	router := testRouter(t)

	got := status(t, router, "1")
	assert.Nil(t, got["power"])
	assert.Nil(t, got["volume"])
	assert.Nil(t, got["source"])
	assert.Equal(t, true, got["available"])
}

func TestPowerAndVolumeRoundTrip(t *testing.T) {
	router := testRouter(t)

	assert.Equal(t, http.StatusOK, do(t, router, "PUT", "/1/power/on").Code)
	assert.Equal(t, http.StatusOK, do(t, router, "PUT", "/1/volume/42").Code)
	assert.Equal(t, http.StatusOK, do(t, router, "PUT", "/1/source/3").Code)

	got := status(t, router, "1")
	assert.Equal(t, true, got["power"])
	assert.Equal(t, 0.42, got["volume"])
	assert.Equal(t, "Input 3", got["source"])

	assert.Equal(t, http.StatusOK, do(t, router, "PUT", "/1/power/off").Code)
	got = status(t, router, "1")
	assert.Equal(t, false, got["power"])
}

func TestValidationErrors(t *testing.T) {
	router := testRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(t, router, "PUT", "/1/volume/500").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "PUT", "/1/source/9").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "PUT", "/1/power/maybe").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "PUT", "/1/source/pizza").Code)
}

func TestUnknownZone(t *testing.T) {
	router := testRouter(t)

	assert.Equal(t, http.StatusNotFound, do(t, router, "GET", "/99/status").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "GET", "/kitchen/status").Code)
}

func TestRefreshUnsupportedOnDatagram(t *testing.T) {
	router := testRouter(t)

	assert.Equal(t, http.StatusNotImplemented, do(t, router, "PUT", "/1/refresh").Code)
}
