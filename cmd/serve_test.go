package cmd

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsphweid/abcplay/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleParseReportsTuneErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader("X:1\nT:t\nL:1/8\nL:1/4\nK:C\nA|]"))
	w := httptest.NewRecorder()
	HandleParse(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var res model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "configuration error", res.Kind)
}

func TestWriteErrorInternal(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, errors.New("disk full"))

	assert := assert.New(t)
	assert.Equal(http.StatusInternalServerError, w.Code)
	assert.Equal("application/json", w.Header().Get("Content-Type"))
	assert.Contains(w.Body.String(), `"offset":-1`)
	assert.NotContains(w.Body.String(), `"kind"`)
}

func TestRouterRejectsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/parse", nil)
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
