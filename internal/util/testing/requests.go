package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type Response struct {
	Code int
	Body []byte
}

func MakeRequest(
	router *gin.Engine,
	method, url, authHeader string,
	body any,
) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func makeRequestExpectingStatus(
	t *testing.T,
	router *gin.Engine,
	method, url, authHeader string,
	body any,
	expectedStatus int,
) *Response {
	t.Helper()

	w := MakeRequest(router, method, url, authHeader, body)
	require.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	return &Response{Code: w.Code, Body: w.Body.Bytes()}
}

func MakeGetRequest(
	t *testing.T,
	router *gin.Engine,
	url, authHeader string,
	expectedStatus int,
) *Response {
	t.Helper()
	return makeRequestExpectingStatus(t, router, http.MethodGet, url, authHeader, nil, expectedStatus)
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authHeader string,
	expectedStatus int,
	out any,
) {
	t.Helper()
	resp := MakeGetRequest(t, router, url, authHeader, expectedStatus)
	require.NoError(t, json.Unmarshal(resp.Body, out))
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url, authHeader string,
	body any,
	expectedStatus int,
) *Response {
	t.Helper()
	return makeRequestExpectingStatus(t, router, http.MethodPost, url, authHeader, body, expectedStatus)
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authHeader string,
	body any,
	expectedStatus int,
	out any,
) {
	t.Helper()
	resp := MakePostRequest(t, router, url, authHeader, body, expectedStatus)
	require.NoError(t, json.Unmarshal(resp.Body, out))
}

func MakePatchRequest(
	t *testing.T,
	router *gin.Engine,
	url, authHeader string,
	body any,
	expectedStatus int,
) *Response {
	t.Helper()
	return makeRequestExpectingStatus(t, router, http.MethodPatch, url, authHeader, body, expectedStatus)
}

func MakeDeleteRequest(
	t *testing.T,
	router *gin.Engine,
	url, authHeader string,
	expectedStatus int,
) *Response {
	t.Helper()
	return makeRequestExpectingStatus(t, router, http.MethodDelete, url, authHeader, nil, expectedStatus)
}
