package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type RequestOptions struct {
	Method         string
	URL            string
	AuthToken      string
	Body           any
	ExpectedStatus int
}

type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// MakeRequest performs a request against the router and asserts the response status.
// AuthToken is the full header value ("Bearer <token>") or empty for anonymous calls.
// A string Body is sent as-is, anything else is JSON-marshaled.
func MakeRequest(t *testing.T, router *gin.Engine, options RequestOptions) *Response {
	var bodyReader *bytes.Reader

	switch body := options.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case string:
		bodyReader = bytes.NewReader([]byte(body))
	default:
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			panic("failed to marshal request body: " + err.Error())
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(options.Method, options.URL, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if options.AuthToken != "" {
		req.Header.Set("Authorization", options.AuthToken)
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, options.ExpectedStatus, resp.Code,
		"unexpected status for %s %s: %s", options.Method, options.URL, resp.Body.String())

	return &Response{
		StatusCode: resp.Code,
		Body:       resp.Body.Bytes(),
		Headers:    resp.Header(),
	}
}

func MakeGetRequest(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	expectedStatus int,
) *Response {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodGet,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	body any,
	expectedStatus int,
) *Response {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPost,
		URL:            url,
		AuthToken:      authToken,
		Body:           body,
		ExpectedStatus: expectedStatus,
	})
}

func MakePutRequest(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	body any,
	expectedStatus int,
) *Response {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPut,
		URL:            url,
		AuthToken:      authToken,
		Body:           body,
		ExpectedStatus: expectedStatus,
	})
}

func MakeDeleteRequest(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	expectedStatus int,
) *Response {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodDelete,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	expectedStatus int,
	response any,
) *Response {
	resp := MakeGetRequest(t, router, url, authToken, expectedStatus)
	unmarshalResponse(resp, response)
	return resp
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	body any,
	expectedStatus int,
	response any,
) *Response {
	resp := MakePostRequest(t, router, url, authToken, body, expectedStatus)
	unmarshalResponse(resp, response)
	return resp
}

func MakePutRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	body any,
	expectedStatus int,
	response any,
) *Response {
	resp := MakePutRequest(t, router, url, authToken, body, expectedStatus)
	unmarshalResponse(resp, response)
	return resp
}

func unmarshalResponse(resp *Response, response any) {
	if err := json.Unmarshal(resp.Body, response); err != nil {
		panic("failed to unmarshal response: " + err.Error() + "; body: " + string(resp.Body))
	}
}
