package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type httpResult struct {
	Code    int
	Error   error
	Headers http.Header
	Body    []byte
}

type header struct {
	Key   string
	Value string
}

func bearer(token string) header {
	return header{Key: "Authorization", Value: "Bearer " + token}
}

func expectStatus(t *testing.T, expected int, result httpResult) {
	t.Helper()
	if result.Error != nil {
		t.Fatalf("request error: %v", result.Error)
	}
	if result.Code != expected {
		t.Fatalf("expected status %d, got %d. Body: %s", expected, result.Code, string(result.Body))
	}
}

func do(router http.Handler, method, url string, body io.Reader, response any, headers ...header) httpResult {
	req := httptest.NewRequest(method, url, body)
	res := httptest.NewRecorder()
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}
	router.ServeHTTP(res, req)

	if response != nil && res.Body.Len() > 0 {
		if err := json.Unmarshal(res.Body.Bytes(), response); err != nil {
			return httpResult{
				Code:    res.Code,
				Error:   fmt.Errorf("failed to decode JSON: %v\n%s", err, res.Body.String()),
				Headers: res.Header(),
				Body:    res.Body.Bytes(),
			}
		}
	}
	return httpResult{Code: res.Code, Headers: res.Header(), Body: res.Body.Bytes()}
}

func postJSON(router http.Handler, url, body string, response any, headers ...header) httpResult {
	headers = append(headers, header{Key: "Content-Type", Value: "application/json"})
	return do(router, http.MethodPost, url, strings.NewReader(body), response, headers...)
}

func get(router http.Handler, url string, response any, headers ...header) httpResult {
	return do(router, http.MethodGet, url, nil, response, headers...)
}

// multipartBody builds a form with the given fields and, when fileContent is
// non-empty, a bookImage file part.
func multipartBody(t *testing.T, fields map[string]string, fileName, fileContent string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileContent != "" {
		fw, err := mw.CreateFormFile("bookImage", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(fileContent)); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return buf, mw.FormDataContentType()
}
