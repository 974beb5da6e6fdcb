package testing

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// PerformRequest Helper for performing requests in tests.
func PerformRequest(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			panic("failed to marshal request body: " + err.Error())
		}
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

// BearerHeaders builds the Authorization header for a signed token.
func BearerHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// DecodeBody unmarshals a recorded JSON response into T, panicking on bad JSON.
func DecodeBody[T any](res *httptest.ResponseRecorder) T {
	var out T
	if err := json.Unmarshal(res.Body.Bytes(), &out); err != nil {
		panic("failed to decode response body: " + err.Error() + ": " + res.Body.String())
	}
	return out
}
