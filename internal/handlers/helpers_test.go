package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// createRequest はテスト用のHTTPリクエストを組み立てるヘルパーです。
// body には構造体 (JSONにマーシャルされる)・生文字列・nil を渡せる。
// userID が非nilなら X-User-ID を、deviceID が空でなければ X-Device-ID を付ける。
func createRequest(t *testing.T, method, url string, body interface{}, userID *uuid.UUID, deviceID string) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
		reader = nil
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, url, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != nil {
		req.Header.Set("X-User-ID", userID.String())
	}
	if deviceID != "" {
		req.Header.Set("X-Device-ID", deviceID)
	}
	return req
}
