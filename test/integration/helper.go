//go:build integration

// Package integration 针对运行中服务的端到端测试
//
// 运行方式：
//
//	go run ./cmd/migrate up && go run ./cmd/migrate seed-admin -email admin@test.com -password admin123
//	go run ./cmd/api
//	EDUCONNECT_ADMIN_EMAIL=admin@test.com EDUCONNECT_ADMIN_PASSWORD=admin123 go test -tags integration ./test/integration/...
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const timeout = 10 * time.Second

// Response 统一响应结构
type Response struct {
	Status  int             `json:"-"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// AuthData 注册、登录返回
type AuthData struct {
	Token string `json:"token"`
	User  struct {
		ID     uint   `json:"id"`
		Role   string `json:"role"`
		Status string `json:"status"`
	} `json:"user"`
}

type BookData struct {
	ID          uint   `json:"id"`
	ISBN        string `json:"isbn"`
	Price       string `json:"price"`
	PublisherID uint   `json:"publisherId"`
}

type OrderData struct {
	ID            uint   `json:"id"`
	OrderNo       string `json:"orderNo"`
	Total         string `json:"total"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

func baseURL() string {
	if u := os.Getenv("EDUCONNECT_BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:8080/api/v1"
}

// adminCredentials 未配置时跳过需要管理员的用例
func adminCredentials(t *testing.T) (string, string) {
	email, password := os.Getenv("EDUCONNECT_ADMIN_EMAIL"), os.Getenv("EDUCONNECT_ADMIN_PASSWORD")
	if email == "" || password == "" {
		t.Skip("未设置EDUCONNECT_ADMIN_EMAIL/EDUCONNECT_ADMIN_PASSWORD")
	}
	return email, password
}

func do(t *testing.T, method, path string, body interface{}, token string) *Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL()+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := (&http.Client{Timeout: timeout}).Do(req)
	require.NoError(t, err, "请求失败，服务是否已启动？")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "解析响应失败: %s", string(raw))
	result.Status = resp.StatusCode
	return &result
}

// decode 断言成功并解析data
func decode(t *testing.T, resp *Response, v interface{}) {
	t.Helper()
	require.True(t, resp.Success, "HTTP %d: %s", resp.Status, resp.Message)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

var seq atomic.Int64

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d_%d@test.com", prefix, time.Now().UnixNano(), seq.Add(1))
}

func uniqueISBN() string {
	return fmt.Sprintf("978%010d", (time.Now().UnixNano()+seq.Add(1))%10000000000)
}

func register(t *testing.T, role, org string) (email, password string) {
	t.Helper()
	email, password = uniqueEmail(role), "secret123"
	resp := do(t, http.MethodPost, "/auth/register", map[string]string{
		"name":             org + "联系人",
		"email":            email,
		"password":         password,
		"role":             role,
		"organizationName": org,
	}, "")
	require.Equal(t, http.StatusCreated, resp.Status, resp.Message)
	return email, password
}

func login(t *testing.T, email, password string) *AuthData {
	t.Helper()
	var data AuthData
	decode(t, do(t, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, ""), &data)
	return &data
}
