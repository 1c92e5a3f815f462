package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：测试辅助工具
// 这个文件包含集成测试的通用辅助函数，遵循DRY原则（Don't Repeat Yourself）
// 将重复的代码（HTTP请求、JSON解析）封装成可复用的函数
//
// 集成测试需要一个运行中的服务（默认localhost:8080），
// 服务未启动时测试自动跳过，不会误报失败

const (
	// ServerAddr 被测服务地址
	ServerAddr = "localhost:8080"
	// BaseURL API基础URL
	BaseURL = "http://" + ServerAddr + "/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// RequireServer 检查被测服务是否在运行，未运行时跳过测试
func RequireServer(t *testing.T) {
	t.Helper()
	conn, err := net.DialTimeout("tcp", ServerAddr, 500*time.Millisecond)
	if err != nil {
		t.Skipf("服务未启动(%s)，跳过集成测试: %v", ServerAddr, err)
	}
	_ = conn.Close()
}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// BookData 图书响应数据
type BookData struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Category        string `json:"category"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// BookListData 图书列表响应数据
type BookListData struct {
	List       []BookData `json:"list"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// BorrowingData 借阅响应数据
type BorrowingData struct {
	ID           uint   `json:"id"`
	BookID       uint   `json:"book_id"`
	BorrowerName string `json:"borrower_name"`
	Status       string `json:"status"`
	ReturnDate   string `json:"return_date"`
	CreatedAt    string `json:"created_at"`
}

// BorrowingListData 借阅列表响应数据
type BorrowingListData struct {
	List []struct {
		ID           uint   `json:"id"`
		BookID       uint   `json:"book_id"`
		BookTitle    string `json:"book_title"`
		BookAuthor   string `json:"book_author"`
		BorrowerName string `json:"borrower_name"`
		Status       string `json:"status"`
		ReturnDate   string `json:"return_date"`
	} `json:"list"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// doJSON 发送HTTP请求并解析统一响应
func doJSON(t *testing.T, method, url string, data interface{}) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}) *Response {
	return doJSON(t, http.MethodPost, url, data)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string) *Response {
	return doJSON(t, http.MethodGet, url, nil)
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}) *Response {
	return doJSON(t, http.MethodPut, url, data)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string) *Response {
	return doJSON(t, http.MethodDelete, url, nil)
}

// GenerateTestTitle 生成唯一的测试书名
//
// 教学说明：
// 使用纳秒时间戳确保书名唯一性，避免测试重复运行时与历史数据混淆
func GenerateTestTitle(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// CreateTestBook 录入测试图书并返回图书信息
func CreateTestBook(t *testing.T, title string, totalCopies int) *BookData {
	t.Helper()

	bookReq := map[string]interface{}{
		"title":        title,
		"author":       "测试作者",
		"isbn":         "9780441172719",
		"category":     "测试分类",
		"total_copies": totalCopies,
	}

	resp := PostJSON(t, BaseURL+"/books", bookReq)
	require.Equal(t, 0, resp.Code, "图书录入失败: %s", resp.Message)

	var data BookData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析图书响应失败")
	require.NotZero(t, data.ID, "图书ID应该大于0")

	return &data
}

// BorrowTestBook 借出测试图书并返回借阅记录
func BorrowTestBook(t *testing.T, bookID uint, borrower string) *BorrowingData {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/borrowings", map[string]interface{}{
		"book_id":       bookID,
		"borrower_name": borrower,
	})
	require.Equal(t, 0, resp.Code, "借书失败: %s", resp.Message)

	var data BorrowingData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析借阅响应失败")

	return &data
}

// GetTestBook 查询图书详情
func GetTestBook(t *testing.T, bookID uint) *BookData {
	t.Helper()

	resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID))
	require.Equal(t, 0, resp.Code, "查询图书失败: %s", resp.Message)

	var data BookData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析图书响应失败")

	return &data
}
