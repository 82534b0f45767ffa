package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
)

type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
	client *Client

	lastAuth      string
	lastRequestID string
	lastBody      string
}

func (s *ClientTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		s.lastAuth = ctx.GetHeader("Authorization")
		s.lastRequestID = ctx.GetHeader("X-Request-ID")
	})
	router.GET("/ok", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"value": 42})
	})
	router.POST("/echo", func(ctx *gin.Context) {
		data, _ := ctx.GetRawData()
		s.lastBody = string(data)
		ctx.JSON(http.StatusCreated, gin.H{"echoed": true})
	})
	router.GET("/empty", func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	router.GET("/denied", func(ctx *gin.Context) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "token expired", "code": "UNAUTHORIZED"})
	})
	router.GET("/forbidden", func(ctx *gin.Context) {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "", "code": ""})
	})
	router.GET("/missing", func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Booking not found", "code": "NOT_FOUND"})
	})
	router.GET("/broken", func(ctx *gin.Context) {
		ctx.Data(http.StatusInternalServerError, "text/plain", []byte("something caught fire"))
	})
	router.GET("/csv", func(ctx *gin.Context) {
		ctx.Data(http.StatusOK, "text/csv", []byte("a,b\n1,2\n"))
	})
	router.POST("/upload", func(ctx *gin.Context) {
		file, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"filename": file.Filename})
	})
	s.server = httptest.NewServer(router)
	s.client = New(s.server.URL, WithTokenSource(TokenSourceFunc(func() string { return "tok-123" })))
}

func (s *ClientTestSuite) TearDownSuite() {
	s.server.Close()
}

func (s *ClientTestSuite) TestGetDecodesAndSetsHeaders() {
	var out struct {
		Value int `json:"value"`
	}
	err := s.client.Get(context.Background(), "/ok", &out)
	s.NoError(err)
	s.Equal(42, out.Value)
	s.Equal("Bearer tok-123", s.lastAuth)
	s.NotEmpty(s.lastRequestID)
}

func (s *ClientTestSuite) TestPostEncodesBody() {
	var out struct {
		Echoed bool `json:"echoed"`
	}
	err := s.client.Post(context.Background(), "/echo", map[string]any{"title": "Study session"}, &out)
	s.NoError(err)
	s.True(out.Echoed)
	s.Equal("Study session", gjson.Get(s.lastBody, "title").String())
}

func (s *ClientTestSuite) TestEmptyBodyTolerated() {
	var out struct{}
	s.NoError(s.client.Get(context.Background(), "/empty", &out))
	s.NoError(s.client.Get(context.Background(), "/empty", nil))
}

func (s *ClientTestSuite) TestUnauthorized() {
	err := s.client.Get(context.Background(), "/denied", nil)
	s.True(IsUnauthorized(err))
	s.Equal(http.StatusUnauthorized, StatusOf(err))
	var ue *UnauthorizedError
	s.ErrorAs(err, &ue)
	s.Equal("token expired", ue.Message)
	s.Equal("UNAUTHORIZED", ue.Code)
}

func (s *ClientTestSuite) TestForbiddenDefaultMessage() {
	err := s.client.Get(context.Background(), "/forbidden", nil)
	s.True(IsForbidden(err))
	var fe *ForbiddenError
	s.ErrorAs(err, &fe)
	s.Equal("Access forbidden", fe.Message)
	s.Equal("FORBIDDEN", fe.Code)
}

func (s *ClientTestSuite) TestNotFound() {
	err := s.client.Get(context.Background(), "/missing", nil)
	s.True(IsNotFound(err))
	var ne *NotFoundError
	s.ErrorAs(err, &ne)
	s.Equal("Booking not found", ne.Message)
}

func (s *ClientTestSuite) TestNonJSONErrorBody() {
	err := s.client.Get(context.Background(), "/broken", nil)
	var ge *APIError
	s.ErrorAs(err, &ge)
	s.Equal(http.StatusInternalServerError, ge.Status)
	s.Equal("something caught fire", ge.Message)
	s.Empty(ge.Code)
}

func (s *ClientTestSuite) TestGetRaw() {
	data, contentType, err := s.client.GetRaw(context.Background(), "/csv")
	s.NoError(err)
	s.Contains(contentType, "text/csv")
	s.Equal("a,b\n1,2\n", string(data))
}

func (s *ClientTestSuite) TestUpload() {
	var out struct {
		Filename string `json:"filename"`
	}
	err := s.client.Upload(context.Background(), "/upload", "file", "report.csv", strings.NewReader("a,b\n"), &out)
	s.NoError(err)
	s.Equal("report.csv", out.Filename)
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestNetworkErrorStatusZero(t *testing.T) {
	client := New("http://127.0.0.1:1")
	err := client.Get(context.Background(), "/anything", nil)
	assert.Error(t, err)
	assert.Equal(t, 0, StatusOf(err))
}

func TestCancelledContextIsNotNetworkError(t *testing.T) {
	client := New("http://127.0.0.1:1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := client.Get(ctx, "/anything", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

// The taxonomy types must all satisfy error themselves, not just carry one.
var (
	_ error = (*APIError)(nil)
	_ error = (*UnauthorizedError)(nil)
	_ error = (*ForbiddenError)(nil)
	_ error = (*NotFoundError)(nil)
)

func TestErrorStrings(t *testing.T) {
	var err error = &UnauthorizedError{APIError{Status: 401, Message: "token expired", Code: "UNAUTHORIZED"}}
	assert.Equal(t, "api: token expired (status=401 code=UNAUTHORIZED)", err.Error())

	err = &APIError{Status: 0, Message: "connection refused"}
	assert.Equal(t, "api: network error: connection refused", err.Error())

	err = &APIError{Status: 500, Message: "boom"}
	assert.Equal(t, "api: boom (status=500)", err.Error())
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	client := New("http://example.test/api/")
	assert.Equal(t, "http://example.test/api", client.BaseURL())
}
