package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/report", ReportAccess(token), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestReportAccess_Disabled(t *testing.T) {
	router := newRouter("")

	req := httptest.NewRequest("GET", "/report", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReportAccess_MissingHeader(t *testing.T) {
	router := newRouter("secret")

	req := httptest.NewRequest("GET", "/report", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "X-Report-Token header required")
}

func TestReportAccess_WrongToken(t *testing.T) {
	router := newRouter("secret")

	req := httptest.NewRequest("GET", "/report", http.NoBody)
	req.Header.Set("X-Report-Token", "guess")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid report token")
}

func TestReportAccess_ValidToken(t *testing.T) {
	router := newRouter("secret")

	req := httptest.NewRequest("GET", "/report", http.NoBody)
	req.Header.Set("X-Report-Token", "secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
