package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func echoContext(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/", func(c *gin.Context) {
		lang, _ := c.Get("lang")
		id, _ := c.Get("client_id")
		c.JSON(http.StatusOK, gin.H{"lang": lang, "client_id": id})
	})
	return r
}

func TestClientSessionIssuesCookie(t *testing.T) {
	r := echoContext(ClientSession(false))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, ClientCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	_, err := uuid.Parse(cookies[0].Value)
	assert.NoError(t, err)
	assert.Contains(t, w.Body.String(), cookies[0].Value)
}

func TestClientSessionKeepsKnownClient(t *testing.T) {
	r := echoContext(ClientSession(false))
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: id})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Result().Cookies())
	assert.Contains(t, w.Body.String(), id)

	header := uuid.NewString()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ClientHeader, header)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: id})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), header)
}

func TestClientSessionReplacesBadCookie(t *testing.T) {
	r := echoContext(ClientSession(true))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: "../../etc"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "../../etc", cookies[0].Value)
	assert.True(t, cookies[0].Secure)
}

func TestI18nMiddleware(t *testing.T) {
	r := echoContext(I18nMiddleware("ko"))

	cases := []struct {
		query, header, want string
	}{
		{"", "", "ko"},
		{"", "en-US,en;q=0.9", "en"},
		{"", "fr-FR,ko;q=0.5", "ko"},
		{"", "de", "ko"},
		{"?lang=en", "ko", "en"},
		{"?lang=xx", "en", "en"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/"+tc.query, nil)
		if tc.header != "" {
			req.Header.Set("Accept-Language", tc.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Contains(t, w.Body.String(), `"lang":"`+tc.want+`"`, tc)
	}
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(rate.Every(1e12), 1)
	r := echoContext(ClientSession(false), rl.Middleware())

	send := func(id string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(ClientHeader, id)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	a, b := uuid.NewString(), uuid.NewString()
	assert.Equal(t, http.StatusOK, send(a))
	assert.Equal(t, http.StatusTooManyRequests, send(a))
	assert.Equal(t, http.StatusOK, send(b))
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := echoContext(RequestLogger())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}
