package locale

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestLocalizer(t *testing.T) {
	t.Helper()
	require.NoError(t, InitLocalizer(os.DirFS("..")))
}

func TestInitLocalizer(t *testing.T) {
	initTestLocalizer(t)
	tags := make([]string, 0)
	for _, tag := range Languages() {
		tags = append(tags, tag.String())
	}
	assert.ElementsMatch(t, []string{"en-US", "ko-KR"}, tags)
}

func TestI18n(t *testing.T) {
	initTestLocalizer(t)

	en := NewLocalizer("en-US")
	ko := NewLocalizer("ko-KR")

	assert.Equal(t, "Memo is not found", I18n(en, "toasts.memoNotFound"))
	assert.Equal(t, "이것은 마이메모 앱의 소개페이지 입니다.", I18n(ko, "about"))
	assert.Equal(t,
		"Too many failed login attempts, try again in 30 seconds.",
		I18n(en, "toasts.tooManyAttempts", "Seconds==30"))

	assert.Equal(t, "no.such.key", I18n(en, "no.such.key"))
	assert.Equal(t, "about", I18n(nil, "about"))
}

func TestFallbackToEnglish(t *testing.T) {
	initTestLocalizer(t)
	assert.Equal(t, "Invalid credentials", I18n(NewLocalizer("fr-FR"), "toasts.invalidCredentials"))
}

func TestCreateTemplateData(t *testing.T) {
	data := createTemplateData([]string{"Seconds==30", "broken", "A==b==c"})
	assert.Equal(t, map[string]any{"Seconds": "30", "A": "b==c"}, data)
}

func TestLocalizerMiddleware(t *testing.T) {
	initTestLocalizer(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(LocalizerMiddleware())
	r.GET("/about", func(c *gin.Context) {
		c.String(http.StatusOK, I18n(GetLocalizer(c), "about"))
	})

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "이것은 마이메모 앱의 소개페이지 입니다.", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("Accept-Language", "ko-KR")
	req.AddCookie(&http.Cookie{Name: "lang", Value: "en-US"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "This is the introduction page of the My Memo app.", w.Body.String())
}
