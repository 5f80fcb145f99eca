package utils

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsernameRule(t *testing.T) {
	valid := []string{"a", "hodu2024", "ABCdef123", "abcdefghijklmnopqrst"}
	invalid := []string{"", "abcdefghijklmnopqrstu", "with space", "under_score", "한글", "dash-name"}

	for _, u := range valid {
		assert.True(t, IsValidUsername(u), u)
	}
	for _, u := range invalid {
		assert.False(t, IsValidUsername(u), u)
	}
}

func TestStrongPasswordRule(t *testing.T) {
	assert.True(t, IsStrongPassword("Abcdef1!"))
	assert.True(t, IsStrongPassword(`Pass\word9`))
	assert.False(t, IsStrongPassword("Abcde1!"), "too short")
	assert.False(t, IsStrongPassword("abcdefg1!"), "no upper")
	assert.False(t, IsStrongPassword("ABCDEFG1!"), "no lower")
	assert.False(t, IsStrongPassword("Abcdefgh!"), "no digit")
	assert.False(t, IsStrongPassword("Abcdefgh1"), "no symbol")
	assert.False(t, IsStrongPassword("Abcdefg1~"), "tilde is not in the symbol set")
}

func TestPhoneRules(t *testing.T) {
	assert.True(t, IsValidPhoneGroup("1234"))
	assert.False(t, IsValidPhoneGroup("123"))
	assert.False(t, IsValidPhoneGroup("12a4"))

	for _, p := range PhonePrefixes {
		assert.True(t, IsValidPhonePrefix(p))
	}
	assert.False(t, IsValidPhonePrefix("012"))
}

func TestSanitizePhoneGroup(t *testing.T) {
	assert.Equal(t, "1234", SanitizePhoneGroup("12-34-56"))
	assert.Equal(t, "", SanitizePhoneGroup("abc"))
	assert.Equal(t, "05", SanitizePhoneGroup(" 0x5"))
}

func TestValidateStructMessages(t *testing.T) {
	type form struct {
		Username string `validate:"required,username"`
		Password string `validate:"required,strong_password"`
	}

	err := ValidateStruct(form{Username: "bad name", Password: "weak"})
	require.Error(t, err)

	errs := GetValidationErrors("ko", err)
	require.Len(t, errs, 2)
	assert.Equal(t, "username", errs[0].Field)
	assert.Equal(t, "20자 이내의 영문 소문자, 대문자, 숫자만 사용 가능합니다.", errs[0].Message)
	assert.Equal(t, "8자 이상, 영문 대 소문자, 숫자, 특수문자를 사용하세요.", errs[1].Message)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber("ko", 0))
	assert.Equal(t, "1,234", FormatNumber("ko", 1234))
	assert.Equal(t, "12,345,678", FormatNumber("en", 12345678))
}

func TestParseAccessClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"token_type": "access",
		"user_id":    42,
		"exp":        exp.Unix(),
	}).SignedString([]byte("somebody-elses-key"))
	require.NoError(t, err)

	claims, err := ParseAccessClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "42", claims.SubjectID())
	assert.True(t, claims.ExpiresTime().Equal(exp))
	assert.False(t, claims.Expired(time.Now()))
	assert.True(t, claims.Expired(exp.Add(time.Minute)))

	_, err = ParseAccessClaims("opaque-token")
	assert.ErrorIs(t, err, ErrNotJWT)
}

func TestPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/catalog?page=-3&search=%20%EC%82%AC%EA%B3%BC%20", nil)

	params := GetPaginationParams(c)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, "사과", params.Search)

	result := CreatePaginationResult(nil, 31, 2, true, true)
	assert.Equal(t, 3, result.TotalPages)
	SetPaginationHeaders(c, result)
	assert.Equal(t, "31", w.Header().Get("X-Total-Count"))
}

func TestConfigureLogger(t *testing.T) {
	defer ConfigureLogger(&bytes.Buffer{}, "info", "development")

	var buf bytes.Buffer
	ConfigureLogger(&buf, "warn", "production")
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	logrus.Info("dropped")
	logrus.WithField("page", "index.html").Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"page":"index.html"`)

	ConfigureLogger(&buf, "nonsense", "development")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
