package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/lib/pq"

	"appealapp/src/config"
	"appealapp/src/db"
	"appealapp/src/internal/testutils"
	"appealapp/src/middleware"
	"appealapp/src/routes"
)

var (
	router *gin.Engine
	store  *testutils.MemoryStore
)

func TestMain(m *testing.M) {
	sqlDB, cleanup := testutils.SetupPostgresForIntegration()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		Logger: logger.New(
			log.New(io.Discard, "", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Silent,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		log.Fatal(err)
	}

	config.LoadConfig()
	middleware.Init()
	db.InitWithGormDB(gormDB)
	if err := db.Migrate(); err != nil {
		log.Fatal(err)
	}

	gin.SetMode(gin.TestMode)
	router = gin.New()
	store = testutils.NewMemoryStore()
	svcs := routes.RegisterRoutes(router, store)
	if err := svcs.User.EnsureAdmin(); err != nil {
		log.Fatal(err)
	}

	registerUserForTests("alice", "123456")
	registerUserForTests("bob", "123456")

	code := m.Run()
	cleanup()
	os.Exit(code)
}

// --- Helper functions ---

// multipartBody is a pre-built multipart payload for doRequest.
type multipartBody struct {
	buf         *bytes.Buffer
	contentType string
}

// newMultipartBody encodes form fields, plus an optional file under the
// "photo" key when content is non-nil.
func newMultipartBody(t *testing.T, fields map[string]string, filename string, content []byte) multipartBody {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, w.WriteField(name, value))
	}
	if content != nil {
		part, err := w.CreateFormFile("photo", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return multipartBody{buf: &buf, contentType: w.FormDataContentType()}
}

// doRequest is a generalized helper to make HTTP requests in tests.
// Supports:
// - body as url.Values -> form-urlencoded
// - body as multipartBody -> multipart/form-data
// - body as any other struct/map -> JSON
// - nil body -> GET/DELETE with query parameters included in path
func doRequest(t *testing.T, method, path string, token string, body interface{}, expectStatus int) *httptest.ResponseRecorder {
	var req *http.Request

	switch v := body.(type) {
	case url.Values:
		req = httptest.NewRequest(method, path, strings.NewReader(v.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	case multipartBody:
		req = httptest.NewRequest(method, path, v.buf)
		req.Header.Set("Content-Type", v.contentType)
	case nil:
		req = httptest.NewRequest(method, path, nil)
	default:
		reqBody, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if expectStatus != 0 {
		require.Equal(t, expectStatus, w.Code,
			fmt.Sprintf("expected %d, got %d, body=%s", expectStatus, w.Code, w.Body.String()))
	}

	return w
}

func registerUserForTests(username, password string) {
	w := httptest.NewRecorder()
	reqBody := fmt.Sprintf(`{"username":%q,"password":%q,"email":"%s@test.ru"}`, username, password, username)
	req, _ := http.NewRequest("POST", "/api/register", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
}
