package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/cache"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/db"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/api"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/memory"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/storage"
)

const secret = "test-secret"

type recordingPublisher struct {
	entries []*model.TranslationEntry
}

func (p *recordingPublisher) TranslationStored(_ context.Context, e *model.TranslationEntry) {
	p.entries = append(p.entries, e)
}

type recordingCache struct {
	dropped []string
}

func (c *recordingCache) Invalidate(_ context.Context, key string) {
	c.dropped = append(c.dropped, key)
}

type fixture struct {
	router    *gin.Engine
	memory    *memory.Memory
	publisher *recordingPublisher
	cache     *recordingCache
	exportDir string
	token     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		memory:    memory.New(db.NewMemoryStore(), cache.NewMemory(16, time.Hour), time.Hour),
		publisher: &recordingPublisher{},
		cache:     &recordingCache{},
		exportDir: t.TempDir(),
		router:    gin.New(),
	}
	api.MountGroup(f.router, api.GroupConfig{Prefix: "/api/admin", Auth: true, SecretKey: secret},
		TranslationModule(f.memory, f.publisher),
		ExportModule(f.memory, storage.NewLocalStorage(f.exportDir)),
		CacheModule(f.cache),
	)

	token, err := middleware.GenerateJWT("admin", secret)
	require.NoError(t, err)
	f.token = token
	return f
}

func (f *fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) seed(t *testing.T, text string, score float64) string {
	t.Helper()
	e, _, err := f.memory.Remember(context.Background(), "ur", "sd", text, "ترجمو "+text, "google", "translated", score)
	require.NoError(t, err)
	return e.Key
}

func TestRequiresToken(t *testing.T) {
	f := newFixture(t)
	f.token = "garbage"
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/admin/translations", nil).Code)
}

func TestListTranslations(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "الف", 0.9)
	f.seed(t, "ب", 0.2)
	f.seed(t, "ج", 0.4)

	w := f.do(http.MethodGet, "/api/admin/translations?max_score=0.5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out []packets.TranslationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.InDelta(t, 0.2, out[0].Score, 1e-9)
	assert.NotNil(t, out[0].ExpiresAt)

	w = f.do(http.MethodGet, "/api/admin/translations?limit=1", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Len(t, out, 1)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/admin/translations?max_score=2", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/admin/translations?limit=x", nil).Code)
}

func TestVerifyTranslation(t *testing.T) {
	f := newFixture(t)
	key := f.seed(t, "الف", 0.3)

	w := f.do(http.MethodPut, "/api/admin/translations/"+key, packets.VerifyTranslationRequest{Sindhi: "درست"})
	require.Equal(t, http.StatusOK, w.Code)

	var out packets.TranslationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.Verified)
	assert.Equal(t, "درست", out.TranslatedText)
	assert.Nil(t, out.ExpiresAt)
	require.Len(t, f.publisher.entries, 1)

	w = f.do(http.MethodPut, "/api/admin/translations/missing", packets.VerifyTranslationRequest{Sindhi: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateExport(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "الف", 0.7)
	f.seed(t, "ب", 0.8)

	w := f.do(http.MethodPost, "/api/admin/exports", packets.CreateExportRequest{Name: "memory.json"})
	require.Equal(t, http.StatusCreated, w.Code)

	var out packets.ExportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 2, out.Entries)
	assert.Equal(t, filepath.Join(f.exportDir, "memory.json"), out.URL)

	data, err := os.ReadFile(out.URL)
	require.NoError(t, err)
	var dumped []packets.TranslationResponse
	require.NoError(t, json.Unmarshal(data, &dumped))
	assert.Len(t, dumped, 2)
}

func TestDeleteCacheEntry(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodDelete, "/api/admin/cache", nil).Code)

	w := f.do(http.MethodDelete, "/api/admin/cache?key=quran:surah:1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"quran:surah:1"}, f.cache.dropped)
}
