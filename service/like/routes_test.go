package like

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/huertapp/huerto-server/cmd/models"
	"github.com/huertapp/huerto-server/db"
)

func setupRouter(t *testing.T) (*mux.Router, *gorm.DB) {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(database))

	router := mux.NewRouter()
	NewHandler(database).RegisterRoutes(router)
	return router, database
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateMeGusta(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(t, router, "POST", "/megustas", map[string]interface{}{
		"username": "ana", "pub_id": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ana", body["username"])
	assert.Equal(t, float64(1), body["pub_id"])
}

func TestCreateMeGustaDuplicatePair(t *testing.T) {
	router, database := setupRouter(t)

	rec := doRequest(t, router, "POST", "/megustas", map[string]interface{}{
		"username": "ana", "pub_id": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, "POST", "/megustas", map[string]interface{}{
		"username": "ana", "pub_id": 1,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	var count int64
	database.Model(&models.MeGusta{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// same user may like a different post, and vice versa
	rec = doRequest(t, router, "POST", "/megustas", map[string]interface{}{
		"username": "ana", "pub_id": 2,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, router, "POST", "/megustas", map[string]interface{}{
		"username": "bob", "pub_id": 1,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetMeGustaProjection(t *testing.T) {
	router, _ := setupRouter(t)

	doRequest(t, router, "POST", "/megustas", map[string]interface{}{
		"username": "ana", "pub_id": 3,
	})

	rec := doRequest(t, router, "GET", "/megustas/ana/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]interface{}{
		"username": "ana",
		"pub_id":   float64(3),
	}, body)
}

func TestGetMeGustaNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(t, router, "GET", "/megustas/ana/3", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, "GET", "/megustas/ana/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMeGusta(t *testing.T) {
	router, database := setupRouter(t)

	doRequest(t, router, "POST", "/megustas", map[string]interface{}{
		"username": "ana", "pub_id": 1,
	})

	rec := doRequest(t, router, "PUT", "/megustas/ana/1", map[string]interface{}{
		"pub_id": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ana", body["username"])
	assert.Equal(t, float64(2), body["pub_id"])

	var count int64
	database.Model(&models.MeGusta{}).Where("pub_id = ?", 2).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateMeGustaConflict(t *testing.T) {
	router, _ := setupRouter(t)

	doRequest(t, router, "POST", "/megustas", map[string]interface{}{
		"username": "ana", "pub_id": 1,
	})
	doRequest(t, router, "POST", "/megustas", map[string]interface{}{
		"username": "ana", "pub_id": 2,
	})

	rec := doRequest(t, router, "PUT", "/megustas/ana/1", map[string]interface{}{
		"pub_id": 2,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteMeGusta(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(t, router, "DELETE", "/megustas/ana/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	doRequest(t, router, "POST", "/megustas", map[string]interface{}{
		"username": "ana", "pub_id": 1,
	})

	rec = doRequest(t, router, "DELETE", "/megustas/ana/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, "GET", "/megustas/ana/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMeGustasLength(t *testing.T) {
	router, _ := setupRouter(t)

	doRequest(t, router, "POST", "/megustas", map[string]interface{}{"username": "ana", "pub_id": 1})
	doRequest(t, router, "POST", "/megustas", map[string]interface{}{"username": "bob", "pub_id": 1})
	doRequest(t, router, "DELETE", "/megustas/bob/1", nil)

	rec := doRequest(t, router, "GET", "/megustas", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var likes []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &likes))
	assert.Len(t, likes, 1)
}
