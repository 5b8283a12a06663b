package comment

import (
	"bytes"
	"encoding/json"
	"fmt"
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

func seedPost(t *testing.T, database *gorm.DB) uint {
	t.Helper()
	pub := models.Publicacion{Descripcion: "d", Tipo: "t", Asunto: "a", Username: "ana"}
	require.NoError(t, database.Create(&pub).Error)
	return pub.PubID
}

func TestCreateComentario(t *testing.T) {
	router, database := setupRouter(t)
	pubID := seedPost(t, database)

	rec := doRequest(t, router, "POST", "/comentarios", map[string]interface{}{
		"pub_id": pubID, "contenido": "que bonito", "username": "bob",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(pubID), body["pub_id"])
	assert.Equal(t, "que bonito", body["contenido"])
	assert.NotZero(t, body["comment_id"])
}

func TestCreateComentarioPostMissing(t *testing.T) {
	router, database := setupRouter(t)
	seedPost(t, database)

	rec := doRequest(t, router, "POST", "/comentarios", map[string]interface{}{
		"pub_id": 99999, "contenido": "hola",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var count int64
	database.Model(&models.Comentario{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateComentarioMissingFields(t *testing.T) {
	router, database := setupRouter(t)
	pubID := seedPost(t, database)

	rec := doRequest(t, router, "POST", "/comentarios", map[string]interface{}{
		"pub_id": pubID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	database.Model(&models.Comentario{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestComentarioProjection(t *testing.T) {
	router, database := setupRouter(t)
	pubID := seedPost(t, database)

	doRequest(t, router, "POST", "/comentarios", map[string]interface{}{
		"pub_id": pubID, "contenido": "hola", "username": "bob",
	})

	rec := doRequest(t, router, "GET", "/comentarios/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "username")
	assert.NotContains(t, body, "fecha")
}

func TestUpdateComentarioPartial(t *testing.T) {
	router, database := setupRouter(t)
	pubID := seedPost(t, database)

	doRequest(t, router, "POST", "/comentarios", map[string]interface{}{
		"pub_id": pubID, "contenido": "antes",
	})

	rec := doRequest(t, router, "PUT", "/comentarios/1", map[string]string{"contenido": "despues"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "despues", body["contenido"])
	assert.Equal(t, float64(pubID), body["pub_id"])
}

func TestDeleteComentarioIdempotentSignal(t *testing.T) {
	router, database := setupRouter(t)
	pubID := seedPost(t, database)

	rec := doRequest(t, router, "DELETE", "/comentarios/7", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doRequest(t, router, "DELETE", "/comentarios/7", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	doRequest(t, router, "POST", "/comentarios", map[string]interface{}{
		"pub_id": pubID, "contenido": "hola",
	})
	rec = doRequest(t, router, "DELETE", "/comentarios/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, router, "GET", "/comentarios/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetComentariosLength(t *testing.T) {
	router, database := setupRouter(t)
	pubID := seedPost(t, database)

	for i := 0; i < 3; i++ {
		rec := doRequest(t, router, "POST", "/comentarios", map[string]interface{}{
			"pub_id": pubID, "contenido": fmt.Sprintf("comentario %d", i),
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	doRequest(t, router, "DELETE", "/comentarios/2", nil)

	rec := doRequest(t, router, "GET", "/comentarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var comments []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	assert.Len(t, comments, 2)
}
