package post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/huertapp/huerto-server/cmd/models"
	"github.com/huertapp/huerto-server/cmd/utils"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/publicaciones", h.GetPublicaciones).Methods("GET")
	router.HandleFunc("/publicaciones", h.CreatePublicacion).Methods("POST")
	router.HandleFunc("/publicaciones/{pub_id}", h.GetPublicacion).Methods("GET")
	router.HandleFunc("/publicaciones/{pub_id}", h.UpdatePublicacion).Methods("PUT")
	router.HandleFunc("/publicaciones/{pub_id}", h.DeletePublicacion).Methods("DELETE")
}

// GetPublicaciones retrieves all posts
func (h *Handler) GetPublicaciones(w http.ResponseWriter, r *http.Request) {
	var publicaciones []models.Publicacion
	if err := h.db.Find(&publicaciones).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving posts")
		return
	}

	response := make([]models.PublicPublicacion, 0, len(publicaciones))
	for i := range publicaciones {
		response = append(response, publicaciones[i].Public())
	}

	utils.WriteJSON(w, http.StatusOK, response)
}

// CreatePublicacion creates a new post
func (h *Handler) CreatePublicacion(w http.ResponseWriter, r *http.Request) {
	var createRequest struct {
		Descripcion string `json:"descripcion"`
		Tipo        string `json:"tipo"`
		Asunto      string `json:"asunto"`
		Imagen      string `json:"imagen"`
		Username    string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createRequest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if createRequest.Descripcion == "" || createRequest.Tipo == "" || createRequest.Asunto == "" || createRequest.Username == "" {
		utils.WriteError(w, http.StatusBadRequest, "descripcion, tipo, asunto and username are required")
		return
	}

	publicacion := models.Publicacion{
		Descripcion: createRequest.Descripcion,
		Tipo:        createRequest.Tipo,
		Asunto:      createRequest.Asunto,
		Imagen:      createRequest.Imagen,
		Username:    createRequest.Username,
	}

	if err := h.db.Create(&publicacion).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error creating post")
		return
	}

	utils.WriteJSON(w, http.StatusOK, publicacion.Public())
}

// GetPublicacion retrieves a specific post
func (h *Handler) GetPublicacion(w http.ResponseWriter, r *http.Request) {
	pubID, err := parsePubID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var publicacion models.Publicacion
	if err := h.db.First(&publicacion, pubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Post not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, publicacion.Public())
}

// UpdatePublicacion partially updates descripcion, tipo and asunto
func (h *Handler) UpdatePublicacion(w http.ResponseWriter, r *http.Request) {
	pubID, err := parsePubID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var updateData struct {
		Descripcion *string `json:"descripcion"`
		Tipo        *string `json:"tipo"`
		Asunto      *string `json:"asunto"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var publicacion models.Publicacion
	if err := h.db.First(&publicacion, pubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Post not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if updateData.Descripcion != nil {
		publicacion.Descripcion = *updateData.Descripcion
	}
	if updateData.Tipo != nil {
		publicacion.Tipo = *updateData.Tipo
	}
	if updateData.Asunto != nil {
		publicacion.Asunto = *updateData.Asunto
	}

	if err := h.db.Save(&publicacion).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error updating post")
		return
	}

	utils.WriteJSON(w, http.StatusOK, publicacion.Public())
}

// DeletePublicacion deletes a post and its associated likes and comments
func (h *Handler) DeletePublicacion(w http.ResponseWriter, r *http.Request) {
	pubID, err := parsePubID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var publicacion models.Publicacion
	if err := h.db.First(&publicacion, pubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Post not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	tx := h.db.Begin()

	if err := tx.Where("pub_id = ?", pubID).Delete(&models.MeGusta{}).Error; err != nil {
		tx.Rollback()
		utils.WriteError(w, http.StatusInternalServerError, "Error deleting likes")
		return
	}

	if err := tx.Where("pub_id = ?", pubID).Delete(&models.Comentario{}).Error; err != nil {
		tx.Rollback()
		utils.WriteError(w, http.StatusInternalServerError, "Error deleting comments")
		return
	}

	if err := tx.Delete(&publicacion).Error; err != nil {
		tx.Rollback()
		utils.WriteError(w, http.StatusInternalServerError, "Error deleting post")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error deleting post")
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Post deleted successfully")
}

func parsePubID(r *http.Request) (uint, error) {
	pubID, err := strconv.ParseUint(mux.Vars(r)["pub_id"], 10, 64)
	return uint(pubID), err
}
