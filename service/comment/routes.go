package comment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

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
	router.HandleFunc("/comentarios", h.GetComentarios).Methods("GET")
	router.HandleFunc("/comentarios", h.CreateComentario).Methods("POST")
	router.HandleFunc("/comentarios/{comment_id}", h.GetComentario).Methods("GET")
	router.HandleFunc("/comentarios/{comment_id}", h.UpdateComentario).Methods("PUT")
	router.HandleFunc("/comentarios/{comment_id}", h.DeleteComentario).Methods("DELETE")
}

// GetComentarios retrieves all comments
func (h *Handler) GetComentarios(w http.ResponseWriter, r *http.Request) {
	var comentarios []models.Comentario
	if err := h.db.Find(&comentarios).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving comments")
		return
	}

	response := make([]models.PublicComentario, 0, len(comentarios))
	for i := range comentarios {
		response = append(response, comentarios[i].Public())
	}

	utils.WriteJSON(w, http.StatusOK, response)
}

// CreateComentario attaches a comment to a post. The referenced post must
// exist; otherwise no row is written.
func (h *Handler) CreateComentario(w http.ResponseWriter, r *http.Request) {
	var createRequest struct {
		PubID     *uint  `json:"pub_id"`
		Contenido string `json:"contenido"`
		Username  string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createRequest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if createRequest.PubID == nil || createRequest.Contenido == "" {
		utils.WriteError(w, http.StatusBadRequest, "pub_id and contenido are required")
		return
	}

	var publicacion models.Publicacion
	if err := h.db.First(&publicacion, *createRequest.PubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Post not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	comentario := models.Comentario{
		PubID:     *createRequest.PubID,
		Contenido: createRequest.Contenido,
		Fecha:     time.Now(),
		Username:  createRequest.Username,
	}

	if err := h.db.Create(&comentario).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error creating comment")
		return
	}

	utils.WriteJSON(w, http.StatusOK, comentario.Public())
}

// GetComentario retrieves a specific comment
func (h *Handler) GetComentario(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseCommentID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	var comentario models.Comentario
	if err := h.db.First(&comentario, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Comment not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, comentario.Public())
}

// UpdateComentario partially updates pub_id and contenido
func (h *Handler) UpdateComentario(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseCommentID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	var updateData struct {
		PubID     *uint   `json:"pub_id"`
		Contenido *string `json:"contenido"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var comentario models.Comentario
	if err := h.db.First(&comentario, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Comment not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if updateData.PubID != nil {
		comentario.PubID = *updateData.PubID
	}
	if updateData.Contenido != nil {
		comentario.Contenido = *updateData.Contenido
	}

	if err := h.db.Save(&comentario).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error updating comment")
		return
	}

	utils.WriteJSON(w, http.StatusOK, comentario.Public())
}

// DeleteComentario removes a comment
func (h *Handler) DeleteComentario(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseCommentID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	var comentario models.Comentario
	if err := h.db.First(&comentario, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Comment not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := h.db.Delete(&comentario).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error deleting comment")
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Comment deleted successfully")
}

func parseCommentID(r *http.Request) (uint, error) {
	commentID, err := strconv.ParseUint(mux.Vars(r)["comment_id"], 10, 64)
	return uint(commentID), err
}
