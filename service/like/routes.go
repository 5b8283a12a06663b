package like

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
	router.HandleFunc("/megustas", h.GetMeGustas).Methods("GET")
	router.HandleFunc("/megustas", h.CreateMeGusta).Methods("POST")
	router.HandleFunc("/megustas/{username}/{pub_id}", h.GetMeGusta).Methods("GET")
	router.HandleFunc("/megustas/{username}/{pub_id}", h.UpdateMeGusta).Methods("PUT")
	router.HandleFunc("/megustas/{username}/{pub_id}", h.DeleteMeGusta).Methods("DELETE")
}

// GetMeGustas retrieves all likes
func (h *Handler) GetMeGustas(w http.ResponseWriter, r *http.Request) {
	megustas := make([]models.MeGusta, 0)
	if err := h.db.Find(&megustas).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving likes")
		return
	}

	utils.WriteJSON(w, http.StatusOK, megustas)
}

// CreateMeGusta records a like. The composite primary key rejects a second
// like by the same user on the same post.
func (h *Handler) CreateMeGusta(w http.ResponseWriter, r *http.Request) {
	var createRequest struct {
		Username string `json:"username"`
		PubID    *uint  `json:"pub_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createRequest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if createRequest.Username == "" || createRequest.PubID == nil {
		utils.WriteError(w, http.StatusBadRequest, "username and pub_id are required")
		return
	}

	megusta := models.MeGusta{
		Username: createRequest.Username,
		PubID:    *createRequest.PubID,
	}

	if err := h.db.Create(&megusta).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			utils.WriteError(w, http.StatusConflict, "Post already liked")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Error creating like")
		return
	}

	utils.WriteJSON(w, http.StatusOK, megusta)
}

// GetMeGusta retrieves a like by its (username, pub_id) pair
func (h *Handler) GetMeGusta(w http.ResponseWriter, r *http.Request) {
	username, pubID, err := parseKey(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var megusta models.MeGusta
	if err := h.db.Where("username = ? AND pub_id = ?", username, pubID).First(&megusta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Like not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, megusta)
}

// UpdateMeGusta rewrites a like's key pair. Both columns are part of the
// primary key, so the change is an UPDATE against the old pair and can hit
// the uniqueness constraint.
func (h *Handler) UpdateMeGusta(w http.ResponseWriter, r *http.Request) {
	username, pubID, err := parseKey(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var updateData struct {
		Username *string `json:"username"`
		PubID    *uint   `json:"pub_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var megusta models.MeGusta
	if err := h.db.Where("username = ? AND pub_id = ?", username, pubID).First(&megusta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Like not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	updates := map[string]interface{}{}
	if updateData.Username != nil {
		updates["username"] = *updateData.Username
		megusta.Username = *updateData.Username
	}
	if updateData.PubID != nil {
		updates["pub_id"] = *updateData.PubID
		megusta.PubID = *updateData.PubID
	}

	if len(updates) > 0 {
		result := h.db.Model(&models.MeGusta{}).
			Where("username = ? AND pub_id = ?", username, pubID).
			Updates(updates)
		if result.Error != nil {
			if utils.IsDuplicateKey(result.Error) {
				utils.WriteError(w, http.StatusConflict, "Post already liked")
				return
			}
			utils.WriteError(w, http.StatusInternalServerError, "Error updating like")
			return
		}
	}

	utils.WriteJSON(w, http.StatusOK, megusta)
}

// DeleteMeGusta removes a like
func (h *Handler) DeleteMeGusta(w http.ResponseWriter, r *http.Request) {
	username, pubID, err := parseKey(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	result := h.db.Where("username = ? AND pub_id = ?", username, pubID).Delete(&models.MeGusta{})
	if result.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error deleting like")
		return
	}
	if result.RowsAffected == 0 {
		utils.WriteMessage(w, http.StatusNotFound, "Like not found")
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Like deleted successfully")
}

func parseKey(r *http.Request) (string, uint, error) {
	vars := mux.Vars(r)
	pubID, err := strconv.ParseUint(vars["pub_id"], 10, 64)
	return vars["username"], uint(pubID), err
}
