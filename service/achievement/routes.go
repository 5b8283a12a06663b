package achievement

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
	router.HandleFunc("/logros", h.GetLogros).Methods("GET")
	router.HandleFunc("/logros", h.CreateLogro).Methods("POST")
	router.HandleFunc("/logros/{logro_id}", h.GetLogro).Methods("GET")
	router.HandleFunc("/logros/{logro_id}", h.UpdateLogro).Methods("PUT")
	router.HandleFunc("/logros/{logro_id}", h.DeleteLogro).Methods("DELETE")
}

// GetLogros retrieves all achievements
func (h *Handler) GetLogros(w http.ResponseWriter, r *http.Request) {
	logros := make([]models.Logro, 0)
	if err := h.db.Find(&logros).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving achievements")
		return
	}

	utils.WriteJSON(w, http.StatusOK, logros)
}

// CreateLogro awards a new achievement badge. Description is optional.
func (h *Handler) CreateLogro(w http.ResponseWriter, r *http.Request) {
	var createRequest struct {
		Imagen      string `json:"imagen"`
		Descripcion string `json:"descripcion"`
		Username    string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createRequest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if createRequest.Imagen == "" || createRequest.Username == "" {
		utils.WriteError(w, http.StatusBadRequest, "imagen and username are required")
		return
	}

	logro := models.Logro{
		Imagen:      createRequest.Imagen,
		Descripcion: createRequest.Descripcion,
		Username:    createRequest.Username,
	}

	if err := h.db.Create(&logro).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error creating achievement")
		return
	}

	utils.WriteJSON(w, http.StatusOK, logro)
}

// GetLogro retrieves a specific achievement
func (h *Handler) GetLogro(w http.ResponseWriter, r *http.Request) {
	logroID, err := parseLogroID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid achievement ID")
		return
	}

	var logro models.Logro
	if err := h.db.First(&logro, logroID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Achievement not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, logro)
}

// UpdateLogro partially updates imagen, descripcion and username
func (h *Handler) UpdateLogro(w http.ResponseWriter, r *http.Request) {
	logroID, err := parseLogroID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid achievement ID")
		return
	}

	var updateData struct {
		Imagen      *string `json:"imagen"`
		Descripcion *string `json:"descripcion"`
		Username    *string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var logro models.Logro
	if err := h.db.First(&logro, logroID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Achievement not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if updateData.Imagen != nil {
		logro.Imagen = *updateData.Imagen
	}
	if updateData.Descripcion != nil {
		logro.Descripcion = *updateData.Descripcion
	}
	if updateData.Username != nil {
		logro.Username = *updateData.Username
	}

	if err := h.db.Save(&logro).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error updating achievement")
		return
	}

	utils.WriteJSON(w, http.StatusOK, logro)
}

// DeleteLogro removes an achievement
func (h *Handler) DeleteLogro(w http.ResponseWriter, r *http.Request) {
	logroID, err := parseLogroID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid achievement ID")
		return
	}

	var logro models.Logro
	if err := h.db.First(&logro, logroID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Achievement not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := h.db.Delete(&logro).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error deleting achievement")
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Achievement deleted successfully")
}

func parseLogroID(r *http.Request) (uint, error) {
	logroID, err := strconv.ParseUint(mux.Vars(r)["logro_id"], 10, 64)
	return uint(logroID), err
}
