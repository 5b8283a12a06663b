package plant

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
	router.HandleFunc("/plantas", h.GetPlantas).Methods("GET")
	router.HandleFunc("/plantas", h.CreatePlanta).Methods("POST")
	router.HandleFunc("/plantas/{plant_id}", h.GetPlanta).Methods("GET")
	router.HandleFunc("/plantas/{plant_id}", h.UpdatePlanta).Methods("PUT")
	router.HandleFunc("/plantas/{plant_id}", h.DeletePlanta).Methods("DELETE")
}

// GetPlantas retrieves all plants
func (h *Handler) GetPlantas(w http.ResponseWriter, r *http.Request) {
	var plantas []models.Planta
	if err := h.db.Find(&plantas).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving plants")
		return
	}

	response := make([]models.PublicPlanta, 0, len(plantas))
	for i := range plantas {
		response = append(response, plantas[i].Public())
	}

	utils.WriteJSON(w, http.StatusOK, response)
}

// CreatePlanta registers a new plant. Registration date defaults to today
// and cantidad starts at 1.
func (h *Handler) CreatePlanta(w http.ResponseWriter, r *http.Request) {
	var createRequest struct {
		Especie     string   `json:"especie"`
		Username    string   `json:"username"`
		EdadInicial *float64 `json:"edad_inicial"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createRequest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if createRequest.Especie == "" || createRequest.Username == "" || createRequest.EdadInicial == nil {
		utils.WriteError(w, http.StatusBadRequest, "especie, username and edad_inicial are required")
		return
	}

	var existing models.Planta
	if result := h.db.Where("especie = ?", createRequest.Especie).First(&existing); !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		if result.Error != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
			return
		}
		utils.WriteError(w, http.StatusConflict, "Species already exists")
		return
	}

	planta := models.Planta{
		Especie:       createRequest.Especie,
		Username:      createRequest.Username,
		EdadInicial:   *createRequest.EdadInicial,
		FechaRegistro: time.Now(),
		Cantidad:      1,
	}

	if err := h.db.Create(&planta).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			utils.WriteError(w, http.StatusConflict, "Species already exists")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Error creating plant")
		return
	}

	utils.WriteJSON(w, http.StatusOK, planta.Public())
}

// GetPlanta retrieves a specific plant
func (h *Handler) GetPlanta(w http.ResponseWriter, r *http.Request) {
	plantID, err := parsePlantID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid plant ID")
		return
	}

	var planta models.Planta
	if err := h.db.First(&planta, plantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Plant not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, planta.Public())
}

// UpdatePlanta partially updates especie, username and edad_inicial
func (h *Handler) UpdatePlanta(w http.ResponseWriter, r *http.Request) {
	plantID, err := parsePlantID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid plant ID")
		return
	}

	var updateData struct {
		Especie     *string  `json:"especie"`
		Username    *string  `json:"username"`
		EdadInicial *float64 `json:"edad_inicial"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var planta models.Planta
	if err := h.db.First(&planta, plantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Plant not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if updateData.Especie != nil {
		planta.Especie = *updateData.Especie
	}
	if updateData.Username != nil {
		planta.Username = *updateData.Username
	}
	if updateData.EdadInicial != nil {
		planta.EdadInicial = *updateData.EdadInicial
	}

	if err := h.db.Save(&planta).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			utils.WriteError(w, http.StatusConflict, "Species already exists")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Error updating plant")
		return
	}

	utils.WriteJSON(w, http.StatusOK, planta.Public())
}

// DeletePlanta removes a plant
func (h *Handler) DeletePlanta(w http.ResponseWriter, r *http.Request) {
	plantID, err := parsePlantID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid plant ID")
		return
	}

	var planta models.Planta
	if err := h.db.First(&planta, plantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Plant not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := h.db.Delete(&planta).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error deleting plant")
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Plant deleted successfully")
}

func parsePlantID(r *http.Request) (uint, error) {
	plantID, err := strconv.ParseUint(mux.Vars(r)["plant_id"], 10, 64)
	return uint(plantID), err
}
