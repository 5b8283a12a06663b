package user

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

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

// RegisterRoutes sets up the user routes and the login route
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/usuarios", h.GetUsuarios).Methods("GET")
	router.HandleFunc("/usuarios", h.CreateUsuario).Methods("POST")
	router.HandleFunc("/usuarios/{username}", h.GetUsuario).Methods("GET")
	router.HandleFunc("/usuarios/{username}", h.UpdateUsuario).Methods("PUT")
	router.HandleFunc("/usuarios/{username}", h.DeleteUsuario).Methods("DELETE")
	router.HandleFunc("/login", h.HandleLogin).Methods("POST")
}

// GetUsuarios retrieves all users
func (h *Handler) GetUsuarios(w http.ResponseWriter, r *http.Request) {
	var usuarios []models.Usuario
	if err := h.db.Find(&usuarios).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving users")
		return
	}

	response := make([]models.PublicUsuario, 0, len(usuarios))
	for i := range usuarios {
		response = append(response, usuarios[i].Public())
	}

	utils.WriteJSON(w, http.StatusOK, response)
}

// CreateUsuario registers a new user with a hashed password
func (h *Handler) CreateUsuario(w http.ResponseWriter, r *http.Request) {
	var createRequest struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createRequest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if createRequest.Username == "" || createRequest.Email == "" || createRequest.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	var existing models.Usuario
	if result := h.db.Where("email = ?", createRequest.Email).First(&existing); !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		if result.Error != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
			return
		}
		utils.WriteError(w, http.StatusConflict, "Email already exists")
		return
	}

	usuario := models.Usuario{
		Username: createRequest.Username,
		Email:    createRequest.Email,
	}
	if err := usuario.SetPassword(createRequest.Password); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	if err := h.db.Create(&usuario).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			log.Printf("Duplicate key creating user %q: %v", createRequest.Username, err)
			utils.WriteError(w, http.StatusConflict, "Username or email already exists")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	utils.WriteJSON(w, http.StatusOK, usuario.Public())
}

// GetUsuario retrieves a specific user by username
func (h *Handler) GetUsuario(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var usuario models.Usuario
	if err := h.db.First(&usuario, "username = ?", vars["username"]).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "User not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, usuario.Public())
}

// UpdateUsuario updates email and/or password; absent fields keep their value
func (h *Handler) UpdateUsuario(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var updateData struct {
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var usuario models.Usuario
	if err := h.db.First(&usuario, "username = ?", vars["username"]).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "User not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if updateData.Email != nil {
		usuario.Email = *updateData.Email
	}
	if updateData.Password != nil {
		if err := usuario.SetPassword(*updateData.Password); err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Error hashing password")
			return
		}
	}

	if err := h.db.Save(&usuario).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			utils.WriteError(w, http.StatusConflict, "Email already exists")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Error updating user")
		return
	}

	utils.WriteJSON(w, http.StatusOK, usuario.Public())
}

// DeleteUsuario removes a user together with everything it owns: likes,
// comments, achievements, plants, and each of its posts with that post's
// comments and likes. One transaction, so a failed step leaves no orphans.
func (h *Handler) DeleteUsuario(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username := vars["username"]

	var usuario models.Usuario
	if err := h.db.First(&usuario, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "User not found")
		} else {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	tx := h.db.Begin()

	var pubIDs []uint
	if err := tx.Model(&models.Publicacion{}).Where("username = ?", username).Pluck("pub_id", &pubIDs).Error; err != nil {
		tx.Rollback()
		utils.WriteError(w, http.StatusInternalServerError, "Error deleting user")
		return
	}

	if len(pubIDs) > 0 {
		if err := tx.Where("pub_id IN ?", pubIDs).Delete(&models.Comentario{}).Error; err != nil {
			tx.Rollback()
			utils.WriteError(w, http.StatusInternalServerError, "Error deleting user's post comments")
			return
		}
		if err := tx.Where("pub_id IN ?", pubIDs).Delete(&models.MeGusta{}).Error; err != nil {
			tx.Rollback()
			utils.WriteError(w, http.StatusInternalServerError, "Error deleting user's post likes")
			return
		}
	}

	for _, model := range []interface{}{
		&models.MeGusta{},
		&models.Comentario{},
		&models.Publicacion{},
		&models.Logro{},
		&models.Planta{},
	} {
		if err := tx.Where("username = ?", username).Delete(model).Error; err != nil {
			tx.Rollback()
			utils.WriteError(w, http.StatusInternalServerError, "Error deleting user data")
			return
		}
	}

	if err := tx.Delete(&usuario).Error; err != nil {
		tx.Rollback()
		utils.WriteError(w, http.StatusInternalServerError, "Error deleting user")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error deleting user")
		return
	}

	utils.WriteMessage(w, http.StatusOK, "User deleted successfully")
}

// HandleLogin checks an email/password pair against the stored hash. The
// failure message is the same for an unknown email and a wrong password.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&loginRequest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if loginRequest.Email == "" || loginRequest.Password == "" {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "Email and password are required",
		})
		return
	}

	var usuario models.Usuario
	result := h.db.Where("email = ?", loginRequest.Email).First(&usuario)
	if result.Error != nil || !usuario.CheckPassword(loginRequest.Password) {
		utils.WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"error":   "Invalid email or password",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    usuario.Public(),
	})
}
