package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httpresp"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
	"github.com/BarberiaElCorte/barber-pos-api/internal/storage"
)

type BarberHandler struct {
	db     *gorm.DB
	photos *storage.PhotoStore
}

func NewBarberHandler(db *gorm.DB, photos *storage.PhotoStore) *BarberHandler {
	return &BarberHandler{db: db, photos: photos}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Specialty  string  `json:"specialty"`
	StationID  *uint   `json:"station_id"`
	BaseSalary float64 `json:"base_salary"`
}

type UpdateBarberRequest struct {
	Name       *string  `json:"name,omitempty"`
	Email      *string  `json:"email,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Specialty  *string  `json:"specialty,omitempty"`
	StationID  *uint    `json:"station_id,omitempty"`
	BaseSalary *float64 `json:"base_salary,omitempty"`
	IsActive   *bool    `json:"is_active,omitempty"`
}

// --------- Handlers ---------

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Error al listar barberos.")
		return
	}
	httpresp.List(c, barbers)
}

func (h *BarberHandler) Get(c *gin.Context) {
	var barber models.Barber
	if err := h.db.First(&barber, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}
	c.JSON(http.StatusOK, barber)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	barber := models.Barber{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Specialty:  req.Specialty,
		StationID:  req.StationID,
		BaseSalary: req.BaseSalary,
		IsActive:   true,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Error al crear el barbero.")
		return
	}

	c.JSON(http.StatusCreated, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	var barber models.Barber
	if err := h.db.First(&barber, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.Email != nil {
		barber.Email = *req.Email
	}
	if req.Phone != nil {
		barber.Phone = *req.Phone
	}
	if req.Specialty != nil {
		barber.Specialty = *req.Specialty
	}
	if req.StationID != nil {
		barber.StationID = req.StationID
	}
	if req.BaseSalary != nil {
		barber.BaseSalary = *req.BaseSalary
	}
	if req.IsActive != nil {
		barber.IsActive = *req.IsActive
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Error al actualizar el barbero.")
		return
	}

	c.JSON(http.StatusOK, barber)
}

// Delete desactiva al barbero (borrado lógico).
func (h *BarberHandler) Delete(c *gin.Context) {
	var barber models.Barber
	if err := h.db.First(&barber, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	barber.IsActive = false
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_barber", "Error al eliminar el barbero.")
		return
	}

	c.JSON(http.StatusOK, barber)
}

func (h *BarberHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "La fecha es obligatoria.")
		return
	}

	type timeRange struct {
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}

	var ranges []timeRange
	if err := h.db.
		Model(&models.Reservation{}).
		Select("start_time", "end_time").
		Where("barber_id = ? AND DATE(start_time) = ? AND status NOT IN ?",
			c.Param("id"), date, []string{"cancelled"}).
		Order("start_time ASC").
		Scan(&ranges).Error; err != nil {
		httperr.Internal(c, "failed_to_get_availability", "Error al consultar disponibilidad.")
		return
	}

	c.JSON(http.StatusOK, ranges)
}

func (h *BarberHandler) UploadPhoto(c *gin.Context) {
	if h.photos == nil {
		httperr.Internal(c, "storage_not_configured", "Almacenamiento de fotos no configurado.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "El archivo 'photo' es obligatorio.")
		return
	}
	defer file.Close()

	url, err := h.photos.UploadBarberPhoto(c.Request.Context(), barber.ID, file)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_photo", "Error al subir la foto.")
		return
	}

	barber.PhotoURL = url
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Error al actualizar el barbero.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
