package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httpresp"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

// El local tiene un número fijo de sillones; el límite evita que alguien
// registre estaciones fantasma desde el panel.
const maxStations = 10

type StationHandler struct {
	db *gorm.DB
}

func NewStationHandler(db *gorm.DB) *StationHandler {
	return &StationHandler{db: db}
}

// --------- Requests ---------

type CreateStationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateStationRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// --------- Handlers ---------

func (h *StationHandler) List(c *gin.Context) {
	var stations []models.Station
	if err := h.db.Order("name ASC").Find(&stations).Error; err != nil {
		httperr.Internal(c, "failed_to_list_stations", "Error al listar estaciones.")
		return
	}
	httpresp.List(c, stations)
}

func (h *StationHandler) Get(c *gin.Context) {
	var station models.Station
	if err := h.db.First(&station, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "station_not_found", "Estación no encontrada.")
		return
	}
	c.JSON(http.StatusOK, station)
}

func (h *StationHandler) Create(c *gin.Context) {
	var req CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var count int64
	if err := h.db.Model(&models.Station{}).Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_create_station", "Error al crear la estación.")
		return
	}
	if count >= maxStations {
		httperr.Conflict(c, "station_limit_reached", "Se alcanzó el máximo de estaciones.")
		return
	}

	station := models.Station{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}

	if err := h.db.Create(&station).Error; err != nil {
		if isUniqueViolation(err) {
			httperr.Conflict(c, "station_name_taken", "Ya existe una estación con ese nombre.")
			return
		}
		httperr.Internal(c, "failed_to_create_station", "Error al crear la estación.")
		return
	}

	c.JSON(http.StatusCreated, station)
}

func (h *StationHandler) Update(c *gin.Context) {
	var station models.Station
	if err := h.db.First(&station, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "station_not_found", "Estación no encontrada.")
		return
	}

	var req UpdateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != nil {
		station.Name = *req.Name
	}
	if req.Description != nil {
		station.Description = *req.Description
	}
	if req.IsActive != nil {
		station.IsActive = *req.IsActive
	}

	if err := h.db.Save(&station).Error; err != nil {
		if isUniqueViolation(err) {
			httperr.Conflict(c, "station_name_taken", "Ya existe una estación con ese nombre.")
			return
		}
		httperr.Internal(c, "failed_to_update_station", "Error al actualizar la estación.")
		return
	}

	c.JSON(http.StatusOK, station)
}

func (h *StationHandler) Delete(c *gin.Context) {
	var station models.Station
	if err := h.db.First(&station, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "station_not_found", "Estación no encontrada.")
		return
	}

	var assigned int64
	if err := h.db.Model(&models.Barber{}).
		Where("station_id = ? AND is_active = ?", station.ID, true).
		Count(&assigned).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_station", "Error al eliminar la estación.")
		return
	}
	if assigned > 0 {
		httperr.Conflict(c, "station_in_use", "La estación tiene barberos activos asignados.")
		return
	}

	if err := h.db.Delete(&station).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_station", "Error al eliminar la estación.")
		return
	}

	c.Status(http.StatusNoContent)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
