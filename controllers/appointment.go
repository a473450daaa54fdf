// controllers/appointment.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"tailorly-backend/config"
	"tailorly-backend/services"
	"tailorly-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateAppointmentInput defines the expected JSON structure for booking an appointment
type CreateAppointmentInput struct {
	ClientID    string `json:"clientId" binding:"required"`
	ServiceType string `json:"serviceType" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
	Duration    *int   `json:"duration"`                // minutes, defaults by service type
	Notes       string `json:"notes"`
}

// UpdateAppointmentInput defines the expected JSON structure for updating an appointment
type UpdateAppointmentInput struct {
	ClientID    *string `json:"clientId"`
	ServiceType *string `json:"serviceType"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Duration    *int    `json:"duration"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
}

func schedulerService() *services.AppointmentService {
	return services.NewAppointmentService(
		services.NewAppointmentStore(config.DB),
		services.NewTailorDirectory(config.DB),
	)
}

func respondSchedulerError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.RespondWithError(c, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, http.StatusConflict, "Time slot is not available")
	case errors.Is(err, services.ErrStoreUnavailable):
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Appointment store unavailable, try again")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// GetAppointments lists the tailor's appointments, optionally filtered
// by date, status and client, ordered by start time
func GetAppointments(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor ID not found in context")
		return
	}

	tailorUUID, err := uuid.Parse(tailorID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tailor ID format")
		return
	}

	var filter services.AppointmentFilter
	if date := c.Query("date"); date != "" {
		day, err := utils.ParseDate(date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		filter.Day = &day
	}
	filter.Status = c.Query("status")
	if clientID := c.Query("clientId"); clientID != "" {
		clientUUID, err := uuid.Parse(clientID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
			return
		}
		filter.ClientID = &clientUUID
	}

	appointments, err := schedulerService().List(tailorUUID, filter)
	if err != nil {
		respondSchedulerError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor ID not found in context")
		return
	}

	tailorUUID, err := uuid.Parse(tailorID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tailor ID format")
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	appointment, err := schedulerService().Get(tailorUUID, appointmentUUID)
	if err != nil {
		respondSchedulerError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// CreateAppointment books a new appointment after checking the slot is free
func CreateAppointment(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor ID not found in context")
		return
	}

	tailorUUID, err := uuid.Parse(tailorID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tailor ID format")
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	clientUUID, err := uuid.Parse(input.ClientID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	start, err := parseDateTime(input.Date, input.Time)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	appointment, err := schedulerService().Create(tailorUUID, services.CreateAppointmentInput{
		ClientID:        clientUUID,
		ServiceType:     input.ServiceType,
		StartTime:       start,
		DurationMinutes: input.Duration,
		Notes:           input.Notes,
	})
	if err != nil {
		respondSchedulerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// UpdateAppointment applies a partial update, re-checking availability
// when the time or duration changes
func UpdateAppointment(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor ID not found in context")
		return
	}

	tailorUUID, err := uuid.Parse(tailorID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tailor ID format")
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := schedulerService()

	update := services.UpdateAppointmentInput{
		ServiceType:     input.ServiceType,
		DurationMinutes: input.Duration,
		Status:          input.Status,
		Notes:           input.Notes,
	}

	if input.ClientID != nil {
		clientUUID, err := uuid.Parse(*input.ClientID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
			return
		}
		update.ClientID = &clientUUID
	}

	// Date and time arrive as separate fields; merge the missing half
	// from the stored start time
	if input.Date != nil || input.Time != nil {
		existing, err := svc.Get(tailorUUID, appointmentUUID)
		if err != nil {
			respondSchedulerError(c, err)
			return
		}

		date := existing.StartTime.Format("2006-01-02")
		clock := existing.StartTime.Format("15:04")
		if input.Date != nil {
			date = *input.Date
		}
		if input.Time != nil {
			clock = *input.Time
		}

		start, err := parseDateTime(date, clock)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		update.StartTime = &start
	}

	appointment, err := svc.Update(tailorUUID, appointmentUUID, update)
	if err != nil {
		respondSchedulerError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// CancelAppointment marks an appointment as cancelled; the record is kept
func CancelAppointment(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor ID not found in context")
		return
	}

	tailorUUID, err := uuid.Parse(tailorID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tailor ID format")
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	appointment, err := schedulerService().Cancel(tailorUUID, appointmentUUID)
	if err != nil {
		respondSchedulerError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// GetAvailableSlots lists open slots for a date within working hours
func GetAvailableSlots(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor ID not found in context")
		return
	}

	tailorUUID, err := uuid.Parse(tailorID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tailor ID format")
		return
	}

	date := c.Query("date")
	if date == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Date is required")
		return
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	slots, err := schedulerService().AvailableSlots(tailorUUID, day, c.Query("serviceType"))
	if err != nil {
		respondSchedulerError(c, err)
		return
	}

	response := make([]gin.H, 0, len(slots))
	for _, slot := range slots {
		response = append(response, gin.H{
			"time":    slot.Start.Format("15:04"),
			"endTime": slot.End.Format("15:04"),
		})
	}

	c.JSON(http.StatusOK, response)
}

// CheckSlot reports whether a specific slot is free
func CheckSlot(c *gin.Context) {
	tailorID, exists := c.Get("tailorId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tailor ID not found in context")
		return
	}

	tailorUUID, err := uuid.Parse(tailorID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tailor ID format")
		return
	}

	date := c.Query("date")
	clock := c.Query("time")
	if date == "" || clock == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Date and time are required")
		return
	}

	start, err := parseDateTime(date, clock)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	available, err := schedulerService().CheckSlot(tailorUUID, start, c.Query("serviceType"))
	if err != nil {
		respondSchedulerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}

func parseDateTime(date, clock string) (time.Time, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return time.Time{}, errors.New("Invalid date, expected YYYY-MM-DD")
	}
	start, err := utils.ClockOnDay(day, clock)
	if err != nil {
		return time.Time{}, errors.New("Invalid time, expected HH:MM")
	}
	return start, nil
}
