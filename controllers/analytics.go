// controllers/analytics.go
package controllers

import (
	"net/http"
	"time"

	"tailorly-backend/config"
	"tailorly-backend/models"
	"tailorly-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UpcomingAppointment struct {
	ClientName  string `json:"clientName"`
	ServiceType string `json:"serviceType"`
	StartTime   string `json:"startTime"`
}

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// GetDashboardOverview summarizes the tailor's business at a glance
func GetDashboardOverview(c *gin.Context) {
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

	// Total Clients
	var totalClients int64
	config.DB.Model(&models.Client{}).
		Where("tailor_id = ? AND deleted_at IS NULL", tailorUUID).Count(&totalClients)

	// Active orders
	var activeOrders int64
	config.DB.Model(&models.Order{}).
		Where("tailor_id = ? AND status IN ? AND deleted_at IS NULL",
			tailorUUID, []string{models.OrderPending, models.OrderInProgress, models.OrderReady}).
		Count(&activeOrders)

	// This Month's Revenue (completed orders)
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyRevenue float64
	config.DB.Model(&models.Order{}).
		Where("tailor_id = ? AND status = ? AND order_date >= ? AND deleted_at IS NULL",
			tailorUUID, models.OrderCompleted, firstOfMonth).
		Select("COALESCE(SUM(amount), 0)").Scan(&monthlyRevenue)

	// Appointments in the next 7 days
	today := utils.BeginningOfDay(now)
	var upcomingCount int64
	config.DB.Model(&models.Appointment{}).
		Where("tailor_id = ? AND status = ? AND start_time >= ? AND start_time < ?",
			tailorUUID, models.AppointmentScheduled, now, today.AddDate(0, 0, 7)).
		Count(&upcomingCount)

	var upcomingAppointments []UpcomingAppointment
	rows, err := config.DB.Raw(`
        SELECT cl.name, a.service_type, a.start_time
        FROM appointments a
        JOIN clients cl ON cl.id = a.client_id
        WHERE a.tailor_id = ? AND a.status = ? AND a.start_time >= ?
        ORDER BY a.start_time ASC
        LIMIT 5
    `, tailorUUID, models.AppointmentScheduled, now).Rows()
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var name, serviceType string
			var startTime time.Time
			rows.Scan(&name, &serviceType, &startTime)

			var label string
			switch utils.DaysBetween(now, startTime) {
			case 0:
				label = "Today " + startTime.Format("15:04")
			case 1:
				label = "Tomorrow " + startTime.Format("15:04")
			default:
				label = startTime.Format("Jan 2 15:04")
			}
			upcomingAppointments = append(upcomingAppointments, UpcomingAppointment{
				ClientName:  name,
				ServiceType: serviceType,
				StartTime:   label,
			})
		}
	}

	// Items running low on stock
	var lowStockCount int64
	config.DB.Model(&models.InventoryItem{}).
		Where("tailor_id = ? AND quantity <= min_quantity AND deleted_at IS NULL", tailorUUID).
		Count(&lowStockCount)

	c.JSON(http.StatusOK, gin.H{
		"totalClients":   totalClients,
		"activeOrders":   activeOrders,
		"monthlyRevenue": monthlyRevenue,
		"upcomingAppointments": gin.H{
			"count": upcomingCount,
			"list":  upcomingAppointments,
		},
		"lowStockItems": lowStockCount,
	})
}

// GetRevenueAnalytics returns completed-order revenue per month for the
// last six months
func GetRevenueAnalytics(c *gin.Context) {
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

	now := time.Now()
	var months []MonthlyRevenue
	for i := 5; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		var revenue float64
		config.DB.Model(&models.Order{}).
			Where("tailor_id = ? AND status = ? AND order_date >= ? AND order_date < ? AND deleted_at IS NULL",
				tailorUUID, models.OrderCompleted, monthStart, monthEnd).
			Select("COALESCE(SUM(amount), 0)").Scan(&revenue)

		var count int64
		config.DB.Model(&models.Order{}).
			Where("tailor_id = ? AND order_date >= ? AND order_date < ? AND deleted_at IS NULL",
				tailorUUID, monthStart, monthEnd).
			Count(&count)

		months = append(months, MonthlyRevenue{
			Month:   monthStart.Format("Jan 2006"),
			Revenue: revenue,
			Orders:  count,
		})
	}

	c.JSON(http.StatusOK, gin.H{"months": months})
}

// GetServiceAnalytics breaks orders down by service category
func GetServiceAnalytics(c *gin.Context) {
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

	type serviceRow struct {
		Service string  `json:"service"`
		Count   int64   `json:"count"`
		Revenue float64 `json:"revenue"`
	}
	var breakdown []serviceRow
	config.DB.Raw(`
        SELECT service, COUNT(*) as count, COALESCE(SUM(amount), 0) as revenue
        FROM orders
        WHERE tailor_id = ? AND deleted_at IS NULL
        GROUP BY service
        ORDER BY revenue DESC
    `, tailorUUID).Scan(&breakdown)

	c.JSON(http.StatusOK, gin.H{"services": breakdown})
}
