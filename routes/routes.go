package routes

import (
	"tailorly-backend/config"
	"tailorly-backend/controllers"
	"tailorly-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://app.tailorly.io",
			"http://localhost:5173",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Tailorly API is running"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		// Order routes
		orders := api.Group("/orders")
		{
			orders.POST("", controllers.CreateOrder)
			orders.GET("", controllers.GetOrders)
			orders.GET("/:id", controllers.GetOrder)
			orders.PUT("/:id", controllers.UpdateOrder)
			orders.PATCH("/:id/status", controllers.UpdateOrderStatus)
			orders.DELETE("/:id", controllers.DeleteOrder)
		}

		// Inventory routes
		inventory := api.Group("/inventory")
		{
			inventory.POST("", controllers.CreateInventoryItem)
			inventory.GET("", controllers.GetInventory)
			inventory.GET("/:id", controllers.GetInventoryItem)
			inventory.PUT("/:id", controllers.UpdateInventoryItem)
			inventory.PATCH("/:id/quantity", controllers.AdjustInventoryQuantity)
			inventory.DELETE("/:id", controllers.DeleteInventoryItem)
		}

		// Appointment routes; fixed paths before :id so gin matches them first
		appointments := api.Group("/appointments")
		{
			appointments.GET("/available-slots", controllers.GetAvailableSlots)
			appointments.GET("/check-slot", controllers.CheckSlot)
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.DELETE("/:id", controllers.CancelAppointment)
		}

		// Analytics routes
		analytics := api.Group("/analytics")
		{
			analytics.GET("/dashboard", controllers.GetDashboardOverview)
			analytics.GET("/revenue", controllers.GetRevenueAnalytics)
			analytics.GET("/services", controllers.GetServiceAnalytics)
		}

		// Settings routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PUT("/working-hours", controllers.UpdateWorkingHours)
			profile.PUT("/notifications", controllers.UpdateNotificationSettings)
		}
	}

	return r
}
