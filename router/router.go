package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodshare/foodshare-app/controllers"
	"github.com/foodshare/foodshare-app/middlewares"
	"github.com/foodshare/foodshare-app/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	listingCtrl := controllers.NewListingController(db)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter for login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Browse listings without an account
	r.GET("/listings", listingCtrl.GetAllListings)
	r.GET("/listings/:listing_id", listingCtrl.GetListing)

	// Realtime endpoint, token via query string
	r.GET("/ws", middlewares.WebSocketAuthMiddleware(), controllers.WSHandler)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/me", userCtrl.GetProfile)
		auth.POST("/logout", userCtrl.Logout)

		auth.POST("/listings", middlewares.RequireRole(models.RoleDonor), listingCtrl.CreateListing)
		auth.GET("/listings/my-listings", listingCtrl.GetMyListings)
		auth.POST("/listings/claim/:listing_id", listingCtrl.ClaimListing)
		auth.DELETE("/listings/:listing_id", listingCtrl.DeleteListing)

		auth.GET("/notifications", notificationCtrl.GetMyNotifications)
		auth.PUT("/notifications/:notif_id/read", notificationCtrl.MarkAsRead)
	}

	return r
}
