package routes

import (
	"time"

	"skillbridge/config"
	"skillbridge/handlers"
	"skillbridge/middleware"
	"skillbridge/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/auth")
	{
		group.POST("/register", hb.Auth.RegisterHandler)
		group.POST("/login", hb.Auth.LoginHandler)
		group.GET("/me", auth, hb.Auth.MeHandler)
	}
}

// RegisterTutorRoutes registers the public directory and the tutor's own endpoints.
func RegisterTutorRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	public := api.Group("/tutors")
	{
		public.GET("", hb.Tutors.ListTutorsHandler)
		public.GET("/:id", hb.Tutors.GetTutorHandler)
	}

	tutor := api.Group("/tutors")
	tutor.Use(auth, middleware.RequireRoles(models.RoleTutor))
	{
		tutor.GET("/profile", hb.Tutors.GetOwnProfileHandler)
		tutor.PUT("/profile", hb.Tutors.UpdateProfileHandler)
		tutor.POST("/profile/avatar", hb.Tutors.UploadAvatarHandler)

		tutor.GET("/availability", hb.Availability.ListSlotsHandler)
		tutor.POST("/availability", hb.Availability.AddSlotHandler)
		tutor.PUT("/availability", hb.Availability.ReplaceSlotsHandler)
		tutor.PATCH("/availability/:id", hb.Availability.UpdateSlotHandler)
		tutor.DELETE("/availability/:id", hb.Availability.DeleteSlotHandler)

		tutor.GET("/bookings", hb.Bookings.ListBookingsHandler)
		tutor.PATCH("/bookings/:id/complete", hb.Bookings.CompleteBookingHandler)
	}
}

// RegisterStudentRoutes registers student-only endpoints.
func RegisterStudentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	student := api.Group("/students")
	student.Use(auth, middleware.RequireRoles(models.RoleStudent))
	{
		student.GET("/profile", hb.Users.GetProfileHandler)
		student.PUT("/profile", hb.Users.UpdateProfileHandler)
		student.GET("/bookings", hb.Bookings.ListBookingsHandler)
		student.PATCH("/bookings/:id/cancel", hb.Bookings.CancelBookingHandler)
	}
}

// RegisterBookingRoutes registers the role-neutral booking endpoints; the service enforces ownership.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	bookingGroup := api.Group("/bookings")
	bookingGroup.Use(auth)
	{
		bookingGroup.POST("", middleware.RequireRoles(models.RoleStudent), hb.Bookings.CreateBookingHandler)
		bookingGroup.GET("", hb.Bookings.ListBookingsHandler)
		bookingGroup.GET("/:id", hb.Bookings.GetBookingHandler)
		bookingGroup.PATCH("/:id/confirm", middleware.RequireRoles(models.RoleTutor), hb.Bookings.ConfirmBookingHandler)
		bookingGroup.PATCH("/:id/status", hb.Bookings.UpdateStatusHandler)
		// Dashboard clients patch the booking itself with {status}.
		bookingGroup.PATCH("/:id", hb.Bookings.UpdateStatusHandler)
	}
}

func RegisterReviewRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	reviews := api.Group("/reviews")
	{
		reviews.GET("/tutor/:tutorId", hb.Reviews.ListTutorReviewsHandler)
		reviews.POST("", auth, middleware.RequireRoles(models.RoleStudent), hb.Reviews.SubmitReviewHandler)
	}
}

func RegisterCategoryRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/categories", hb.Categories.ListCategoriesHandler)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(auth, middleware.RequireRoles(models.RoleAdmin))
	{
		adminGroup.GET("/users", hb.Admin.ListUsersHandler)
		adminGroup.PATCH("/users/:id/status", hb.Admin.SetUserStatusHandler)
		adminGroup.GET("/bookings", hb.Bookings.ListBookingsHandler)

		adminGroup.GET("/categories", hb.Categories.ListCategoriesHandler)
		adminGroup.POST("/categories", hb.Categories.CreateCategoryHandler)
		adminGroup.PATCH("/categories/:id", hb.Categories.UpdateCategoryHandler)
		adminGroup.DELETE("/categories/:id", hb.Categories.DeleteCategoryHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !allowsAnyOrigin(),
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)

	api := r.Group("/api")
	api.GET("/health", handlers.HealthHandler)
	RegisterAuthRoutes(api, hb, auth)
	RegisterTutorRoutes(api, hb, auth)
	RegisterStudentRoutes(api, hb, auth)
	RegisterBookingRoutes(api, hb, auth)
	RegisterReviewRoutes(api, hb, auth)
	RegisterCategoryRoutes(api, hb)
	RegisterAdminRoutes(api, hb, auth)
}

// Credentials are only allowed with an explicit origin list.
func allowsAnyOrigin() bool {
	for _, o := range config.AppConfig.AllowedOrigins() {
		if o == "*" {
			return true
		}
	}
	return false
}
