package api

import (
	"net/http"

	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services bundles everything the router needs.
type Services struct {
	Auth      service.AuthService
	Gyms      service.GymService
	Roles     service.RoleService
	Users     service.UserService
	Equipment service.EquipmentService
	Exercises service.ExerciseService
	Programs  service.ProgramService
	Workouts  service.WorkoutService
	Products  service.ProductService
	Orders    service.OrderService
	Matches   service.MatchService
}

func SetupRoutes(router *gin.Engine, logger *zap.Logger, jwtSecret string, s Services) {
	router.Use(WithLogger(logger))

	authHandler := NewAuthHandler(s.Auth)
	gymHandler := NewGymHandler(s.Gyms)
	roleHandler := NewRoleHandler(s.Roles)
	userHandler := NewUserHandler(s.Users)
	equipmentHandler := NewEquipmentHandler(s.Equipment)
	exerciseHandler := NewExerciseHandler(s.Exercises)
	programHandler := NewProgramHandler(s.Programs)
	workoutHandler := NewWorkoutHandler(s.Workouts)
	productHandler := NewProductHandler(s.Products)
	orderHandler := NewOrderHandler(s.Orders)
	matchHandler := NewMatchHandler(s.Matches)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/bootstrap", authHandler.Bootstrap)
		auth.POST("/login", authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(AuthMiddleware(jwtSecret))

	// can is shorthand for one permission check against the caller's role.
	can := func(resource, action string) gin.HandlerFunc {
		return RequirePermission(s.Roles, resource, action)
	}

	protected.GET("/auth/me", userHandler.Me)

	gyms := protected.Group("/gyms")
	{
		gyms.POST("", can("gyms", "create"), gymHandler.Create)
		gyms.GET("", can("gyms", "read"), gymHandler.List)
		gyms.GET("/:gymId", can("gyms", "read"), gymHandler.Get)
		gyms.PUT("/:gymId", can("gyms", "update"), gymHandler.Update)
		gyms.DELETE("/:gymId", can("gyms", "delete"), gymHandler.Delete)

		gyms.POST("/:gymId/roles", can("roles", "create"), roleHandler.Create)
		gyms.POST("/:gymId/roles/templates", can("roles", "create"), roleHandler.InstantiateTemplate)
		gyms.GET("/:gymId/roles", can("roles", "read"), roleHandler.List)
	}

	roles := protected.Group("/roles")
	{
		roles.GET("/:id", can("roles", "read"), roleHandler.Get)
		roles.PUT("/:id", can("roles", "update"), roleHandler.Update)
		roles.DELETE("/:id", can("roles", "delete"), roleHandler.Delete)
	}

	users := protected.Group("/users")
	{
		users.POST("", can("users", "create"), userHandler.Create)
		users.GET("", can("users", "read"), userHandler.List)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", can("users", "delete"), userHandler.Delete)
	}

	equipment := protected.Group("/equipment")
	{
		equipment.POST("", can("equipment", "create"), equipmentHandler.Create)
		equipment.GET("", can("equipment", "read"), equipmentHandler.List)
		equipment.GET("/qr/:uuid", can("equipment", "read"), equipmentHandler.ResolveQRCode)
		equipment.GET("/:id", can("equipment", "read"), equipmentHandler.Get)
		equipment.PUT("/:id", can("equipment", "update"), equipmentHandler.Update)
		equipment.DELETE("/:id", can("equipment", "delete"), equipmentHandler.Delete)
		equipment.POST("/:id/qr/regenerate", can("equipment", "update"), equipmentHandler.RegenerateQRCode)
		equipment.POST("/:id/photo-upload-url", can("equipment", "update"), equipmentHandler.PhotoUploadURL)
	}

	exercises := protected.Group("/exercises")
	{
		exercises.POST("", can("exercises", "create"), exerciseHandler.Create)
		exercises.GET("", can("exercises", "read"), exerciseHandler.List)
		exercises.GET("/:id", can("exercises", "read"), exerciseHandler.Get)
		exercises.PUT("/:id", can("exercises", "update"), exerciseHandler.Update)
		exercises.DELETE("/:id", can("exercises", "delete"), exerciseHandler.Delete)
		exercises.POST("/:id/video-upload-url", can("exercises", "update"), exerciseHandler.VideoUploadURL)
		exercises.GET("/:id/video-url", can("exercises", "read"), exerciseHandler.VideoDownloadURL)
	}

	programs := protected.Group("/programs")
	{
		programs.POST("", can("programs", "create"), programHandler.Create)
		programs.GET("", can("programs", "read"), programHandler.List)
		programs.GET("/:id", can("programs", "read"), programHandler.Get)
		programs.PUT("/:id", can("programs", "update"), programHandler.Update)
		programs.DELETE("/:id", can("programs", "delete"), programHandler.Delete)

		programs.GET("/:id/exercises", can("programs", "read"), programHandler.ListEntries)
		programs.POST("/:id/exercises", can("programs", "update"), programHandler.AddEntry)
		programs.POST("/:id/exercises/reorder", can("programs", "update"), programHandler.Reorder)
		programs.PUT("/:id/exercises/:entryId", can("programs", "update"), programHandler.UpdateEntry)
		programs.DELETE("/:id/exercises/:entryId", can("programs", "update"), programHandler.RemoveEntry)
	}

	workouts := protected.Group("/workouts")
	{
		workouts.POST("", can("workouts", "create"), workoutHandler.Start)
		workouts.GET("", can("workouts", "read"), workoutHandler.ListByUser)
		workouts.GET("/active", can("workouts", "read"), workoutHandler.GetActive)
		workouts.GET("/:id", can("workouts", "read"), workoutHandler.Get)
		workouts.POST("/:id/end", can("workouts", "update"), workoutHandler.End)
		workouts.POST("/:id/entries", can("workouts", "update"), workoutHandler.AppendEntry)
		workouts.GET("/:id/entries", can("workouts", "read"), workoutHandler.ListEntries)
	}

	categories := protected.Group("/categories")
	{
		categories.POST("", can("categories", "create"), productHandler.CreateCategory)
		categories.GET("", can("categories", "read"), productHandler.ListCategories)
		categories.PUT("/:id", can("categories", "update"), productHandler.UpdateCategory)
		categories.DELETE("/:id", can("categories", "delete"), productHandler.DeleteCategory)
	}

	products := protected.Group("/products")
	{
		products.POST("", can("products", "create"), productHandler.Create)
		products.GET("", can("products", "read"), productHandler.List)
		products.GET("/:id", can("products", "read"), productHandler.Get)
		products.PUT("/:id", can("products", "update"), productHandler.Update)
		products.DELETE("/:id", can("products", "delete"), productHandler.Delete)
	}

	orders := protected.Group("/orders")
	{
		orders.POST("", can("orders", "create"), orderHandler.Create)
		orders.GET("", can("orders", "read"), orderHandler.List)
		orders.GET("/stats", can("orders", "read"), orderHandler.Stats)
		orders.GET("/:id", can("orders", "read"), orderHandler.Get)
		orders.PATCH("/:id/status", can("orders", "update"), orderHandler.UpdateStatus)
		orders.DELETE("/:id", can("orders", "delete"), orderHandler.Delete)
	}

	matches := protected.Group("/matches")
	{
		matches.POST("", can("matches", "create"), matchHandler.Create)
		matches.GET("/:id", can("matches", "read"), matchHandler.Get)
		matches.POST("/:id/end", can("matches", "update"), matchHandler.End)
		matches.GET("/trainer/:trainerId", can("matches", "read"), matchHandler.ListByTrainer)
		matches.GET("/student/:studentId", can("matches", "read"), matchHandler.ListByStudent)
	}
}
