package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/config"
	"github.com/sakurakids/nursery-api/internal/constants"
	"github.com/sakurakids/nursery-api/internal/database"
	"github.com/sakurakids/nursery-api/internal/handlers"
	"github.com/sakurakids/nursery-api/internal/middleware"
	"github.com/sakurakids/nursery-api/internal/repository"
	"github.com/sakurakids/nursery-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	nurseryRepo := repository.NewNurseryRepository(db)
	classRepo := repository.NewClassRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	authService := services.NewAuthService(userRepo)
	classService := services.NewClassService(classRepo, nurseryRepo)
	paymentService := services.NewPaymentService(paymentRepo, cfg.MidtransServerKey, cfg.MidtransProduction)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	orgHandler := handlers.NewOrganizationHandler()
	nurseryHandler := handlers.NewNurseryHandler(nurseryRepo)
	classHandler := handlers.NewClassHandler(classService)
	childHandler := handlers.NewChildHandler()
	parentHandler := handlers.NewParentHandler()
	teacherHandler := handlers.NewTeacherHandler()
	profileHandler := handlers.NewProfileHandler()
	conversationHandler := handlers.NewConversationHandler()
	chatMemberHandler := handlers.NewChatMemberHandler()
	messageHandler := handlers.NewMessageHandler()
	receiptHandler := handlers.NewReceiptHandler()
	callHandler := handlers.NewCallHandler()
	galleryHandler := handlers.NewGalleryHandler()
	commentHandler := handlers.NewCommentHandler()
	postLikeHandler := handlers.NewPostLikeHandler()
	paymentHandler := handlers.NewPaymentHandler(paymentService, paymentRepo)
	eventHandler := handlers.NewEventHandler()
	notificationHandler := handlers.NewNotificationHandler()
	taskHandler := handlers.NewTaskHandler()
	integrationHandler := handlers.NewIntegrationHandler()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Nursery API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Organization routes (protected)
		orgs := api.Group("/organizations")
		orgs.Use(middleware.RequireAuth())
		{
			orgs.POST("", orgHandler.CreateOrganization)
			orgs.GET("", orgHandler.ListOrganizations)
			orgs.GET("/:id", middleware.RequireOrganizationAccess(), orgHandler.GetOrganization)
			orgs.PUT("/:id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), orgHandler.UpdateOrganization)
			orgs.DELETE("/:id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), orgHandler.DeleteOrganization)
			orgs.POST("/:id/activate", middleware.RequireOrganizationAccess(), orgHandler.ActivateOrganization)
			orgs.DELETE("/:id/members/:user_id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), orgHandler.RemoveMember)
		}

		// Nursery routes (protected, owner-scoped)
		nurseries := api.Group("/nurseries")
		nurseries.Use(middleware.RequireAuth())
		{
			nurseries.GET("", nurseryHandler.ListNurseries)
			nurseries.POST("", nurseryHandler.CreateNursery)
			nurseries.GET("/:id", nurseryHandler.GetNursery)
			nurseries.PATCH("/:id", nurseryHandler.UpdateNursery)
			nurseries.DELETE("/:id", nurseryHandler.DeleteNursery)
		}

		// Class routes (protected, ownership resolved through the nursery)
		classes := api.Group("/classes")
		classes.Use(middleware.RequireAuth())
		{
			classes.GET("", classHandler.ListClasses)
			classes.POST("", classHandler.CreateClass)
			classes.GET("/:id", middleware.RequireClassOwnership(), classHandler.GetClass)
			classes.PATCH("/:id", middleware.RequireClassOwnership(), classHandler.UpdateClass)
			classes.DELETE("/:id", middleware.RequireClassOwnership(), classHandler.DeleteClass)
		}

		// Roster routes (protected, tenant-scoped)
		children := api.Group("/children")
		children.Use(middleware.RequireAuth())
		{
			children.GET("", childHandler.ListChildren)
			children.POST("", childHandler.CreateChild)
			children.GET("/:id", childHandler.GetChild)
			children.PATCH("/:id", childHandler.UpdateChild)
			children.DELETE("/:id", childHandler.DeleteChild)
		}

		parents := api.Group("/parents")
		parents.Use(middleware.RequireAuth())
		{
			parents.GET("", parentHandler.ListParents)
			parents.POST("", parentHandler.CreateParent)
			parents.GET("/:id", parentHandler.GetParent)
			parents.PATCH("/:id", parentHandler.UpdateParent)
			parents.DELETE("/:id", parentHandler.DeleteParent)
		}

		teachers := api.Group("/teachers")
		teachers.Use(middleware.RequireAuth())
		{
			teachers.GET("", teacherHandler.ListTeachers)
			teachers.POST("", teacherHandler.CreateTeacher)
			teachers.GET("/:id", teacherHandler.GetTeacher)
			teachers.PATCH("/:id", teacherHandler.UpdateTeacher)
			teachers.DELETE("/:id", teacherHandler.DeleteTeacher)
		}

		// Profile routes (protected)
		profiles := api.Group("/profiles")
		profiles.Use(middleware.RequireAuth())
		{
			profiles.GET("/me", profileHandler.GetOwnProfile)
			profiles.PATCH("/me", profileHandler.UpdateOwnProfile)
			profiles.GET("/:id", profileHandler.GetProfile)
		}

		// Chat routes (protected, membership-gated)
		conversations := api.Group("/conversations")
		conversations.Use(middleware.RequireAuth())
		{
			conversations.GET("", conversationHandler.ListConversations)
			conversations.POST("", conversationHandler.CreateConversation)

			conv := conversations.Group("/:conversation_id")
			conv.Use(middleware.RequireConversationAccess("conversation_id"))
			{
				conv.GET("", conversationHandler.GetConversation)
				conv.DELETE("", conversationHandler.DeleteConversation)

				conv.GET("/members", chatMemberHandler.ListMembers)
				conv.POST("/members", chatMemberHandler.AddMember)
				conv.GET("/members/:user_id", chatMemberHandler.GetMember)
				conv.DELETE("/members/:user_id", chatMemberHandler.RemoveMember)

				conv.GET("/messages", messageHandler.ListMessages)
				conv.POST("/messages", messageHandler.CreateMessage)
				conv.GET("/messages/:message_id", messageHandler.GetMessage)
				conv.PATCH("/messages/:message_id", messageHandler.UpdateMessage)
				conv.DELETE("/messages/:message_id", messageHandler.DeleteMessage)

				conv.GET("/messages/:message_id/receipts", receiptHandler.ListReceipts)
				conv.PUT("/messages/:message_id/receipts", receiptHandler.MarkRead)
				conv.GET("/messages/:message_id/receipts/:user_id", receiptHandler.GetReceipt)
				conv.DELETE("/messages/:message_id/receipts/:user_id", receiptHandler.DeleteReceipt)

				conv.GET("/calls", callHandler.ListCalls)
				conv.POST("/calls", callHandler.CreateCall)
				conv.GET("/calls/:call_id", callHandler.GetCall)
				conv.PATCH("/calls/:call_id", callHandler.UpdateCall)
				conv.DELETE("/calls/:call_id", callHandler.DeleteCall)
			}
		}

		// Gallery routes (protected, tenant-scoped)
		galleries := api.Group("/galleries")
		galleries.Use(middleware.RequireAuth())
		{
			galleries.GET("", galleryHandler.ListGalleries)
			galleries.POST("", galleryHandler.CreateGallery)
			galleries.GET("/:gallery_id", galleryHandler.GetGallery)
			galleries.PATCH("/:gallery_id", galleryHandler.UpdateGallery)
			galleries.DELETE("/:gallery_id", galleryHandler.DeleteGallery)

			galleries.GET("/:gallery_id/comments", commentHandler.ListComments)
			galleries.POST("/:gallery_id/comments", commentHandler.CreateComment)
			galleries.GET("/:gallery_id/comments/:id", commentHandler.GetComment)
			galleries.PATCH("/:gallery_id/comments/:id", commentHandler.UpdateComment)
			galleries.DELETE("/:gallery_id/comments/:id", commentHandler.DeleteComment)

			galleries.GET("/:gallery_id/likes", postLikeHandler.ListLikes)
			galleries.PUT("/:gallery_id/likes", postLikeHandler.Like)
			galleries.DELETE("/:gallery_id/likes", postLikeHandler.Unlike)
		}

		// Payment routes (protected, tenant-scoped)
		payments := api.Group("/payments")
		payments.Use(middleware.RequireAuth())
		{
			payments.GET("", paymentHandler.ListPayments)
			payments.POST("", paymentHandler.CreatePayment)
			payments.GET("/:id", paymentHandler.GetPayment)
			payments.PATCH("/:id", paymentHandler.UpdatePayment)
			payments.PATCH("/:id/status", paymentHandler.UpdatePaymentStatus)
			payments.POST("/:id/checkout", paymentHandler.Checkout)
			payments.DELETE("/:id", paymentHandler.DeletePayment)
		}

		// Event routes (protected, tenant-scoped)
		events := api.Group("/events")
		events.Use(middleware.RequireAuth())
		{
			events.GET("", eventHandler.ListEvents)
			events.POST("", eventHandler.CreateEvent)
			events.GET("/:id", eventHandler.GetEvent)
			events.PATCH("/:id", eventHandler.UpdateEvent)
			events.DELETE("/:id", eventHandler.DeleteEvent)
		}

		// Notification routes (protected, per-user)
		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireAuth())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.POST("", notificationHandler.CreateNotification)
			notifications.GET("/:id", notificationHandler.GetNotification)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.DeleteNotification)
		}

		// Task routes (protected, staff to-dos)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Integration routes (protected, tenant-scoped)
		integrations := api.Group("/integrations")
		integrations.Use(middleware.RequireAuth())
		{
			integrations.GET("", integrationHandler.ListIntegrations)
			integrations.POST("", integrationHandler.CreateIntegration)
			integrations.GET("/:id", integrationHandler.GetIntegration)
			integrations.PATCH("/:id", integrationHandler.UpdateIntegration)
			integrations.POST("/:id/regenerate-secret", integrationHandler.RegenerateSecret)
			integrations.DELETE("/:id", integrationHandler.DeleteIntegration)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
