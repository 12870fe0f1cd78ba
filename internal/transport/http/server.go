package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "learnlog/internal/app"
	"learnlog/internal/bootstrap"
	"learnlog/internal/cache"
	rabbitmqClient "learnlog/internal/platform/rabbitmq"
	"learnlog/internal/repository"
	"learnlog/internal/session"
	"learnlog/internal/transport/http/handler"
	"learnlog/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	sessions := session.NewStore(app.Redis, time.Duration(app.Config.Auth.SessionTTLMinute)*time.Minute)
	router.Use(middleware.CurrentUser(sessions, app.Config.Auth.JWTSecret))

	userRepo := repository.NewUserRepository(app.MySQL)
	entryRepo := repository.NewEntryRepository(app.MySQL)
	auditRepo := repository.NewAuditEventRepository(app.MySQL)
	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)

	publisher := rabbitmqClient.NewEntryEventPublisher(app.MQConn, app.Config.RabbitMQ.AuditQueue)
	listCache := cache.NewEntryListCache(
		app.Redis,
		time.Duration(app.Config.Redis.EntryListTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.EntryDirtyTTLSecs)*time.Second,
	)
	journalService := appsvc.NewJournalService(entryRepo, auditRepo, publisher, listCache)

	authHandler := handler.NewAuthHandler(authService, sessions)
	journalHandler := handler.NewJournalHandler(journalService, sessions)
	healthHandler := handler.NewHealthHandler(app)

	router.GET("/", authHandler.LoginPage)
	router.POST("/", authHandler.Login)
	router.GET("/login", authHandler.LoginPage)
	router.POST("/login", authHandler.Login)
	router.StaticFile("/help", "web/help.html")
	router.StaticFile("/modal", "web/modal.html")
	router.GET("/healthz", healthHandler.Check)

	guarded := router.Group("", middleware.RequireUser())
	guarded.GET("/logout", authHandler.Logout)
	guarded.GET("/new", journalHandler.NewEntryPage)
	guarded.POST("/new", journalHandler.CreateEntry)
	guarded.GET("/journals", journalHandler.ListEntries)
	guarded.POST("/journals", journalHandler.ListEntries)
	guarded.GET("/tags/:tag", journalHandler.ListEntriesByTag)
	guarded.POST("/tags/:tag", journalHandler.ListEntriesByTag)
	guarded.GET("/details/:title", journalHandler.EntryDetails)
	guarded.POST("/details/:title", journalHandler.EntryDetails)
	guarded.GET("/delete/:title", journalHandler.DeleteEntry)
	guarded.GET("/edit/:title", journalHandler.EditEntryPage)
	guarded.POST("/edit/:title", journalHandler.EditEntry)
	guarded.GET("/audit", journalHandler.AuditTrail)

	return router
}
