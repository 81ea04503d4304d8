package router

import (
	"github.com/gin-gonic/gin"
	"github.com/historin/historin-backend/config"
	"github.com/historin/historin-backend/internal/app/controller"
	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/internal/middleware"
)

type Router struct {
	adController        *controller.AdController
	qrHuntController    *controller.QrHuntController
	quizController      *controller.QuizController
	adminAuthController *controller.AdminAuthController
	uploadController    *controller.UploadController

	cityController          *controller.ResourceController[model.City]
	streetController        *controller.ResourceController[model.Street]
	authorController        *controller.ResourceController[model.Author]
	workController          *controller.ResourceController[model.Work]
	businessController      *controller.ResourceController[model.Business]
	organizationController  *controller.ResourceController[model.Organization]
	referenceSiteController *controller.ResourceController[model.ReferenceSite]
	popupAdController       *controller.ResourceController[model.PopupAd]

	adminAuthMiddleware *middleware.AdminAuthMiddleware
	config              *config.Config
}

type Controllers struct {
	Ad        *controller.AdController
	QrHunt    *controller.QrHuntController
	Quiz      *controller.QuizController
	AdminAuth *controller.AdminAuthController
	Upload    *controller.UploadController

	City          *controller.ResourceController[model.City]
	Street        *controller.ResourceController[model.Street]
	Author        *controller.ResourceController[model.Author]
	Work          *controller.ResourceController[model.Work]
	Business      *controller.ResourceController[model.Business]
	Organization  *controller.ResourceController[model.Organization]
	ReferenceSite *controller.ResourceController[model.ReferenceSite]
	PopupAd       *controller.ResourceController[model.PopupAd]
}

func NewRouter(
	controllers Controllers,
	adminAuthMiddleware *middleware.AdminAuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		adController:            controllers.Ad,
		qrHuntController:        controllers.QrHunt,
		quizController:          controllers.Quiz,
		adminAuthController:     controllers.AdminAuth,
		uploadController:        controllers.Upload,
		cityController:          controllers.City,
		streetController:        controllers.Street,
		authorController:        controllers.Author,
		workController:          controllers.Work,
		businessController:      controllers.Business,
		organizationController:  controllers.Organization,
		referenceSiteController: controllers.ReferenceSite,
		popupAdController:       controllers.PopupAd,
		adminAuthMiddleware:     adminAuthMiddleware,
		config:                  cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "HISTORIN API is running",
		})
	})

	api := router.Group("/api")
	{
		// Public surface: plain request/response, no auth.
		api.GET("/ads", r.adController.SelectAd)
		api.GET("/qr-hunt", r.qrHuntController.GetHunt)
		api.POST("/qr-hunt", r.qrHuntController.RecordScan)
		api.POST("/quiz", r.quizController.SubmitQuiz)

		api.GET("/cities", r.cityController.List)
		api.GET("/streets", r.streetController.List)
		api.GET("/works", r.workController.List)

		admin := api.Group("/admin")
		{
			admin.POST("/login", r.adminAuthController.Login)
			admin.POST("/logout", r.adminAuthController.Logout)

			protected := admin.Group("", r.adminAuthMiddleware.Authenticate())
			{
				registerResource(protected, "cities", r.cityController)
				registerResource(protected, "streets", r.streetController)
				registerResource(protected, "authors", r.authorController)
				registerResource(protected, "works", r.workController)
				registerResource(protected, "businesses", r.businessController)
				registerResource(protected, "organizations", r.organizationController)
				registerResource(protected, "reference-sites", r.referenceSiteController)
				registerResource(protected, "popup-ads", r.popupAdController)

				protected.GET("/ads", r.adController.ListAds)
				protected.POST("/ads", r.adController.CreateAd)
				protected.PUT("/ads/:id", r.adController.UpdateAd)
				protected.PATCH("/ads/:id", r.adController.UpdateAd)
				protected.DELETE("/ads/:id", r.adController.DeleteAd)

				protected.GET("/qr-codes", r.qrHuntController.ListCodes)
				protected.POST("/qr-codes", r.qrHuntController.CreateCode)
				protected.PUT("/qr-codes/:id", r.qrHuntController.UpdateCode)
				protected.PATCH("/qr-codes/:id", r.qrHuntController.UpdateCode)
				protected.DELETE("/qr-codes/:id", r.qrHuntController.DeleteCode)

				protected.GET("/questions", r.quizController.ListQuestions)
				protected.POST("/questions", r.quizController.CreateQuestion)
				protected.GET("/questions/csv", r.quizController.ExportQuestionsCSV)
				protected.POST("/questions/csv", r.quizController.ImportQuestionsCSV)
				protected.GET("/questions/xlsx", r.quizController.ExportQuestionsXLSX)
				protected.PUT("/questions/:id", r.quizController.UpdateQuestion)
				protected.PATCH("/questions/:id", r.quizController.UpdateQuestion)
				protected.DELETE("/questions/:id", r.quizController.DeleteQuestion)

				protected.GET("/quiz", r.quizController.ListSubmissions)

				if r.uploadController != nil {
					protected.POST("/upload/presigned-url", r.uploadController.GetPresignedURL)
				}
			}
		}
	}

	return router
}

// registerResource wires the uniform CRUD shape for one catalog resource.
func registerResource[T any](group *gin.RouterGroup, path string, ctrl *controller.ResourceController[T]) {
	group.GET("/"+path, ctrl.List)
	group.POST("/"+path, ctrl.Create)
	group.GET("/"+path+"/:id", ctrl.Get)
	group.PUT("/"+path+"/:id", ctrl.Update)
	group.PATCH("/"+path+"/:id", ctrl.Update)
	group.DELETE("/"+path+"/:id", ctrl.Delete)
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, x-admin-token")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
