// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"jobtrack-backend/internal/auth"
	analyticscontroller "jobtrack-backend/internal/controller/analytics"
	applicationcontroller "jobtrack-backend/internal/controller/application"
	tagscontroller "jobtrack-backend/internal/controller/tags"
	"jobtrack-backend/internal/middleware"

	// Init swagger doc
	_ "jobtrack-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const csvUploadLimit = 5 << 20

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	googleOauth := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_AUTH_CLIENT"),
		ClientSecret: os.Getenv("GOOGLE_AUTH_SECRET"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: os.Getenv("OAUTH_REDIRECT_URL"),
	}

	gAuth := auth.NewOauthLoginHandler(s.DB, googleOauth, "https://www.googleapis.com/oauth2/v2/userinfo")
	lAuth := auth.NewLocalAuthHandler(s.DB)
	logout := auth.NewLogoutController(s.Blacklist)
	applications := applicationcontroller.NewApplicationController(s.DB)
	analytics := analyticscontroller.NewAnalyticsController(s.DB)
	tags := tagscontroller.NewTagsController()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.EnvRateLimitMiddleware())

	r.GET("/health", s.healthHandler)

	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("google", gAuth.GoogleLoginHandler)
			authRoute.GET("google/callback", gAuth.Callback)

			authRoute.POST("login", lAuth.LocalLoginHandler)
			authRoute.POST("register", lAuth.LocalRegisterHandler)
			authRoute.POST("logout",
				middleware.RequireAuth(s.DB),
				middleware.JwtBlacklistCheck(s.Blacklist),
				logout.LogoutHandler)
		}

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB), middleware.JwtBlacklistCheck(s.Blacklist))

			applicationRoute := needAuth.Group("/application")
			{
				applicationRoute.POST("", applications.CreateApplication)
				applicationRoute.GET("", applications.GetApplications)
				applicationRoute.GET("export", applications.ExportCSV)
				applicationRoute.POST("import", middleware.SizeLimit(csvUploadLimit), applications.ImportCSV)
				applicationRoute.GET(":id", applications.GetApplicationByID)
				applicationRoute.PATCH(":id", applications.EditApplication)
				applicationRoute.DELETE(":id", applications.DeleteApplication)
			}

			analyticsRoute := needAuth.Group("/analytics")
			{
				analyticsRoute.GET("", analytics.GetMetrics)
				analyticsRoute.GET("insights", analytics.GetInsights)
			}

			tagRoute := needAuth.Group("/tags")
			{
				tagRoute.GET("", tags.GetCatalog)
				tagRoute.POST("suggest", tags.SuggestTags)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
