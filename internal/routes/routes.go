package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cinefil_back_end/internal/handlers"
	"cinefil_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.Default())

	// Santé
	r.GET("/", handlers.Health)

	// Auth
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", middleware.RegisterRateLimit(), handlers.Register)
		auth.POST("/login", middleware.LoginRateLimit(), handlers.Login)
		auth.GET("/me", middleware.AuthRequired(), handlers.Me)

		// OAuth externe (Google / Facebook)
		auth.GET("/:provider", handlers.BeginOAuth)
		auth.GET("/:provider/callback", handlers.OAuthCallback)
		auth.GET("/:provider/mobile/url", handlers.MobileAuthURL)
		auth.POST("/:provider/mobile", handlers.MobileOAuth)
	}

	// Films
	movies := r.Group("/api/movies")
	{
		// Recherche publique
		movies.GET("/search", handlers.SearchMovies)

		// Tout le reste exige un bearer token
		protected := movies.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("", handlers.ListMovies)
			protected.POST("/rate", handlers.RateMovie)
			protected.POST("/add", handlers.AddMovie)
			protected.POST("/import-from-omdb", handlers.ImportFromOmdb)

			recs := protected.Group("/recommendations")
			{
				recs.GET("/content-based", handlers.ContentBasedRecommendations)
				recs.GET("/collaborative", handlers.CollaborativeRecommendations)
				recs.GET("/hybrid", handlers.HybridRecommendations)
				recs.GET("/similar-users", handlers.SimilarUsersList)
				recs.GET("/ai", handlers.AIRecommendations)
				recs.GET("/preferences", handlers.PreferencesProfile)
			}
		}
	}
}
