package api

import (
	"net/http"
	"storyapp/internal/api/middleware"
	"storyapp/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		storyGroup := apiGroup.Group("/stories")
		{
			authOptGroup := storyGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.StoryHandler.ListPublished)
				authOptGroup.GET("/:story_id", group.StoryHandler.GetStory)
				authOptGroup.GET("/:story_id/comments", group.EngagementHandler.GetComments)
				authOptGroup.GET("/:story_id/comments/count", group.EngagementHandler.GetCommentCount)
			}

			authGroup := storyGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.StoryHandler.CreateStory)
				authGroup.PUT("/:story_id", group.StoryHandler.UpdateStory)
				authGroup.DELETE("/:story_id", group.StoryHandler.DeleteStory)
				authGroup.PUT("/:story_id/publish", group.StoryHandler.SetPublished)
				authGroup.GET("/self", group.StoryHandler.ListMine)
				authGroup.GET("/favorites", group.StoryHandler.ListFavorites)

				authGroup.POST("/:story_id/likes", group.EngagementHandler.LikeStory)
				authGroup.POST("/:story_id/favorites", group.EngagementHandler.FavoriteStory)
				authGroup.POST("/:story_id/watch-time", group.EngagementHandler.TrackWatchTime)
				authGroup.POST("/:story_id/comments", group.EngagementHandler.AddComment)

				authGroup.POST("/:story_id/characters", group.CharacterHandler.CreateCharacter)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		commentGroup.Use(middleware.AuthMiddleware())
		{
			commentGroup.DELETE("/:comment_id", group.EngagementHandler.DeleteComment)
		}

		characterGroup := apiGroup.Group("/characters")
		{
			characterGroup.GET("/:character_id", group.CharacterHandler.GetCharacter)

			authGroup := characterGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/self", group.CharacterHandler.ListMyCharacters)
				authGroup.PUT("/:character_id", group.CharacterHandler.UpdateCharacter)
				authGroup.DELETE("/:character_id", group.CharacterHandler.DeleteCharacter)
			}
		}

		genreGroup := apiGroup.Group("/genres")
		{
			genreGroup.GET("", group.GenreHandler.ListGenres)
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
			mediaGroup.DELETE("/upload", group.MediaHandler.Delete)
		}
	}

	return r
}
