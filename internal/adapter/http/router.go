package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/communitybook/listing-service/internal/adapter/http/middleware"
	"github.com/communitybook/listing-service/internal/platform/logger"
)

// NewRouter wires the REST surface under /api/v1/books.
func NewRouter(h *Handler, log *logger.Logger, allowedOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	books := router.Group("/api/v1/books")
	{
		books.GET("", h.ListBooks)
		books.POST("", h.CreateBook)
		books.POST("/upload", h.UploadBook)
		books.GET("/search", h.SearchBooks)
		books.GET("/type/:type", h.GetBooksByType)
		books.GET("/owner/:owner", h.GetBooksByOwner)
		books.GET("/:id", h.GetBook)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
		books.GET("/:id/photo", h.GetBookPhoto)
	}

	return router
}
