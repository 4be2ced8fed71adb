package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jchamizo/productos/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.ProductHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/products", handler.List)
	r.GET("/products/:id", handler.Get)
	r.POST("/products", handler.Create)
	r.PUT("/products", handler.Update)
	r.PATCH("/products/:id/stock", handler.SetStock)
	r.PATCH("/products/:id/stock/increment", handler.IncrementStock)
	r.PATCH("/products/:id/stock/decrement", handler.DecrementStock)
	r.DELETE("/products/:id", handler.Delete)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
