package main

import (
	"fmt"
	"os"
	"time"

	"braincontrol/controller"
	"braincontrol/model"
	"braincontrol/platform"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_uuid "github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// RequestIDMiddleware ...
// Generate a unique ID and attach it to each request for future reference or use
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid := _uuid.New()
		c.Writer.Header().Set("X-Request-Id", uuid.String())
		c.Set("requestId", uuid.String())
		c.Next()
	}
}

func LogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		if raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)

		logrus.Infof(
			" [%s] %d | %v | %s | %s | %s | %s ",
			c.GetString("requestId"),
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.Request.Method,
			path,
			c.Request.UserAgent(),
		)
	}
}

func main() {
	fmt.Println("Server started...")

	//Load the .env file
	if err := godotenv.Load(".env"); err != nil {
		fmt.Println("failed to load the env file")
	}

	config, err := platform.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %s\n", err)
		os.Exit(1)
	}

	platform.InitFile(config.LogPath, "gin")
	logger := platform.InitAppLogger(config.LogPath, "braincontrol", logrus.InfoLevel)

	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))
	r.Use(RequestIDMiddleware())
	r.Use(LogMiddleware())

	//init database
	db, err := platform.NewDB(config.DB)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	if err := model.InstallDB(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	controller.SetupRoutes(r, model.NewStore(db))

	logger.Infof("Listening on :%s (%s)", config.Port, config.DB.Driver)
	if err := r.Run(":" + config.Port); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
