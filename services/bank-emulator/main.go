package main

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

var conf config

func main() {
	// Start webserver
	router := gin.Default()

	// Add handlers
	router.GET("/", healthCheck)
	router.GET(conf.MappingDocumentPath, servePathMappings)
	router.Static("/banks", conf.BanksDir)

	slog.Info("Starting Question Bank Emulator on port " + conf.Port)
	err := router.Run(":" + conf.Port)
	if err != nil {
		slog.Error("Exited Question Bank Emulator", slog.String("error", err.Error()))
		return
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// servePathMappings exposes the logical to real path mapping in the same
// shape as the production content endpoint: values formatted as
// "<logicalPath>:<realPath>".
func servePathMappings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mappings": conf.Mappings})
}
