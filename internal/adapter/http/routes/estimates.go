package routes

import (
	"quickestimate/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPing               = "/ping"
	PathTranscribeAndParse = "/transcribe-and-parse"
	PathGeneratePDF        = "/generate-pdf"
)

func addPingRoutes(router gin.IRoutes) {
	router.GET(PathPing, handlers.Ping)
}

func addEstimateRoutes(router gin.IRoutes, estimateHandler *handlers.EstimateHandler) {
	router.POST(PathTranscribeAndParse, estimateHandler.TranscribeAndParse)
	router.POST(PathGeneratePDF, estimateHandler.GenerateDocument)
}
