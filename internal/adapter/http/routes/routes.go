package routes

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	_ "quickestimate/docs" // registers swagger docs
	"quickestimate/internal/adapter/http/handlers"
	"quickestimate/internal/config"
	"quickestimate/internal/infrastructure/ai"
	"quickestimate/internal/infrastructure/pdf"
	"quickestimate/internal/usecase"
	"quickestimate/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires the use case to its adapters and returns the HTTP engine.
func NewRouter(cfg config.Config) (*gin.Engine, error) {
	corsMiddleware, err := newCORS(cfg.CORS)
	if err != nil {
		return nil, err
	}

	gateway, err := ai.NewOpenAIGateway(ai.Options{
		APIKey:             cfg.OpenAI.APIKey,
		BaseURL:            cfg.OpenAI.BaseURL,
		TranscriptionModel: cfg.OpenAI.TranscriptionModel,
		ExtractionModel:    cfg.OpenAI.ExtractionModel,
		Timeout:            cfg.OpenAI.Timeout,
	})
	if err != nil {
		return nil, err
	}

	estimateUseCase := usecase.NewEstimateUseCase(gateway, gateway, pdf.NewRenderer(), usecase.Settings{
		Company: cfg.Company,
		TaxRate: cfg.Estimate.TaxRate,
	})
	estimateHandler := handlers.NewEstimateHandler(estimateUseCase, cfg.Estimate.MaxAudioBytes)

	router := gin.New()
	setMiddlewares(router, corsMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	addPingRoutes(router)
	addEstimateRoutes(router, estimateHandler)

	return router, nil
}

func setMiddlewares(router *gin.Engine, corsMiddleware gin.HandlerFunc) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("Recovered from panic: %v", recovered)
		appErr := pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
	}))
	router.Use(corsMiddleware)
}

// newCORS allows every origin when "*" is listed. Otherwise only the listed
// origins are allowed, with credentials.
func newCORS(cfg config.CORSConfig) (gin.HandlerFunc, error) {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition"},
	}

	if cfg.AllowsAnyOrigin() {
		c.AllowAllOrigins = true
		return cors.New(c), nil
	}

	for _, o := range cfg.AllowedOrigins {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return nil, fmt.Errorf("invalid CORS origin %q", o)
		}
		c.AllowOrigins = append(c.AllowOrigins, o)
	}
	if len(c.AllowOrigins) == 0 {
		return nil, fmt.Errorf("no CORS origins configured")
	}
	c.AllowCredentials = true
	return cors.New(c), nil
}
