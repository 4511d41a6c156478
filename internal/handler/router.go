package handler

import (
	"net/http"

	_ "GestorChoferes/docs"
	"GestorChoferes/internal/middleware"
	"GestorChoferes/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Records RecordService
	Hub     FeedHub
	DB      Pinger
	Metrics http.Handler
	Roster  []string
	Log     *zap.Logger

	// per client IP on mutating routes; <= 0 disables
	RateLimit float64
	RateBurst int
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(d.Log),
		middleware.Recovery(d.Log),
	)

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, middleware.RequestIDHeader)
	config.ExposeHeaders = append(config.ExposeHeaders, middleware.RequestIDHeader)
	router.Use(cors.New(config))

	router.SetHTMLTemplate(web.Templates())
	router.StaticFS("/static", web.Static())

	pages := NewPageHandler(d.Roster, d.DB)
	router.GET("/", pages.Index)
	router.GET("/choferes", pages.ListDrivers)
	router.GET("/health", pages.Health)

	limited := middleware.RateLimit(d.RateLimit, d.RateBurst)
	records := NewRecordHandler(d.Records, d.Log)
	registros := router.Group("/registros")
	{
		registros.POST("/", limited, records.CreateRecord)
		registros.GET("/", records.ListRecords)
		registros.GET("/:id", records.GetRecord)
		registros.PUT("/:id", limited, records.UpdateRecord)
		registros.DELETE("/:id", limited, records.DeleteRecord)
	}

	router.GET("/ws/registros", NewEventsHandler(d.Hub, d.Log).Stream)
	router.GET("/metrics", gin.WrapH(d.Metrics))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
