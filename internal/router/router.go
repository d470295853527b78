package router

import (
	"errors"
	"net/http"
	"net/url"

	docs "github.com/aura-finance/backend/api"
	"github.com/aura-finance/backend/internal/controllers"
	"github.com/aura-finance/backend/internal/controllers/healthz"
	"github.com/aura-finance/backend/internal/httperror"
	"github.com/aura-finance/backend/internal/httputil"
	"github.com/aura-finance/backend/internal/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time.
var version = "0.0.0"

var errMethodNotAllowed = errors.New("this HTTP method is not allowed for the endpoint you called")

// Config creates the engine with all middlewares. The returned teardown
// function unregisters the Prometheus metrics.
func Config(url *url.URL, corsOrigins []string) (*gin.Engine, func(), error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, func() {}, err
	}

	teardown := func() {
		if !unregisterPrometheusMetrics() {
			log.Debug().Msg("Some Prometheus metrics were not registered")
		}
	}

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, httperror.New(httperror.KindValidation, errMethodNotAllowed))
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if len(corsOrigins) > 0 {
		log.Debug().Strs("CORS Allowed Origins", corsOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "PATCH"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "Aura"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for Aura. It turns bank alert emails into categorized transactions and tracks them against your budgets."

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
func AttachRoutes(co controllers.Controller, group *gin.RouterGroup, enablePprof bool) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthz.RegisterRoutes(group.Group("/healthz"), co.DB)

	// pprof performance profiles
	if enablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	co.RegisterWebhookRoutes(group.Group("/webhooks"))
	co.RegisterAuthRoutes(group.Group("/auth"))
	co.RegisterVendorCacheRoutes(group.Group("/vendor-cache"))
	co.RegisterFeedbackRoutes(group.Group("/feedback"))
	co.RegisterDashboardRoutes(group.Group("/dashboard"))
	co.RegisterCategoryRoutes(group.Group("/categories"))
	co.RegisterBudgetRoutes(group.Group("/budgets"))
	co.RegisterTransactionRoutes(group.Group("/transactions"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs         string `json:"docs" example:"https://example.com/api/docs/index.html"`        // Swagger API documentation
	Version      string `json:"version" example:"https://example.com/api/version"`             // Endpoint returning the version of the backend
	Healthz      string `json:"healthz" example:"https://example.com/api/healthz"`             // Health check
	Metrics      string `json:"metrics" example:"https://example.com/api/metrics"`             // Prometheus metrics
	Webhooks     string `json:"webhooks" example:"https://example.com/api/webhooks/resend"`    // Inbound email webhook
	Auth         string `json:"auth" example:"https://example.com/api/auth/me"`                // Logged in user
	VendorCache  string `json:"vendorCache" example:"https://example.com/api/vendor-cache"`    // Vendor cache entries
	Feedback     string `json:"feedback" example:"https://example.com/api/feedback"`           // Categorization feedback
	Dashboard    string `json:"dashboard" example:"https://example.com/api/dashboard/summary"` // Spending summary
	Categories   string `json:"categories" example:"https://example.com/api/categories"`       // Category list
	Budgets      string `json:"budgets" example:"https://example.com/api/budgets"`             // Budget list
	Transactions string `json:"transactions" example:"https://example.com/api/transactions"`   // Transaction list
}

// GetRoot returns the link list for the API root
//
//	@Summary		API root
//	@Description	Entrypoint for the API, listing all endpoints
//	@Tags			General
//	@Success		200	{object}	RootResponse
//	@Router			/ [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:         url + "/docs/index.html",
			Version:      url + "/version",
			Healthz:      url + "/healthz",
			Metrics:      url + "/metrics",
			Webhooks:     url + "/webhooks/resend",
			Auth:         url + "/auth/me",
			VendorCache:  url + "/vendor-cache",
			Feedback:     url + "/feedback",
			Dashboard:    url + "/dashboard/summary",
			Categories:   url + "/categories",
			Budgets:      url + "/budgets",
			Transactions: url + "/transactions",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the Aura backend
}

// GetVersion returns the API version object
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsVersion returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}
