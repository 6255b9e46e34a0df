package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/pawprint/adoption-site/docs"
	"github.com/pawprint/adoption-site/internal/api/handler"
	"github.com/pawprint/adoption-site/internal/api/middleware"
	"github.com/pawprint/adoption-site/internal/core/domain"
	"github.com/pawprint/adoption-site/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Accounts  ports.AccountService
	Sessions  ports.SessionService
	Listings  ports.ListingService
	Adoptions ports.AdoptionService
	Gate      ports.AccessGate

	Renderer      echo.Renderer
	Cookie        handler.SessionCookie
	MaxImageBytes int64

	Mongo *mongo.Database
	Redis handler.Pinger

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "adoption",
		Registerer: d.Registerer,
	}))
	e.Use(middleware.Session(d.Sessions, d.Cookie.Name))

	// --- Handlers ---
	accounts := handler.NewAccountHandler(d.Accounts, d.Sessions, d.Cookie, d.Log)
	listings := handler.NewListingHandler(d.Listings, d.MaxImageBytes, d.Log)
	adoptions := handler.NewAdoptionHandler(d.Adoptions, d.Log)
	staff := handler.NewStaffHandler(d.Gate, d.Accounts, d.Sessions, d.Cookie, d.Log)

	signedIn := middleware.RequireAuth()
	staffOnly := middleware.RequireRole(domain.RoleStaff)
	clientOnly := middleware.RequireRole(domain.RoleClient)

	// --- Accounts ---
	e.GET("/", accounts.Home)
	e.POST("/register", accounts.Register)
	e.POST("/login", accounts.Login)
	e.GET("/logout", accounts.Logout, signedIn)
	e.GET("/profile", accounts.ProfileForm, signedIn)
	e.POST("/editprofile", accounts.EditProfile, signedIn)

	// --- Access gate ---
	e.GET("/staff", staff.Gate)
	e.POST("/addstaff", staff.AddStaff)

	// --- Listings ---
	e.GET("/listings", listings.List, signedIn)
	e.GET("/listings/:id/image", listings.Image, signedIn)
	e.GET("/addlisting", listings.NewForm, staffOnly)
	e.POST("/addlisting", listings.Create, staffOnly, echomiddleware.BodyLimit(uploadBodyLimit(d.MaxImageBytes)))
	e.POST("/remove", listings.Remove, staffOnly)

	// --- Adoption workflow ---
	e.POST("/adopt", adoptions.Adopt, clientOnly)
	e.GET("/adoptions", adoptions.Mine, clientOnly)
	e.GET("/requests", adoptions.Pending, staffOnly)
	e.POST("/approve", adoptions.Approve, staffOnly)
	e.POST("/deny", adoptions.Deny, staffOnly)

	// --- Health probes (no auth required) ---
	health := handler.NewHealthHandler(d.Mongo, d.Redis)
	e.GET("/health", health.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// uploadBodyLimit caps a listing form at the image limit plus room for the
// text fields and multipart framing.
func uploadBodyLimit(maxImage int64) string {
	if maxImage <= 0 {
		maxImage = 5 << 20
	}
	return fmt.Sprintf("%dB", maxImage+64<<10)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
