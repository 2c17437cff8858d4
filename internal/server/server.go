package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"roombook/internal/auth"
	"roombook/internal/availability"
	"roombook/internal/booking"
	"roombook/internal/config"
	"roombook/internal/notify"
	"roombook/internal/room"
	"roombook/internal/team"
	"roombook/internal/user"
)

type Server struct {
	router  *gin.Engine
	db      *sqlx.DB
	config  *config.Config
	httpSrv *http.Server
}

func New(db *sqlx.DB, cfg *config.Config, store *availability.RedisStore, reconciler *availability.Reconciler, notifier *notify.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	booking.RegisterBindings()

	caps := room.NewSeatCapacity(cfg.SeatsPrivate, cfg.SeatsConference, cfg.SeatsShared)
	roomRepo := room.NewRepository(db)
	teamRepo := team.NewRepository(db)
	userRepo := user.NewRepository(db)
	bookingRepo := booking.NewRepository(db, caps)

	gate := booking.NewGate(roomRepo, teamRepo, userRepo, bookingRepo)
	coordinator := booking.NewCoordinator(availability.NewCache(store), bookingRepo, bookingRepo, caps)
	bookingService := booking.NewService(gate, coordinator, bookingRepo, userRepo, teamRepo, notifier)

	userHandler := user.NewHandler(db, cfg.JWTSecret)
	roomHandler := room.NewHandler(db, caps)
	teamHandler := team.NewHandler(db)
	bookingHandler := booking.NewHandler(bookingService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/slots", roomHandler.ListTimeSlots)
		protected.GET("/availability", roomHandler.Availability)
		protected.POST("/bookings", bookingHandler.Create)
		protected.GET("/bookings", bookingHandler.History)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.CancelBooking)
	}

	adminMiddleware := auth.RequireRole("admin")
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/users", userHandler.CreateUser)
		admin.POST("/users/:userID/:action", userHandler.SetActive)
		admin.POST("/teams", teamHandler.CreateTeam)
		admin.POST("/teams/members", teamHandler.AddMember)
		admin.DELETE("/teams/members", teamHandler.RemoveMember)
		admin.GET("/bookings", bookingHandler.ListAll)
		admin.POST("/reconcile", Reconcile(reconciler))
	}

	router.GET("/health", Health(db, store))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.httpSrv = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
