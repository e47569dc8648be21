package routes

import (
	"github.com/adithyaaneesh/swiggy-api/configs"
	"github.com/adithyaaneesh/swiggy-api/controllers"
	"github.com/adithyaaneesh/swiggy-api/entity"
	"github.com/adithyaaneesh/swiggy-api/middlewares"
	"github.com/adithyaaneesh/swiggy-api/repository"
	"github.com/adithyaaneesh/swiggy-api/services"
	"github.com/adithyaaneesh/swiggy-api/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Status feed
	hub := ws.NewStatusHub(orderRepo)
	go hub.Run()

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	cartSvc := services.NewCartService(db, cartRepo, orderRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo)
	orderSvc.Notifier = hub
	provider := services.NewHTTPProvider(cfg.PaymentBaseURL, cfg.PaymentAPIKey)
	paymentSvc := services.NewPaymentService(db, paymentRepo, orderSvc, provider)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	restCtrl := controllers.NewRestaurantController(db)
	menuCtrl := controllers.NewMenuController(db)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	paymentCtrl := controllers.NewPaymentController(paymentSvc)
	reviewCtrl := controllers.NewReviewController(db)
	adminCtrl := controllers.NewAdminController(db, orderRepo, userRepo)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)

	// Public catalog
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Detail)
	r.GET("/restaurants/:id/reviews", reviewCtrl.ListForRestaurant)
	r.GET("/menu", menuCtrl.List)

	// Restaurant owner
	owner := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleRestaurantOwner))
	{
		owner.POST("/restaurants", restCtrl.Create)
		owner.PATCH("/restaurants/:id", restCtrl.Update)
		owner.POST("/menu", menuCtrl.Create)
		owner.PATCH("/menu/:id", menuCtrl.Update)
		owner.DELETE("/menu/:id", menuCtrl.Delete)
	}

	// Customer
	customer := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleCustomer))
	{
		customer.GET("/cart", cartCtrl.View)
		customer.POST("/cart/add", cartCtrl.Add)
		customer.POST("/cart/remove", cartCtrl.Remove)

		customer.POST("/order/place", orderCtrl.Place)
		customer.GET("/order", orderCtrl.ListForMe)
		customer.GET("/order/:id", orderCtrl.Detail)

		customer.POST("/order/:id/payment/create", paymentCtrl.CreateIntent)
		customer.GET("/order/:id/payment/confirm", paymentCtrl.Confirm)

		customer.POST("/reviews", reviewCtrl.Create)
	}

	// Transitions are gated per-step inside the service; the middleware only
	// authenticates here.
	r.POST("/order/:id/transition", middlewares.AuthMiddleware(cfg.JWTSecret), orderCtrl.Transition)

	// Order status feed (owner or admin, checked in the handler)
	r.GET("/ws/orders/:id", middlewares.AuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)

	// Admin
	admin := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleAdmin))
	{
		admin.GET("/orders", adminCtrl.Orders)
		admin.GET("/users", adminCtrl.Users)
	}
}
