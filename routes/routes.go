package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/atelier-backend/controllers"
	"github.com/yashrajoria/atelier-backend/middleware"
	"github.com/yashrajoria/atelier-backend/services"
)

// Controllers groups every HTTP handler the API serves.
type Controllers struct {
	Cart      *controllers.CartController
	Order     *controllers.OrderController
	Product   *controllers.ProductController
	Category  *controllers.CategoryController
	Auth      *controllers.AuthController
	Customer  *controllers.CustomerController
	Dashboard *controllers.DashboardController
	Activity  *controllers.ActivityController
}

func RegisterRoutes(r *gin.Engine, ctrl Controllers, adminAuth services.AdminAuthService) {
	api := r.Group("/api")

	registerStorefrontRoutes(api, ctrl)

	api.POST("/admin/auth/login", ctrl.Auth.AdminLogin)
	api.POST("/admin/auth/logout", ctrl.Auth.AdminLogout)
	api.GET("/admin/auth/validate", ctrl.Auth.AdminValidate)

	admin := api.Group("/admin", middleware.AdminAuth(adminAuth))
	registerAdminRoutes(admin, ctrl)
}

func registerStorefrontRoutes(api *gin.RouterGroup, ctrl Controllers) {
	cartRoutes := api.Group("/cart/:sessionId")
	{
		cartRoutes.GET("", ctrl.Cart.GetCart)
		cartRoutes.POST("/add", ctrl.Cart.AddToCart)
		cartRoutes.DELETE("/remove/:productId", ctrl.Cart.RemoveFromCart)
		cartRoutes.PUT("/update/:productId", ctrl.Cart.UpdateCartItem)
		cartRoutes.DELETE("/clear", ctrl.Cart.ClearCart)
	}

	orderRoutes := api.Group("/orders")
	{
		orderRoutes.POST("", ctrl.Order.CreateOrder)
		orderRoutes.GET("/:id", ctrl.Order.GetOrder)
		orderRoutes.GET("/number/:orderNumber", ctrl.Order.GetOrderByNumber)
		orderRoutes.GET("/customer/:customerId", ctrl.Order.GetCustomerOrders)
		orderRoutes.GET("/status/:status", ctrl.Order.GetOrdersByStatus)
		orderRoutes.PUT("/:id/status", ctrl.Order.UpdateOrderStatus)
	}

	productRoutes := api.Group("/products")
	{
		productRoutes.GET("", ctrl.Product.GetProducts)
		productRoutes.GET("/featured", ctrl.Product.GetFeatured)
		productRoutes.GET("/latest", ctrl.Product.GetLatest)
		productRoutes.GET("/category/:categoryId", ctrl.Product.GetByCategory)
		productRoutes.GET("/gender/:gender", ctrl.Product.GetByGender)
		productRoutes.GET("/search", ctrl.Product.Search)
		productRoutes.GET("/:id", ctrl.Product.GetProduct)
	}

	categoryRoutes := api.Group("/categories")
	{
		categoryRoutes.GET("", ctrl.Category.GetCategories)
		categoryRoutes.GET("/:id", ctrl.Category.GetCategory)
	}

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/login", ctrl.Auth.Login)
		authRoutes.POST("/register", ctrl.Auth.Register)
	}
}

func registerAdminRoutes(admin *gin.RouterGroup, ctrl Controllers) {
	orderRoutes := admin.Group("/orders")
	{
		orderRoutes.GET("", ctrl.Order.ListOrders)
		orderRoutes.GET("/:id", ctrl.Order.GetOrder)
		orderRoutes.PUT("/:id", ctrl.Order.UpdateOrder)
	}

	productRoutes := admin.Group("/products")
	{
		productRoutes.GET("", ctrl.Product.AdminListProducts)
		productRoutes.POST("", ctrl.Product.CreateProduct)
		productRoutes.POST("/image-upload-url", ctrl.Product.CreateImageUploadURL)
		productRoutes.PUT("/:id", ctrl.Product.UpdateProduct)
		productRoutes.DELETE("/:id", ctrl.Product.DeleteProduct)
		productRoutes.PATCH("/:id/active", ctrl.Product.SetActive)
		productRoutes.PATCH("/:id/featured", ctrl.Product.SetFeatured)
		productRoutes.PATCH("/:id/stock", ctrl.Product.SetStock)
	}

	admin.POST("/categories", ctrl.Category.CreateCategory)

	customerRoutes := admin.Group("/customers")
	{
		customerRoutes.GET("", ctrl.Customer.ListCustomers)
		customerRoutes.GET("/counts", ctrl.Customer.GetCounts)
		customerRoutes.GET("/:id", ctrl.Customer.GetCustomer)
		customerRoutes.PUT("/:id", ctrl.Customer.UpdateCustomer)
		customerRoutes.PATCH("/:id/status", ctrl.Customer.UpdateStatus)
	}

	admin.GET("/dashboard/stats", ctrl.Dashboard.GetStats)
	admin.GET("/dashboard/top-spenders", ctrl.Dashboard.GetTopSpenders)
	admin.GET("/sales/by-category", ctrl.Dashboard.GetSalesByCategory)

	activityRoutes := admin.Group("/activities")
	{
		activityRoutes.GET("", ctrl.Activity.GetActivities)
		activityRoutes.GET("/notifications", ctrl.Activity.GetNotifications)
		activityRoutes.GET("/notifications/count", ctrl.Activity.GetUnreadCount)
		activityRoutes.POST("/notifications/mark-all-read", ctrl.Activity.MarkAllAsRead)
		activityRoutes.POST("/notifications/:id/mark-read", ctrl.Activity.MarkAsRead)
	}
}
