package routes

import (
	"poshak-shop/controllers"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine, productCtrl *controllers.ProductController, cartCtrl *controllers.CartController, checkoutCtrl *controllers.CheckoutController, prefCtrl *controllers.PreferenceController) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := router.Group("/api/v1")
	{
		api.GET("/products", productCtrl.GetAllProducts)
		api.GET("/products/:id", productCtrl.GetProductByID)
		api.POST("/products/refresh", productCtrl.RefreshProducts)
		api.GET("/categories", productCtrl.GetAllCategories)

		api.GET("/cart", cartCtrl.GetCart)
		api.DELETE("/cart", cartCtrl.ClearCart)
		api.POST("/cart/items", cartCtrl.AddItem)
		api.PATCH("/cart/items/:index", cartCtrl.UpdateQuantity)
		api.DELETE("/cart/items/:index", cartCtrl.RemoveItem)
		api.POST("/cart/items/:index/increment", cartCtrl.IncrementItem)
		api.POST("/cart/items/:index/decrement", cartCtrl.DecrementItem)

		api.GET("/checkout/steps", checkoutCtrl.GetSteps)
		api.POST("/checkout/steps/next", checkoutCtrl.NextStep)
		api.POST("/checkout/steps/prev", checkoutCtrl.PrevStep)
		api.GET("/checkout/quote", checkoutCtrl.GetQuote)
		api.POST("/checkout/validate", checkoutCtrl.ValidateForm)
		api.POST("/checkout", checkoutCtrl.Submit)
		api.GET("/checkout/confirmation/:orderID", checkoutCtrl.GetConfirmation)

		api.GET("/preferences", prefCtrl.GetPreferences)
		api.PUT("/preferences/theme", prefCtrl.SetTheme)
	}
}
