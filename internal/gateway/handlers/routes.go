package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the terminal API on api, normally /api/v1.
func (h *TerminalHTTPHandler) RegisterRoutes(api gin.IRouter) {
	catalogGroup := api.Group("/catalog")
	{
		catalogGroup.GET("/products", h.ListProducts)
		catalogGroup.GET("/products/:id", h.GetProduct)
		catalogGroup.POST("/products", h.CreateProduct)
		catalogGroup.PUT("/products/:id", h.UpdateProduct)
		catalogGroup.GET("/categories", h.ListCategories)
		catalogGroup.POST("/categories", h.AddCategory)
		catalogGroup.DELETE("/categories/:id", h.DeleteCategory)
		catalogGroup.POST("/refresh", h.RefreshCatalog)
	}

	cartGroup := api.Group("/cart")
	{
		cartGroup.GET("", h.GetCart)
		cartGroup.DELETE("", h.ClearCart)
		cartGroup.POST("/items", h.AddItemToCart)
		cartGroup.PATCH("/items/:id", h.UpdateCartItem)
		cartGroup.DELETE("/items/:id", h.RemoveItemFromCart)
	}

	checkoutGroup := api.Group("/checkout")
	{
		checkoutGroup.GET("", h.GetCheckout)
		checkoutGroup.POST("", h.RequestCheckout)
		checkoutGroup.POST("/payment", h.CompletePayment)
		checkoutGroup.DELETE("/payment", h.CancelPayment)
		checkoutGroup.DELETE("/receipt", h.DismissReceipt)
	}

	api.GET("/sales", h.ListSales)
	api.GET("/receipts", h.ListReceipts)
	api.GET("/receipts/:number", h.GetReceipt)

	sessionGroup := api.Group("/session")
	{
		sessionGroup.POST("", h.Login)
		sessionGroup.GET("", h.GetSession)
		sessionGroup.DELETE("", h.Logout)
	}
}
