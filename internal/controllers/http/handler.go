package http

import (
	"net/http"
	"strconv"

	"storefront-service/internal/domain"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Services struct {
	Catalog      *services.CatalogService
	CatalogAdmin *services.CatalogAdminService
	Carts        *services.CartService
	Orders       *services.OrderService
	OrderAdmin   *services.OrderAdminService
	Profiles     *services.ProfileService
}

type Handler struct {
	catalog      *services.CatalogService
	catalogAdmin *services.CatalogAdminService
	carts        *services.CartService
	orders       *services.OrderService
	orderAdmin   *services.OrderAdminService
	profiles     *services.ProfileService
}

func NewHandler(s Services) *Handler {
	return &Handler{
		catalog:      s.Catalog,
		catalogAdmin: s.CatalogAdmin,
		carts:        s.Carts,
		orders:       s.Orders,
		orderAdmin:   s.OrderAdmin,
		profiles:     s.Profiles,
	}
}

// RegisterRoutes mounts the public catalog routes and, behind authn, the
// cart, order and admin routes.
func (h *Handler) RegisterRoutes(r *gin.Engine, authn gin.HandlerFunc) {
	r.GET("/healthz", h.Health)
	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.GET("/categories", h.ListCategories)
	r.GET("/testimonials", h.ListTestimonials)

	api := r.Group("/", authn)
	api.GET("/me", h.Me)

	api.GET("/cart", h.GetCart)
	api.POST("/cart/items", h.AddCartItem)
	api.PATCH("/cart/items/:productId", h.UpdateCartItem)
	api.DELETE("/cart/items/:productId", h.RemoveCartItem)
	api.DELETE("/cart", h.ClearCart)

	api.POST("/checkout", h.Checkout)
	api.GET("/orders", h.ListMyOrders)
	api.GET("/orders/:id", h.GetOrder)

	admin := api.Group("/admin")
	admin.POST("/products", h.CreateProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)
	admin.GET("/products/export", h.ExportProducts)
	admin.GET("/orders", h.ListOrders)
	admin.PATCH("/orders/:id/status", h.SetOrderStatus)
	admin.PATCH("/profiles/:id/role", h.SetRole)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListProducts(c *gin.Context) {
	var filter domain.ProductFilter
	if v := c.Query("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(c, "featured", "must be true or false")
			return
		}
		filter.Featured = &featured
	}
	filter.Category = c.Query("category")

	products, err := h.catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *Handler) ListTestimonials(c *gin.Context) {
	ts, err := h.catalog.ListTestimonials(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ts)
}

func (h *Handler) Me(c *gin.Context) {
	p, err := h.profiles.Ensure(c.Request.Context(), identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.carts.Load(c.Request.Context(), identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cart))
}

func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "productId", "must be a product id")
		return
	}

	cart, err := h.carts.AddItem(c.Request.Context(), identity(c), uuid.MustParse(req.ProductID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cart))
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	productID, ok := pathUUID(c, "productId")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quantity", "must be an integer")
		return
	}

	cart, err := h.carts.UpdateQuantity(c.Request.Context(), identity(c), productID, *req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cart))
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID, ok := pathUUID(c, "productId")
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItem(c.Request.Context(), identity(c), productID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cart))
}

func (h *Handler) ClearCart(c *gin.Context) {
	cart, err := h.carts.Clear(c.Request.Context(), identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cart))
}

func (h *Handler) Checkout(c *gin.Context) {
	order, err := h.orders.Checkout(c.Request.Context(), identity(c), c.GetHeader("Idempotency-Key"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) ListMyOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	orders, err := h.orders.ListMyOrders(c.Request.Context(), identity(c), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), identity(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body", err.Error())
		return
	}

	p, err := h.catalogAdmin.CreateProduct(c.Request.Context(), identity(c), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body", err.Error())
		return
	}

	p, err := h.catalogAdmin.UpdateProduct(c.Request.Context(), identity(c), id, req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogAdmin.DeleteProduct(c.Request.Context(), identity(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	res, err := h.orderAdmin.ListOrders(c.Request.Context(), identity(c), c.Query("status"), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) SetOrderStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status", "is required")
		return
	}

	order, err := h.orderAdmin.SetStatus(c.Request.Context(), identity(c), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) SetRole(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "role", "is required")
		return
	}

	p, err := h.profiles.SetRole(c.Request.Context(), identity(c), id, req.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, name, "must be a uuid")
		return uuid.Nil, false
	}
	return id, true
}
