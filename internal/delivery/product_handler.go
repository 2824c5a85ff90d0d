package delivery

import (
	"fmt"
	"net/http"
	"strconv"

	"product_service/internal/domain"
	"product_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const productsPath = "/products"

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group(productsPath)
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProductByID)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

// productLocation is the URL of the Get operation for id.
func productLocation(id int) string {
	return fmt.Sprintf("%s/%d", productsPath, id)
}

func (h *ProductHandler) parseID(c *gin.Context) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		h.log.Warnf("Invalid product ID parameter: %s", idStr)
		abortWithError(c, fmt.Errorf("%w: %q", domain.ErrInvalidProductID, idStr))
		return 0, false
	}
	return id, true
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	product, err := h.useCase.GetProductByID(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get product by ID %d: %v", id, err)
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		h.log.Warnf("Failed to bind JSON for create product: %v", err)
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	createdProduct, err := h.useCase.CreateProduct(c.Request.Context(), &product)
	if err != nil {
		h.log.Errorf("Failed to create product: %v", err)
		abortWithError(c, err)
		return
	}

	h.log.Infof("Product created successfully: ID %d", createdProduct.ID)
	c.Header("Location", productLocation(createdProduct.ID))
	c.JSON(http.StatusCreated, createdProduct)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		h.log.Warnf("Failed to bind JSON for update product ID %d: %v", id, err)
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if err := h.useCase.UpdateProduct(c.Request.Context(), id, &product); err != nil {
		h.log.Warnf("Failed to update product ID %d: %v", id, err)
		abortWithError(c, err)
		return
	}

	h.log.Infof("Product updated successfully: ID %d", id)
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.useCase.DeleteProduct(c.Request.Context(), id); err != nil {
		h.log.Warnf("Failed to delete product ID %d: %v", id, err)
		abortWithError(c, err)
		return
	}

	h.log.Infof("Product deleted successfully: ID %d", id)
	c.Status(http.StatusNoContent)
}
