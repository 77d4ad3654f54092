package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"bazaar/internal/repositories"
	"bazaar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles read-only HTTP requests for the catalog.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/categories/", h.HandleGetCategories)
	router.Get("/categories/:pk", h.HandleGetCategoryByID)
	router.Get("/products/", h.HandleGetProducts)
	router.Get("/products/:pk", h.HandleGetProductByID)
	router.Get("/products/:productID/files/", h.HandleGetProductFiles)
	router.Get("/products/:productID/files/:pk", h.HandleGetProductFileByID)
	router.Get("/provinces/", h.HandleGetProvinces)
}

// HandleGetCategories retrieves all categories.
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		log.Printf("Error getting all categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
			"error":   err.Error(),
		})
	}
	return c.JSON(categories)
}

// HandleGetCategoryByID retrieves a single category by its ID.
func (h *CatalogHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	pk, err := parseID(c, "pk")
	if err != nil {
		return notFound(c, "Category")
	}

	category, err := h.service.GetCategoryByID(pk)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Category")
		}
		log.Printf("Error getting category %d: %v", pk, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve category",
			"error":   err.Error(),
		})
	}
	return c.JSON(category)
}

// HandleGetProducts retrieves all products.
func (h *CatalogHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *CatalogHandler) HandleGetProductByID(c *fiber.Ctx) error {
	pk, err := parseID(c, "pk")
	if err != nil {
		return notFound(c, "Product")
	}

	product, err := h.service.GetProductByID(pk)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "Product")
		}
		log.Printf("Error getting product %d: %v", pk, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleGetProductFiles retrieves the files attached to a product.
func (h *CatalogHandler) HandleGetProductFiles(c *fiber.Ctx) error {
	productID, err := parseID(c, "productID")
	if err != nil {
		return notFound(c, "Product")
	}

	files, err := h.service.GetProductFiles(productID)
	if err != nil {
		log.Printf("Error getting files for product %d: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve files",
			"error":   err.Error(),
		})
	}
	return c.JSON(files)
}

// HandleGetProductFileByID retrieves a single file scoped to its product.
// Both the product id and the file id must match for a hit.
func (h *CatalogHandler) HandleGetProductFileByID(c *fiber.Ctx) error {
	productID, err := parseID(c, "productID")
	if err != nil {
		return notFound(c, "File")
	}
	pk, err := parseID(c, "pk")
	if err != nil {
		return notFound(c, "File")
	}

	file, err := h.service.GetProductFileByID(productID, pk)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, "File")
		}
		log.Printf("Error getting file %d for product %d: %v", pk, productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve file",
			"error":   err.Error(),
		})
	}
	return c.JSON(file)
}

// HandleGetProvinces retrieves the selectable provinces.
func (h *CatalogHandler) HandleGetProvinces(c *fiber.Ctx) error {
	provinces, err := h.service.GetProvinces()
	if err != nil {
		log.Printf("Error getting provinces: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve provinces",
			"error":   err.Error(),
		})
	}
	return c.JSON(provinces)
}

// parseID reads a positive integer route parameter. A non-numeric value is a
// miss, the same as an unknown primary key.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

func notFound(c *fiber.Ctx, entity string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": fmt.Sprintf("%s not found", entity),
	})
}
