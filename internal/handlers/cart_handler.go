package handlers

import (
	"fmt"
	"log"

	"marketplace/internal/middleware"
	"marketplace/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for carts.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/carts")
	cartRoutes.Get("/:userId", h.HandleGetCart)
	cartRoutes.Post("/:userId/items", h.HandleAddItem)
	cartRoutes.Delete("/:userId/items/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/:userId", h.HandleClearCart)
}

// HandleGetCart returns the user's cart, creating it on first access.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	caller := middleware.CallerFromContext(c)
	userID := c.Params("userId")

	cart, err := h.service.GetCartByUser(caller, userID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// AddItemRequest represents the request body for adding a cart item.
// Quantity is range-checked by the service so zero and negative values
// share one stable error code.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"`
}

// HandleAddItem adds a product to the user's cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	caller := middleware.CallerFromContext(c)
	userID := c.Params("userId")

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	cart, err := h.service.AddToCart(caller, userID, req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding product %s to cart of user %s: %v", req.ProductID, userID, err)
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// HandleRemoveItem removes one product line from the user's cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	caller := middleware.CallerFromContext(c)
	userID := c.Params("userId")
	productID := c.Params("productId")

	cart, err := h.service.RemoveFromCart(caller, userID, productID)
	if err != nil {
		log.Printf("Error removing product %s from cart of user %s: %v", productID, userID, err)
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// HandleClearCart removes every line from the user's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	caller := middleware.CallerFromContext(c)
	userID := c.Params("userId")

	cart, err := h.service.ClearCart(caller, userID)
	if err != nil {
		log.Printf("Error clearing cart of user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.JSON(cart)
}
