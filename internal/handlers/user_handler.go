package handlers

import (
	"fmt"
	"log"

	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles and addresses.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/:userId", h.HandleGetUser)
	userRoutes.Put("/:userId/address", h.HandleSetAddress)
}

// HandleGetUser retrieves a user profile with its shipping address.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	caller := middleware.CallerFromContext(c)
	userID := c.Params("userId")

	user, err := h.service.GetUserByID(caller, userID)
	if err != nil {
		log.Printf("Error getting user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.JSON(user)
}

// SetAddressRequest represents the request body for saving a shipping
// address.
type SetAddressRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	Phone         string  `json:"phone" validate:"required,max=20"`
	AddressDetail string  `json:"address_detail" validate:"omitempty,max=255"`
	WardCode      *string `json:"ward_code" validate:"omitempty,max=20"`
}

// HandleSetAddress saves the user's shipping address.
func (h *UserHandler) HandleSetAddress(c *fiber.Ctx) error {
	caller := middleware.CallerFromContext(c)
	userID := c.Params("userId")

	var req SetAddressRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing set address request body: %v", err)
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

	address := models.AddressBook{
		Name:          req.Name,
		Phone:         req.Phone,
		AddressDetail: req.AddressDetail,
		WardCode:      req.WardCode,
	}
	if err := h.service.SetShippingAddress(caller, userID, &address); err != nil {
		log.Printf("Error setting address for user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Address saved successfully",
		"address": address,
	})
}
