package handlers

import (
	"log"

	"montra/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FavoriteHandler handles HTTP requests for favourites. All routes require
// authentication.
type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// RegisterRoutes registers the favourite routes with the Fiber app.
func (h *FavoriteHandler) RegisterRoutes(router fiber.Router) {
	favoriteRoutes := router.Group("/favorites")
	favoriteRoutes.Get("/", h.HandleListFavorites)
	favoriteRoutes.Post("/:businessId", h.HandleAddFavorite)
	favoriteRoutes.Delete("/:businessId", h.HandleRemoveFavorite)
	favoriteRoutes.Get("/check/:businessId", h.HandleCheckFavorite)
}

// HandleListFavorites returns the caller's favourites with the live
// business record attached.
func (h *FavoriteHandler) HandleListFavorites(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	favorites, err := h.favoriteService.ListFavorites(userID)
	if err != nil {
		log.Printf("Error listing favourites for user %s: %v", userID, err)
		return errorResponse(c, "Could not retrieve favourites", err)
	}
	return c.JSON(fiber.Map{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// HandleAddFavorite marks a business as favourite for the caller.
func (h *FavoriteHandler) HandleAddFavorite(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	businessID := c.Params("businessId")

	favorite, err := h.favoriteService.AddFavorite(userID, businessID)
	if err != nil {
		log.Printf("Error adding favourite for user %s, business %s: %v", userID, businessID, err)
		return errorResponse(c, "Could not add favourite", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Business added to favourites",
		"favorite": favorite,
	})
}

// HandleRemoveFavorite removes a business from the caller's favourites.
func (h *FavoriteHandler) HandleRemoveFavorite(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	businessID := c.Params("businessId")

	if err := h.favoriteService.RemoveFavorite(userID, businessID); err != nil {
		log.Printf("Error removing favourite for user %s, business %s: %v", userID, businessID, err)
		return errorResponse(c, "Could not remove favourite", err)
	}

	return c.JSON(fiber.Map{"message": "Business removed from favourites"})
}

// HandleCheckFavorite reports whether a business is in the caller's
// favourites.
func (h *FavoriteHandler) HandleCheckFavorite(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	businessID := c.Params("businessId")

	isFavorite, favoriteID, err := h.favoriteService.IsFavorite(userID, businessID)
	if err != nil {
		log.Printf("Error checking favourite for user %s, business %s: %v", userID, businessID, err)
		return errorResponse(c, "Could not check favourite status", err)
	}

	body := fiber.Map{"is_favorite": isFavorite}
	if isFavorite {
		body["favorite_id"] = favoriteID
	}
	return c.JSON(body)
}
