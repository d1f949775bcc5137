package handlers

import (
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"

	"montra/internal/models"
	"montra/internal/repositories"
	"montra/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var postalCodePattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{3}$`)

// BusinessHandler handles HTTP requests for businesses.
type BusinessHandler struct {
	businessService *services.BusinessService
	authService     *services.AuthService
	validate        *validator.Validate
}

// NewBusinessHandler creates a new BusinessHandler.
func NewBusinessHandler(businessService *services.BusinessService, authService *services.AuthService) *BusinessHandler {
	validate := validator.New()
	_ = validate.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
		return postalCodePattern.MatchString(fl.Field().String())
	})
	return &BusinessHandler{
		businessService: businessService,
		authService:     authService,
		validate:        validate,
	}
}

// RegisterPublicRoutes registers the routes that need no authentication.
func (h *BusinessHandler) RegisterPublicRoutes(router fiber.Router) {
	businessRoutes := router.Group("/businesses")
	businessRoutes.Get("/", h.HandleListBusinesses)
	businessRoutes.Get("/:id", h.HandleGetBusiness)
}

// RegisterRoutes registers the business routes that require authentication.
func (h *BusinessHandler) RegisterRoutes(router fiber.Router) {
	businessRoutes := router.Group("/businesses")
	businessRoutes.Post("/", h.HandleCreateBusiness)
	businessRoutes.Get("/mine/all", h.HandleListMyBusinesses)
	businessRoutes.Put("/:id", h.HandleUpdateBusiness)
	businessRoutes.Delete("/:id", h.HandleDeleteBusiness)
	businessRoutes.Post("/:id/photos", h.HandleUploadPhoto)
}

// HandleListBusinesses returns active businesses with optional category and
// street filters. Contact fields are concealed and only the first photo is
// included; this listing is public.
func (h *BusinessHandler) HandleListBusinesses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := repositories.BusinessFilter{
		Category: c.Query("category"),
		Street:   c.Query("street"),
		Offset:   (page - 1) * limit,
		Limit:    limit,
	}

	businesses, err := h.businessService.ListBusinesses(filter)
	if err != nil {
		log.Printf("Error listing businesses: %v", err)
		return errorResponse(c, "Could not retrieve businesses", err)
	}

	public := make([]models.PublicView, 0, len(businesses))
	for i := range businesses {
		public = append(public, businesses[i].Public())
	}

	return c.JSON(fiber.Map{
		"businesses": public,
		"page":       page,
		"limit":      limit,
	})
}

// HandleGetBusiness returns a single active business. Authenticated callers
// get the full record; everyone else gets the concealed view. An invalid
// token falls back to the concealed view instead of failing.
func (h *BusinessHandler) HandleGetBusiness(c *fiber.Ctx) error {
	business, err := h.businessService.GetBusiness(c.Params("id"))
	if err != nil {
		log.Printf("Error getting business %s: %v", c.Params("id"), err)
		return errorResponse(c, "Business not found", err)
	}

	if token := bearerToken(c); token != "" {
		if _, err := h.authService.ValidateToken(token); err == nil {
			return c.JSON(fiber.Map{"business": business})
		}
	}

	return c.JSON(fiber.Map{"business": business.Public()})
}

// HandleCreateBusiness registers a new business owned by the caller.
func (h *BusinessHandler) HandleCreateBusiness(c *fiber.Ctx) error {
	var business models.Business
	if err := c.BodyParser(&business); err != nil {
		log.Printf("Error parsing business request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if errorMessages := h.validateBusiness(&business); errorMessages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	ownerID, _ := c.Locals("user_id").(string)
	if err := h.businessService.CreateBusiness(ownerID, &business); err != nil {
		log.Printf("Error creating business: %v", err)
		return errorResponse(c, "Could not create business", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Business created successfully",
		"business": business,
	})
}

// HandleListMyBusinesses returns all businesses registered by the caller.
func (h *BusinessHandler) HandleListMyBusinesses(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("user_id").(string)
	businesses, err := h.businessService.ListMyBusinesses(ownerID)
	if err != nil {
		log.Printf("Error listing businesses for owner %s: %v", ownerID, err)
		return errorResponse(c, "Could not retrieve your businesses", err)
	}
	return c.JSON(fiber.Map{"businesses": businesses})
}

// HandleUpdateBusiness replaces the editable fields of a business owned by
// the caller.
func (h *BusinessHandler) HandleUpdateBusiness(c *fiber.Ctx) error {
	var business models.Business
	if err := c.BodyParser(&business); err != nil {
		log.Printf("Error parsing business update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if errorMessages := h.validateBusiness(&business); errorMessages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	callerID, _ := c.Locals("user_id").(string)
	updated, err := h.businessService.UpdateBusiness(callerID, c.Params("id"), &business)
	if err != nil {
		log.Printf("Error updating business %s: %v", c.Params("id"), err)
		return errorResponse(c, "Could not update business", err)
	}

	return c.JSON(fiber.Map{
		"message":  "Business updated successfully",
		"business": updated,
	})
}

// HandleDeleteBusiness soft-deletes a business owned by the caller and
// cascades favourite removal.
func (h *BusinessHandler) HandleDeleteBusiness(c *fiber.Ctx) error {
	callerID, _ := c.Locals("user_id").(string)
	if err := h.businessService.DeleteBusiness(callerID, c.Params("id")); err != nil {
		log.Printf("Error deleting business %s: %v", c.Params("id"), err)
		return errorResponse(c, "Could not delete business", err)
	}
	return c.JSON(fiber.Map{"message": "Business deleted successfully"})
}

// HandleUploadPhoto stores an original photo for a business owned by the
// caller and queues it for derivative processing.
func (h *BusinessHandler) HandleUploadPhoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A 'photo' file field is required",
			"error":   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read uploaded file",
			"error":   err.Error(),
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading uploaded file: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read uploaded file",
			"error":   err.Error(),
		})
	}

	callerID, _ := c.Locals("user_id").(string)
	blobName, err := h.businessService.AttachPhoto(
		c.UserContext(), callerID, c.Params("id"),
		fileHeader.Filename, data, fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		log.Printf("Error attaching photo to business %s: %v", c.Params("id"), err)
		return errorResponse(c, "Could not upload photo", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Photo uploaded successfully",
		"blob_name": blobName,
	})
}

// validateBusiness runs struct validation, returning per-field messages or
// nil when the business is valid.
func (h *BusinessHandler) validateBusiness(business *models.Business) map[string]string {
	err := h.validate.Struct(business)
	if err == nil {
		return nil
	}
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errorMessages
}

// bearerToken extracts the token from an Authorization header, or returns
// the empty string.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	const prefix = "Bearer "
	if len(authHeader) > len(prefix) && authHeader[:len(prefix)] == prefix {
		return authHeader[len(prefix):]
	}
	return ""
}
