package handlers

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"time"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	// usernameRe: starts with a letter, then letters, digits, dots or
	// underscores.
	usernameRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.]+$`)
	// phoneRe matches Iranian mobile numbers in international form.
	phoneRe = regexp.MustCompile(`^989[0-39]\d{8}$`)
)

// AuthHandler handles HTTP requests for registration and token issuance.
type AuthHandler struct {
	accountService *services.AccountService
	authService    *services.AuthService
	validate       *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accountService *services.AccountService, authService *services.AuthService) *AuthHandler {
	validate := validator.New()
	_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("irphone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})

	return &AuthHandler{
		accountService: accountService,
		authService:    authService,
		validate:       validate,
	}
}

// RegisterRoutes registers the public authentication routes with the Fiber
// app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.HandleRegister)
	router.Post("/get-token", h.HandleGetToken)
}

// RegisterProtectedRoutes registers the routes that need a valid token. The
// router is expected to be a /users group carrying the auth middleware, so
// paths outside it still fall through to a plain 404.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/me", h.HandleMe)
	router.Put("/me/profile", h.HandleUpdateProfile)
}

// RegisterRequest represents the request body for registration. Every
// identity field is optional, but at least one of username, email and phone
// number must be present.
type RegisterRequest struct {
	Username    string `json:"username" validate:"omitempty,max=30,username"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,irphone"`
	Password    string `json:"password" validate:"omitempty,min=6"`
	FirstName   string `json:"first_name" validate:"omitempty,max=30"`
	LastName    string `json:"last_name" validate:"omitempty,max=30"`
}

// HandleRegister handles new account registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	var phone *int64
	if req.PhoneNumber != "" {
		n, err := strconv.ParseInt(req.PhoneNumber, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid phone number",
			})
		}
		phone = &n
	}

	user, err := h.accountService.CreateUser(req.Username, phone, req.Email, req.Password, services.CreateUserOptions{
		NoPassword: req.Password == "",
		FirstName:  req.FirstName,
		LastName:   req.LastName,
	})
	if err != nil {
		log.Printf("Error registering user: %v", err)
		switch {
		case errors.Is(err, services.ErrNoIdentitySource):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Registration failed",
				"error":   err.Error(),
			})
		case errors.Is(err, services.ErrUsernameTaken),
			errors.Is(err, services.ErrEmailTaken),
			errors.Is(err, services.ErrPhoneTaken),
			errors.Is(err, services.ErrUsernameSpaceExhausted):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Registration failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// DeviceRequest is the optional client-device block of a token request.
type DeviceRequest struct {
	DeviceUUID  string `json:"device_uuid" validate:"omitempty,uuid"`
	DeviceType  int    `json:"device_type" validate:"omitempty,min=1,max=3"`
	DeviceOS    string `json:"device_os" validate:"omitempty,max=20"`
	DeviceModel string `json:"device_model" validate:"omitempty,max=50"`
	AppVersion  string `json:"app_version" validate:"omitempty,max=20"`
}

// GetTokenRequest represents the request body for token issuance. Either the
// username or the phone number identifies the account.
type GetTokenRequest struct {
	Username    string         `json:"username" validate:"omitempty,max=30"`
	PhoneNumber string         `json:"phone_number" validate:"omitempty,irphone"`
	Password    string         `json:"password" validate:"required"`
	Device      *DeviceRequest `json:"device" validate:"omitempty"`
}

// HandleGetToken authenticates an account and issues a JWT token.
func (h *AuthHandler) HandleGetToken(c *fiber.Ctx) error {
	var req GetTokenRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing token request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.PhoneNumber
	}
	if identifier == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A username or phone number is required",
		})
	}

	var device *services.DeviceInfo
	if req.Device != nil && req.Device.DeviceUUID != "" {
		id, err := uuid.Parse(req.Device.DeviceUUID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid device UUID",
			})
		}
		device = &services.DeviceInfo{
			DeviceUUID:  id,
			DeviceType:  models.DeviceType(req.Device.DeviceType),
			DeviceOS:    req.Device.DeviceOS,
			DeviceModel: req.Device.DeviceModel,
			AppVersion:  req.Device.AppVersion,
		}
	}

	token, err := h.authService.Login(identifier, req.Password, device)
	if err != nil {
		log.Printf("Error during login for %s: %v", identifier, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// currentUserID extracts the account id the auth middleware stored in the
// request context. JWT numeric claims decode as float64.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	rawID, ok := c.Locals("user_id").(float64)
	if !ok {
		return 0, false
	}
	return uint(rawID), true
}

// HandleMe returns the authenticated account and its profile. The user id
// comes from the JWT claims stored by the auth middleware.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid token claims",
		})
	}

	user, err := h.accountService.GetByID(userID)
	if err != nil {
		log.Printf("Error loading account %d: %v", userID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Account not found",
		})
	}

	profile, err := h.accountService.GetProfile(userID)
	if err != nil {
		log.Printf("Error loading profile for account %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve profile",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"profile": profile,
	})
}

// UpdateProfileRequest carries the editable profile fields. Absent fields are
// left untouched.
type UpdateProfileRequest struct {
	NickName   *string    `json:"nick_name" validate:"omitempty,max=150"`
	Avatar     *string    `json:"avatar" validate:"omitempty,max=255"`
	Birthday   *time.Time `json:"birthday"`
	Gender     *bool      `json:"gender"`
	ProvinceID *uint      `json:"province_id"`
}

// HandleUpdateProfile applies partial changes to the authenticated account's
// profile.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid token claims",
		})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	profile, err := h.accountService.UpdateProfile(userID, services.ProfileUpdate{
		NickName:   req.NickName,
		Avatar:     req.Avatar,
		Birthday:   req.Birthday,
		Gender:     req.Gender,
		ProvinceID: req.ProvinceID,
	})
	if err != nil {
		log.Printf("Error updating profile for account %d: %v", userID, err)
		switch {
		case errors.Is(err, services.ErrProvinceNotSelectable):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Profile update failed",
				"error":   err.Error(),
			})
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Profile not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update profile",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

// validationErrorResponse turns validator errors into the per-field 400
// payload shared by both endpoints.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
