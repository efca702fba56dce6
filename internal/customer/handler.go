package customer

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/Waleed-Nisar/EcommerceAppProject/internal/response"
)

type Handler struct {
	service   ServiceInterface
	jwtSecret []byte
}

func NewHandler(service ServiceInterface, jwtSecret string) *Handler {
	return &Handler{service: service, jwtSecret: []byte(jwtSecret)}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/sign-up", h.register)
	app.Post("/api/v1/sign-in", h.login)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/profile", h.getProfile)
	app.Put("/api/v1/profile", h.updateProfile)
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Phone           string `json:"phone"`
	ShippingAddress string `json:"shippingAddress"`
	City            string `json:"city"`
	PostalCode      string `json:"postalCode"`
	Country         string `json:"country"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail(err.Error()))
	}
	if payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail("email and password are required"))
	}

	created, err := h.service.Register(Customer{
		Email:           payload.Email,
		FirstName:       payload.FirstName,
		LastName:        payload.LastName,
		Phone:           payload.Phone,
		ShippingAddress: payload.ShippingAddress,
		City:            payload.City,
		PostalCode:      payload.PostalCode,
		Country:         payload.Country,
	}, payload.Password)
	if err != nil {
		if err == ErrEmailExists {
			return c.Status(fiber.StatusConflict).JSON(response.Fail("Email already exists"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(response.OK(created, "Registration successful"))
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail(err.Error()))
	}

	cust, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(response.Fail("Invalid email or password"))
	}

	claims := jwt.MapClaims{
		"user_id":  cust.UserID,
		"email":    cust.Email,
		"is_admin": cust.IsAdmin,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail("failed to generate token"))
	}

	return c.JSON(response.OK(fiber.Map{"customer": cust, "token": signed}, "Login successful"))
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(response.Fail("unauthorized"))
	}

	cust, err := h.service.GetByUserID(userID)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(response.Fail("Customer not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}

	return c.JSON(response.OK(cust, ""))
}

type profileUpdateRequest struct {
	FirstName       *string `json:"firstName,omitempty"`
	LastName        *string `json:"lastName,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	ShippingAddress *string `json:"shippingAddress,omitempty"`
	City            *string `json:"city,omitempty"`
	PostalCode      *string `json:"postalCode,omitempty"`
	Country         *string `json:"country,omitempty"`
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(response.Fail("unauthorized"))
	}

	existing, err := h.service.GetByUserID(userID)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(response.Fail("Customer not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}

	payload := new(profileUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Fail(err.Error()))
	}

	// partial update: only provided fields change
	if payload.FirstName != nil {
		existing.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		existing.LastName = *payload.LastName
	}
	if payload.Phone != nil {
		existing.Phone = *payload.Phone
	}
	if payload.ShippingAddress != nil {
		existing.ShippingAddress = *payload.ShippingAddress
	}
	if payload.City != nil {
		existing.City = *payload.City
	}
	if payload.PostalCode != nil {
		existing.PostalCode = *payload.PostalCode
	}
	if payload.Country != nil {
		existing.Country = *payload.Country
	}

	updated, err := h.service.UpdateProfile(existing.ID, existing)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(err.Error()))
	}
	return c.JSON(response.OK(updated, "Profile updated"))
}

// GetUserIDFromCtx extracts the user_id claim from the JWT token stored in
// `c.Locals("user")`. Several packages need this, so it lives here.
func GetUserIDFromCtx(c *fiber.Ctx) (string, error) {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return "", err
	}
	raw, ok := claims["user_id"]
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	id, ok := raw.(string)
	if !ok || id == "" {
		return "", fiber.ErrUnauthorized
	}
	return id, nil
}

// IsAdminFromCtx reports whether the authenticated caller carries the admin
// claim. Missing or malformed claims are treated as non-admin.
func IsAdminFromCtx(c *fiber.Ctx) bool {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return false
	}
	isAdmin, ok := claims["is_admin"].(bool)
	return ok && isAdmin
}

func claimsFromCtx(c *fiber.Ctx) (jwt.MapClaims, error) {
	u := c.Locals("user")
	if u == nil {
		return nil, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}
