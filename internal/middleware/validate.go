package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/abstravel/site/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const validatedKey = "validated"

// Validator is a struct that holds the validator instance
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that knows the mediaref tag and reports
// fields by their form or json name.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("mediaref", mediaRef)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return &Validator{validate: v}
}

func (v *Validator) Validate(s any) error {
	return v.validate.Struct(s)
}

// mediaRef accepts an absolute http(s) URL or a site-relative path. The
// target is not fetched.
func mediaRef(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return false
	}
	if strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "//") {
		return true
	}
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// FieldErrors maps each invalid field to the tag it failed.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}

// ValidateBody parses the request body into a fresh T, validates it and
// stores it for the handler.
func ValidateBody[T any](v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(T)
		if err := c.BodyParser(body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
				"msg":   err.Error(),
			})
		}

		if err := v.Validate(body); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Validation failed",
				"fields": FieldErrors(err),
			})
		}

		c.Locals(validatedKey, body)
		return c.Next()
	}
}

// Validated returns the body stored by ValidateBody.
func Validated[T any](c *fiber.Ctx) *T {
	body, _ := c.Locals(validatedKey).(*T)
	return body
}

// ErrorHandler answers JSON under /api and a plain page elsewhere.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	event := logger.Get().Error()
	if code < fiber.StatusInternalServerError {
		event = logger.Get().Warn()
	}
	event.
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	if wantsJSON(c) {
		return c.Status(code).JSON(fiber.Map{
			"error": http.StatusText(code),
		})
	}

	c.Status(code)
	if renderErr := c.Render("error", fiber.Map{
		"Status":  code,
		"Message": http.StatusText(code),
	}); renderErr != nil {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(http.StatusText(code))
	}
	return nil
}
