package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	register := func(tag string, rule func(string) error) {
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String()) == nil
		})
	}
	register("username", ValidateUsername)
	register("password", ValidatePassword)
	register("email_format", ValidateEmail)
	register("slug", ValidateSlug)
	register("pubdate", func(s string) error {
		if s == "" {
			return nil
		}
		_, err := ParsePubDate(s)
		return err
	})
	return v
}

// PostForm is the create/edit payload for a post.
type PostForm struct {
	Title       string `json:"title" form:"title" validate:"required,max=256"`
	Text        string `json:"text" form:"text" validate:"required"`
	PubDate     string `json:"pub_date" form:"pub_date" validate:"pubdate"`
	IsPublished *bool  `json:"is_published" form:"is_published"`
	CategoryID  *uint  `json:"category_id" form:"category_id"`
	LocationID  *uint  `json:"location_id" form:"location_id"`
}

// CommentForm is the create/edit payload for a comment.
type CommentForm struct {
	Text string `json:"text" form:"text" validate:"required,max=10000"`
}

// ProfileForm holds the self-service identity fields.
type ProfileForm struct {
	Username  string `json:"username" form:"username" validate:"required,username"`
	FirstName string `json:"first_name" form:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" form:"last_name" validate:"max=150"`
	Email     string `json:"email" form:"email" validate:"required,email_format"`
}

// SignupForm registers a new identity.
type SignupForm struct {
	Username  string `json:"username" form:"username" validate:"required,username"`
	Email     string `json:"email" form:"email" validate:"required,email_format"`
	Password  string `json:"password" form:"password" validate:"required,password"`
	FirstName string `json:"first_name" form:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" form:"last_name" validate:"max=150"`
}

// LoginForm authenticates by username and password.
type LoginForm struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// CategoryForm is the admin payload for a category.
type CategoryForm struct {
	Title       string `json:"title" form:"title" validate:"required,max=256"`
	Description string `json:"description" form:"description" validate:"required"`
	Slug        string `json:"slug" form:"slug" validate:"required,slug"`
	IsPublished *bool  `json:"is_published" form:"is_published"`
}

// LocationForm is the admin payload for a location.
type LocationForm struct {
	Name        string `json:"name" form:"name" validate:"required,max=256"`
	IsPublished *bool  `json:"is_published" form:"is_published"`
}

// ModerationForm toggles a record's visibility flag.
type ModerationForm struct {
	IsPublished *bool `json:"is_published" form:"is_published" validate:"required"`
}

// Struct validates form and returns field-level messages keyed by the JSON
// field name, or nil when the form is valid.
func Struct(form interface{}) map[string]string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_form": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = message(fe)
	}
	return fields
}

func message(fe validator.FieldError) string {
	value, _ := fe.Value().(string)
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "username":
		return capitalize(ValidateUsername(value))
	case "password":
		return capitalize(ValidatePassword(value))
	case "email_format":
		return capitalize(ValidateEmail(value))
	case "slug":
		return capitalize(ValidateSlug(value))
	case "pubdate":
		return "Enter a valid date/time."
	default:
		return fmt.Sprintf("Failed the %q check.", fe.Tag())
	}
}

func capitalize(err error) string {
	if err == nil {
		return "Invalid value."
	}
	msg := err.Error()
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

var pubDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParsePubDate accepts RFC 3339 and the datetime-local formats browsers
// submit. Values without a zone are taken as UTC.
func ParsePubDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date/time %q", s)
}
