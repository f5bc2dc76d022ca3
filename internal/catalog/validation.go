package catalog

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// ValidationError describes the first rule a product input failed.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return perrors.ErrValidation
}

// messages maps a field and the rule it failed on to a user facing message.
var messages = map[string]string{
	"Title.notblank":        "Product title cannot be empty or whitespace.",
	"Price.gt":              "Product price must be greater than zero.",
	"Price.lte":             fmt.Sprintf("Product price cannot exceed %s.", MaxPrice),
	"Category.notblank":     "Product category name cannot be empty.",
	"Manufacturer.notblank": "Product manufacturer name cannot be empty.",
}

// Validator checks product input against the catalog rules.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the catalog specific rules registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	return &Validator{validate: v}
}

// decimalValue exposes a decimal to the numeric rules of the validator.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		if f == 0 && d.IsPositive() {
			// positive values below the float range must not compare as zero
			return math.SmallestNonzeroFloat64
		}
		return f
	}
	return nil
}

// Validate returns a *ValidationError for the first failing field, in declaration order.
func (v *Validator) Validate(in ProductInput) error {
	err := v.validate.Struct(in)
	if err == nil {
		// the float conversion may round a price just above the limit down to it
		if in.Price.GreaterThan(MaxPrice) {
			return newValidationError("Price", "lte")
		}
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fmt.Errorf("failed to validate product: %w", err)
	}
	first := validationErrors[0]
	return newValidationError(first.Field(), first.Tag())
}

func newValidationError(field, rule string) *ValidationError {
	msg, ok := messages[field+"."+rule]
	if !ok {
		msg = fmt.Sprintf("Product %s failed on rule: %s", strings.ToLower(field), rule)
	}
	return &ValidationError{Field: field, Rule: rule, Message: msg}
}

// ParsePrice parses a user entered price with a dot as decimal separator.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("price is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return d, nil
}

// IsValidPrice reports whether the price is above zero and within MaxPrice.
func IsValidPrice(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThanOrEqual(MaxPrice)
}

// IsBlank reports whether the string is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
