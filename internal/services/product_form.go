package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"shopadmin/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// maxPriceDecimals matches the scale of the price column.
const maxPriceDecimals = 2

// ProductInput carries the text fields of a product form.
type ProductInput struct {
	Name     string `validate:"required,max=200"`
	Price    decimal.Decimal
	Quantity int    `validate:"gte=0"`
	Details  string `validate:"max=5000"`
	Color    string `validate:"omitempty,hexcolor"`
}

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, e.Fields[name])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ParseProductForm reads product fields through get, which returns the
// submitted value of a form field or "" when it is absent. Quantity falls
// back to 1 when absent or not an integer.
func ParseProductForm(get func(key string) string) (ProductInput, error) {
	input := ProductInput{
		Name:     strings.TrimSpace(get("name")),
		Quantity: 1,
		Details:  get("details"),
		Color:    strings.TrimSpace(get("color")),
	}

	rawPrice := strings.TrimSpace(get("price"))
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return input, &ValidationError{Fields: map[string]string{
			"Price": fmt.Sprintf("Field 'Price' must be a decimal number, got %q", rawPrice),
		}}
	}
	input.Price = price

	if q, err := strconv.Atoi(strings.TrimSpace(get("quantity"))); err == nil {
		input.Quantity = q
	}
	if input.Color == "" {
		input.Color = models.DefaultColor
	}
	return input, nil
}

// Validate checks the input against its tags, the price sign and the price
// scale.
func (in ProductInput) Validate() error {
	fields := map[string]string{}
	if err := validate.Struct(in); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, e := range validationErrors {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	if in.Price.IsNegative() {
		fields["Price"] = "Field 'Price' must not be negative"
	} else if !in.Price.Equal(in.Price.Round(maxPriceDecimals)) {
		fields["Price"] = fmt.Sprintf("Field 'Price' takes at most %d decimal places", maxPriceDecimals)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
