package services_test

import (
	"testing"

	"shopadmin/internal/models"
	"shopadmin/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formGetter(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestParseProductForm(t *testing.T) {
	input, err := services.ParseProductForm(formGetter(map[string]string{
		"name":     "  Mug ",
		"price":    "450.50",
		"quantity": "7",
		"details":  "Ceramic",
		"color":    "#aabbcc",
	}))
	require.NoError(t, err)
	assert.Equal(t, "Mug", input.Name)
	assert.Equal(t, "450.5", input.Price.String())
	assert.Equal(t, 7, input.Quantity)
	assert.Equal(t, "Ceramic", input.Details)
	assert.Equal(t, "#aabbcc", input.Color)
	assert.NoError(t, input.Validate())
}

func TestParseProductForm_QuantityDefaultsToOne(t *testing.T) {
	for _, raw := range []string{"", "abc", "2.5"} {
		input, err := services.ParseProductForm(formGetter(map[string]string{"name": "Mug", "price": "1", "quantity": raw}))
		require.NoError(t, err)
		assert.Equal(t, 1, input.Quantity, "quantity %q", raw)
	}
}

func TestParseProductForm_DefaultColor(t *testing.T) {
	input, err := services.ParseProductForm(formGetter(map[string]string{"name": "Mug", "price": "1"}))
	require.NoError(t, err)
	assert.Equal(t, models.DefaultColor, input.Color)
}

func TestParseProductForm_InvalidPrice(t *testing.T) {
	_, err := services.ParseProductForm(formGetter(map[string]string{"name": "Mug", "price": "cheap"}))
	var vErr *services.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "Price")
	assert.Contains(t, err.Error(), "decimal")
}

func TestProductInput_Validate(t *testing.T) {
	input, err := services.ParseProductForm(formGetter(map[string]string{
		"name": "Mug", "price": "1", "quantity": "-3", "color": "blue",
	}))
	require.NoError(t, err)

	err = input.Validate()
	var vErr *services.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "Quantity")
	assert.Contains(t, vErr.Fields, "Color")
}

func TestProductInput_ValidatePriceScale(t *testing.T) {
	for raw, ok := range map[string]bool{"19.99": true, "19.990": true, "20": true, "19.999": false, "0.001": false} {
		input, err := services.ParseProductForm(formGetter(map[string]string{"name": "Mug", "price": raw}))
		require.NoError(t, err)

		err = input.Validate()
		if ok {
			assert.NoError(t, err, raw)
			continue
		}
		var vErr *services.ValidationError
		require.ErrorAs(t, err, &vErr, raw)
		assert.Contains(t, vErr.Fields["Price"], "decimal places")
	}
}
