package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductInput_Validate(t *testing.T) {
	valid := ProductInput{Name: "Margherita", Price: decimal.RequireFromString("12.50"), Category: "pizza"}

	tests := []struct {
		name      string
		mutate    func(*ProductInput)
		wantField string
	}{
		{name: "valid", mutate: func(*ProductInput) {}},
		{name: "empty name", mutate: func(in *ProductInput) { in.Name = "   " }, wantField: "name"},
		{name: "zero price", mutate: func(in *ProductInput) { in.Price = decimal.Zero }, wantField: "price"},
		{name: "negative price", mutate: func(in *ProductInput) { in.Price = decimal.NewFromInt(-1) }, wantField: "price"},
		{name: "empty category", mutate: func(in *ProductInput) { in.Category = "" }, wantField: "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestProductInput_Normalize(t *testing.T) {
	in := ProductInput{Name: "  Tiramisu ", Category: " dessert "}.Normalize()
	assert.Equal(t, "Tiramisu", in.Name)
	assert.Equal(t, "dessert", in.Category)
}
