package command

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/catalog-service/internal/product/domain"
)

func TestFieldsIntAcceptsDecimalOnly(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    int
		wantErr bool
	}{
		{name: "json number", value: float64(12000), want: 12000},
		{name: "whole float", value: 4.0, want: 4},
		{name: "decimal string", value: "12000", want: 12000},
		{name: "padded string", value: " 42 ", want: 42},
		{name: "leading zero is decimal", value: "010", want: 10},
		{name: "negative string", value: "-3", want: -3},
		{name: "go int", value: 7, want: 7},
		{name: "json.Number", value: json.Number("15"), want: 15},
		{name: "fractional float", value: 4.9, wantErr: true},
		{name: "fractional string", value: "4.5", wantErr: true},
		{name: "hex string", value: "0x1F", wantErr: true},
		{name: "octal prefix", value: "0o17", wantErr: true},
		{name: "binary prefix", value: "0b101", wantErr: true},
		{name: "underscores", value: "1_000", wantErr: true},
		{name: "word", value: "lots", wantErr: true},
		{name: "bool", value: true, wantErr: true},
		{name: "missing", value: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fields{"price": tt.value}.Int("price")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsInvalidArgumentError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldsUintRejectsNegativeAndNonDecimal(t *testing.T) {
	tests := []struct {
		value   interface{}
		want    uint
		wantErr bool
	}{
		{value: "3", want: 3},
		{value: float64(8), want: 8},
		{value: "010", want: 10},
		{value: "-1", wantErr: true},
		{value: float64(-2), wantErr: true},
		{value: "0x10", wantErr: true},
		{value: 2.5, wantErr: true},
	}
	for _, tt := range tests {
		got, err := Fields{"product_id": tt.value}.Uint("product_id")
		if tt.wantErr {
			assert.True(t, domain.IsInvalidArgumentError(err), "value %v", tt.value)
			continue
		}
		require.NoError(t, err, "value %v", tt.value)
		assert.Equal(t, tt.want, got)
	}
}

func TestReviewRatingMustBeWhole(t *testing.T) {
	body := Fields{"user_id": 1, "product_id": 2, "order_item_id": 3, "content": "ok", "rating": 4.9}
	_, err := CreateReviewCommandFromFields(body)
	assert.True(t, domain.IsInvalidArgumentError(err))

	body["rating"] = "4"
	cmd, err := CreateReviewCommandFromFields(body)
	require.NoError(t, err)
	assert.Equal(t, 4, cmd.Rating)

	_, err = UpdateReviewCommandFromFields(1, Fields{"review_id": 3, "content": "c", "rating": 2.5})
	assert.True(t, domain.IsInvalidArgumentError(err))
}
