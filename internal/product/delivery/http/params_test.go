package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/catalog-service/internal/product/domain"
)

func TestPathIDIsDecimal(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint
		wantErr bool
	}{
		{raw: "8", want: 8},
		{raw: "010", want: 10},
		{raw: "0", wantErr: true},
		{raw: "0x1F", wantErr: true},
		{raw: "-4", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tt := range tests {
		r := mux.SetURLVars(httptest.NewRequest("GET", "/", nil), map[string]string{"productId": tt.raw})
		got, err := pathID(r, "productId")
		if tt.wantErr {
			assert.True(t, domain.IsInvalidArgumentError(err), "raw %q", tt.raw)
			continue
		}
		require.NoError(t, err, "raw %q", tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestQueryNumbersAreDecimal(t *testing.T) {
	r := httptest.NewRequest("GET", "/?minPrice=010&maxPrice=0x1F&categoryId=07&productIds=1,010,3", nil)

	minPrice, err := optionalInt(r, "minPrice")
	require.NoError(t, err)
	assert.Equal(t, 10, *minPrice)

	_, err = optionalInt(r, "maxPrice")
	assert.True(t, domain.IsInvalidArgumentError(err))

	categoryID, err := optionalUint(r, "categoryId")
	require.NoError(t, err)
	assert.Equal(t, uint(7), *categoryID)

	ids, err := idList(r, "productIds")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 10, 3}, ids)

	missing, err := optionalInt(r, "absent")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRequesterFromQueryIgnoresNonDecimalIDs(t *testing.T) {
	assert.Equal(t, uint(0), requesterFromQuery(httptest.NewRequest("GET", "/?userId=0x10", nil)).ID)
	assert.Equal(t, uint(10), requesterFromQuery(httptest.NewRequest("GET", "/?userId=010", nil)).ID)
}
