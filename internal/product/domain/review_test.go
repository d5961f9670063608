package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeAggregate(t *testing.T) {
	agg := ComputeAggregate([]Review{{Rating: 4}, {Rating: 5}, {Rating: 3}})
	assert.Equal(t, 3, agg.ReviewCount)
	assert.InDelta(t, 4.0, agg.AverageRating, 1e-9)

	reordered := ComputeAggregate([]Review{{Rating: 3}, {Rating: 4}, {Rating: 5}})
	assert.Equal(t, agg, reordered)

	assert.Equal(t, ReviewAggregate{}, ComputeAggregate(nil))
}

func TestNewReviewViewFormatsDate(t *testing.T) {
	r := &Review{ID: 1, ProductID: 2, OrderItemID: 3, Rating: 5, UserID: 4,
		CreatedAt: time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)}

	v := NewReviewView(r)
	assert.Equal(t, "2024.03.07", v.CreatedAt)
	assert.Equal(t, uint(3), v.OrderItemID)
	assert.Equal(t, "", FormatReviewDate(time.Time{}))
}
