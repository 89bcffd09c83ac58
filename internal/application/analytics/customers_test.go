package analytics

import (
	"testing"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rated(s entity.Sale, rating int) entity.Sale {
	s.CustomerRating = &rating
	return s
}

func TestCustomerSummaries(t *testing.T) {
	base := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	sales := []entity.Sale{
		rated(sale("CU1", base, 100), 4),
		rated(sale("CU1", base.AddDate(0, 0, 3), 50), 5),
		sale("CU2", base.AddDate(0, 0, 1), 500),
		sale("CU9", base, 10),
	}
	profiles := []entity.User{
		{CustomerCode: "CU1", FullName: "Ghulam Nabi", Phone: "9906000001", CreatedAt: base.AddDate(-1, 0, 0)},
		{CustomerCode: "CU2", FullName: "Shabir Ahmad", Phone: "9906000002"},
	}

	got := CustomerSummaries(sales, profiles)

	require.Len(t, got, 3)
	assert.Equal(t, "CU2", got[0].CustomerID)
	assert.Equal(t, "Shabir Ahmad", got[0].FullName)
	assert.Equal(t, 0.0, got[0].AverageRating)

	assert.Equal(t, "CU1", got[1].CustomerID)
	assert.Equal(t, 2, got[1].TotalOrders)
	assert.Equal(t, 150.0, got[1].TotalSpent)
	assert.Equal(t, 4.5, got[1].AverageRating)
	assert.Equal(t, 2, got[1].TotalReviews)
	require.NotNil(t, got[1].LastOrderDate)
	assert.True(t, got[1].LastOrderDate.Equal(base.AddDate(0, 0, 3)))

	assert.Equal(t, "CU9", got[2].CustomerID)
	assert.Empty(t, got[2].FullName)
	assert.Nil(t, got[2].JoinedAt)
}

func TestBuildCustomerDetails(t *testing.T) {
	profile := &entity.User{CustomerCode: "CU1", FullName: "Ghulam Nabi"}
	sales := []entity.Sale{
		rated(sale("CU1", time.Now(), 100), 3),
		sale("CU1", time.Now(), 20),
	}

	d := BuildCustomerDetails(profile, sales)

	assert.Equal(t, 2, d.TotalOrders)
	assert.Equal(t, 120.0, d.TotalSpent)
	assert.Equal(t, 3.0, d.AverageRating)
	assert.Equal(t, 1, d.TotalReviews)

	empty := BuildCustomerDetails(profile, nil)
	assert.NotNil(t, empty.Purchases)
	assert.Equal(t, 0.0, empty.AverageRating)
}
