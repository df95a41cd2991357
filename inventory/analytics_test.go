package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcare/vet-scheduler/models"
)

var analyticsNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func medicine(id uint, name string, qty, minStock int, price float64, expiry time.Time) models.Medicine {
	m := models.Medicine{
		Name:          name,
		Category:      "Antibiotic",
		Quantity:      qty,
		Unit:          "tablet",
		Price:         price,
		ExpiryDate:    expiry,
		MinStockLevel: minStock,
	}
	m.ID = id
	return m
}

func sale(medicineID uint, qty int) models.StockTransaction {
	return models.StockTransaction{
		MedicineID: medicineID,
		Type:       models.TransactionSale,
		Quantity:   qty,
		Date:       analyticsNow,
	}
}

func TestRankSellers(t *testing.T) {
	medicines := []models.Medicine{
		medicine(1, "Amoxicillin", 100, 10, 2.5, analyticsNow.AddDate(1, 0, 0)),
		medicine(2, "Metacam", 50, 5, 10, analyticsNow.AddDate(1, 0, 0)),
		medicine(3, "Frontline", 30, 5, 15, analyticsNow.AddDate(1, 0, 0)),
	}
	txns := []models.StockTransaction{
		sale(1, 5),
		sale(2, 20),
		sale(2, 10),
		{MedicineID: 3, Type: models.TransactionPurchase, Quantity: 100, Date: analyticsNow},
	}

	entries := RankSellers(medicines, txns)
	require.Len(t, entries, 3)
	assert.Equal(t, uint(2), entries[0].MedicineID)
	assert.Equal(t, 30, entries[0].UnitsSold)
	assert.Equal(t, 300.0, entries[0].Revenue)
	assert.Equal(t, uint(1), entries[1].MedicineID)
	// Purchases never count as sales.
	assert.Equal(t, 0, entries[2].UnitsSold)
}

func TestSalesAnalytics(t *testing.T) {
	medicines := []models.Medicine{
		medicine(1, "Amoxicillin", 100, 10, 2.0, analyticsNow.AddDate(1, 0, 0)),
	}
	txns := []models.StockTransaction{sale(1, 10), sale(1, 20)}

	report := SalesAnalytics(medicines, txns, 30)
	assert.Equal(t, 2, report.TotalSales)
	assert.Equal(t, 30, report.UnitsSold)
	assert.Equal(t, 60.0, report.TotalRevenue)
	assert.Equal(t, 1.0, report.DailyAverage)
}

func TestExpiryAnalytics(t *testing.T) {
	medicines := []models.Medicine{
		medicine(1, "Expired", 10, 5, 2, analyticsNow.AddDate(0, 0, -1)),
		medicine(2, "Soon", 10, 5, 3, analyticsNow.AddDate(0, 0, 10)),
		medicine(3, "Fine", 10, 5, 4, analyticsNow.AddDate(1, 0, 0)),
	}

	report := ExpiryAnalytics(medicines, analyticsNow)
	assert.Equal(t, 1, report.ExpiredCount)
	assert.Equal(t, 20.0, report.ExpiredValue)
	assert.Equal(t, 1, report.ExpiringCount)
	assert.Equal(t, 30.0, report.ExpiringValue)
}

func TestStockAnalytics(t *testing.T) {
	medicines := []models.Medicine{
		medicine(1, "Amoxicillin", 100, 10, 2, analyticsNow.AddDate(1, 0, 0)),
		medicine(2, "Metacam", 3, 5, 10, analyticsNow.AddDate(1, 0, 0)),
		medicine(3, "Frontline", 0, 5, 15, analyticsNow.AddDate(1, 0, 0)),
	}

	report := StockAnalytics(medicines, analyticsNow)
	assert.Equal(t, 3, report.TotalMedicines)
	assert.Equal(t, 103, report.TotalUnits)
	assert.Equal(t, 230.0, report.TotalValue)
	assert.Equal(t, 1, report.LowStockCount)
	assert.Equal(t, 1, report.OutOfStock)
	assert.Equal(t, 3, report.ByCategory["Antibiotic"])
}

func TestMedicineIsExpired(t *testing.T) {
	m := medicine(1, "Amoxicillin", 10, 5, 2, analyticsNow.AddDate(0, 0, -1))
	assert.True(t, m.IsExpired(analyticsNow))
	assert.False(t, medicine(2, "Fresh", 10, 5, 2, analyticsNow.AddDate(0, 0, 1)).IsExpired(analyticsNow))
}
