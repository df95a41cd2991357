package inventory

import (
	"sort"
	"strings"
	"time"

	"github.com/pawcare/vet-scheduler/models"
)

// The analytics in this file are pure functions over loaded rows so they can
// be exercised without a database.

func lower(s string) string { return strings.ToLower(s) }

// SellerEntry is one medicine's sales volume over a reporting window.
type SellerEntry struct {
	MedicineID uint    `json:"medicine_id"`
	Name       string  `json:"name"`
	UnitsSold  int     `json:"units_sold"`
	Revenue    float64 `json:"revenue"`
}

// RankSellers aggregates sale transactions per medicine, descending by
// units sold. Medicines with no sales appear with zero volume.
func RankSellers(medicines []models.Medicine, txns []models.StockTransaction) []SellerEntry {
	byID := make(map[uint]models.Medicine, len(medicines))
	for _, m := range medicines {
		byID[m.ID] = m
	}
	sold := make(map[uint]int)
	for _, txn := range txns {
		if txn.Type == models.TransactionSale {
			sold[txn.MedicineID] += txn.Quantity
		}
	}

	entries := make([]SellerEntry, 0, len(medicines))
	for _, m := range medicines {
		units := sold[m.ID]
		entries = append(entries, SellerEntry{
			MedicineID: m.ID,
			Name:       m.Name,
			UnitsSold:  units,
			Revenue:    float64(units) * m.Price,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].UnitsSold > entries[j].UnitsSold })
	return entries
}

// SalesReport summarises sale transactions over a window.
type SalesReport struct {
	WindowDays   int     `json:"window_days"`
	TotalSales   int     `json:"total_sales"`
	UnitsSold    int     `json:"units_sold"`
	TotalRevenue float64 `json:"total_revenue"`
	DailyAverage float64 `json:"daily_average_units"`
}

func SalesAnalytics(medicines []models.Medicine, txns []models.StockTransaction, days int) SalesReport {
	priceByID := make(map[uint]float64, len(medicines))
	for _, m := range medicines {
		priceByID[m.ID] = m.Price
	}
	report := SalesReport{WindowDays: days}
	for _, txn := range txns {
		if txn.Type != models.TransactionSale {
			continue
		}
		report.TotalSales++
		report.UnitsSold += txn.Quantity
		report.TotalRevenue += float64(txn.Quantity) * priceByID[txn.MedicineID]
	}
	if days > 0 {
		report.DailyAverage = float64(report.UnitsSold) / float64(days)
	}
	return report
}

// ExpiryReport partitions stock value by expiry horizon.
type ExpiryReport struct {
	ExpiredCount  int     `json:"expired_count"`
	ExpiredValue  float64 `json:"expired_value"`
	ExpiringCount int     `json:"expiring_soon_count"` // within 30 days
	ExpiringValue float64 `json:"expiring_soon_value"`
}

func ExpiryAnalytics(medicines []models.Medicine, now time.Time) ExpiryReport {
	cutoff := now.AddDate(0, 0, 30)
	var report ExpiryReport
	for _, m := range medicines {
		value := float64(m.Quantity) * m.Price
		switch {
		case m.IsExpired(now):
			report.ExpiredCount++
			report.ExpiredValue += value
		case m.ExpiryDate.Before(cutoff) || m.ExpiryDate.Equal(cutoff):
			report.ExpiringCount++
			report.ExpiringValue += value
		}
	}
	return report
}

// StockReport summarises current stock levels and value.
type StockReport struct {
	TotalMedicines int            `json:"total_medicines"`
	TotalUnits     int            `json:"total_units"`
	TotalValue     float64        `json:"total_value"`
	LowStockCount  int            `json:"low_stock_count"`
	OutOfStock     int            `json:"out_of_stock_count"`
	ByCategory     map[string]int `json:"by_category"`
	Expiry         ExpiryReport   `json:"expiry"`
}

func StockAnalytics(medicines []models.Medicine, now time.Time) StockReport {
	report := StockReport{ByCategory: make(map[string]int)}
	for _, m := range medicines {
		report.TotalMedicines++
		report.TotalUnits += m.Quantity
		report.TotalValue += float64(m.Quantity) * m.Price
		report.ByCategory[m.Category]++
		if m.Quantity == 0 {
			report.OutOfStock++
		} else if m.Quantity <= m.MinStockLevel {
			report.LowStockCount++
		}
	}
	report.Expiry = ExpiryAnalytics(medicines, now)
	return report
}

// ReorderRecommendation suggests a restock for one low-stock medicine.
type ReorderRecommendation struct {
	MedicineID      uint   `json:"medicine_id"`
	Name            string `json:"name"`
	CurrentQuantity int    `json:"current_quantity"`
	MinStockLevel   int    `json:"min_stock_level"`
	SuggestedOrder  int    `json:"suggested_order"`
	Supplier        string `json:"supplier"`
}
