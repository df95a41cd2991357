package inventory

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pawcare/vet-scheduler/models"
)

var ErrMedicineNotFound = errors.New("medicine not found")

// Tracker manages the medicine inventory and its transaction ledger.
type Tracker struct {
	db *gorm.DB
}

func NewTracker(db *gorm.DB) *Tracker {
	return &Tracker{db: db}
}

func (t *Tracker) AddMedicine(medicine models.Medicine) (models.Medicine, error) {
	if medicine.Name == "" {
		return models.Medicine{}, fmt.Errorf("missing required field: name")
	}
	if err := t.db.Create(&medicine).Error; err != nil {
		return models.Medicine{}, err
	}
	return medicine, nil
}

func (t *Tracker) UpdateMedicine(medicineID uint, updates map[string]interface{}) error {
	result := t.db.Model(&models.Medicine{}).Where("id = ?", medicineID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMedicineNotFound
	}
	return nil
}

func (t *Tracker) GetMedicine(medicineID uint) (models.Medicine, error) {
	var medicine models.Medicine
	if err := t.db.First(&medicine, medicineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Medicine{}, ErrMedicineNotFound
		}
		return models.Medicine{}, err
	}
	return medicine, nil
}

func (t *Tracker) SearchMedicines(query, category string) ([]models.Medicine, error) {
	q := t.db.Model(&models.Medicine{})
	if query != "" {
		q = q.Where("LOWER(name) LIKE ? OR LOWER(supplier) LIKE ?",
			"%"+lower(query)+"%", "%"+lower(query)+"%")
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var medicines []models.Medicine
	if err := q.Order("name").Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

// LowStock lists medicines at or below their minimum stock level.
func (t *Tracker) LowStock() ([]models.Medicine, error) {
	var medicines []models.Medicine
	if err := t.db.Where("quantity <= min_stock_level").Order("quantity").Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

// ExpiringWithin lists unexpired medicines whose expiry falls inside the
// next days.
func (t *Tracker) ExpiringWithin(days int) ([]models.Medicine, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, days)
	var medicines []models.Medicine
	if err := t.db.Where("expiry_date > ? AND expiry_date <= ?", now, cutoff).
		Order("expiry_date").Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

func (t *Tracker) Expired() ([]models.Medicine, error) {
	var medicines []models.Medicine
	if err := t.db.Where("expiry_date <= ?", time.Now()).
		Order("expiry_date").Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

// RecordTransaction appends a ledger entry and applies the quantity change
// to the medicine in one transaction. Sales subtract, purchases add,
// adjustments set the quantity directly.
func (t *Tracker) RecordTransaction(txn models.StockTransaction) (models.StockTransaction, error) {
	if txn.Date.IsZero() {
		txn.Date = time.Now()
	}
	err := t.db.Transaction(func(tx *gorm.DB) error {
		var medicine models.Medicine
		if err := tx.First(&medicine, txn.MedicineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMedicineNotFound
			}
			return err
		}

		switch txn.Type {
		case models.TransactionPurchase:
			medicine.Quantity += txn.Quantity
		case models.TransactionSale:
			if medicine.Quantity < txn.Quantity {
				return fmt.Errorf("insufficient stock for %s: have %d, need %d",
					medicine.Name, medicine.Quantity, txn.Quantity)
			}
			medicine.Quantity -= txn.Quantity
		case models.TransactionAdjustment:
			medicine.Quantity = txn.Quantity
		default:
			return fmt.Errorf("unknown transaction type: %s", txn.Type)
		}

		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		return tx.Model(&models.Medicine{}).
			Where("id = ?", medicine.ID).
			Update("quantity", medicine.Quantity).Error
	})
	if err != nil {
		return models.StockTransaction{}, err
	}
	return txn, nil
}

func (t *Tracker) SalesHistory(medicineID uint, days int) ([]models.StockTransaction, error) {
	since := time.Now().AddDate(0, 0, -days)
	var txns []models.StockTransaction
	if err := t.db.Where("medicine_id = ? AND type = ? AND date >= ?",
		medicineID, models.TransactionSale, since).
		Order("date").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// Summary aggregates the current inventory state for reporting.
func (t *Tracker) Summary() (StockReport, error) {
	var medicines []models.Medicine
	if err := t.db.Find(&medicines).Error; err != nil {
		return StockReport{}, err
	}
	return StockAnalytics(medicines, time.Now()), nil
}

// SellerReport ranks medicines by units sold over the window.
func (t *Tracker) SellerReport(days, limit int) (top []SellerEntry, low []SellerEntry, err error) {
	var medicines []models.Medicine
	if err := t.db.Find(&medicines).Error; err != nil {
		return nil, nil, err
	}
	since := time.Now().AddDate(0, 0, -days)
	var txns []models.StockTransaction
	if err := t.db.Where("type = ? AND date >= ?", models.TransactionSale, since).
		Find(&txns).Error; err != nil {
		return nil, nil, err
	}
	ranked := RankSellers(medicines, txns)
	top = firstEntries(ranked, limit)
	reversed := make([]SellerEntry, len(ranked))
	for i, e := range ranked {
		reversed[len(ranked)-1-i] = e
	}
	low = firstEntries(reversed, limit)
	return top, low, nil
}

// ReorderRecommendations suggests restock quantities for medicines at or
// below their minimum stock level.
func (t *Tracker) ReorderRecommendations() ([]ReorderRecommendation, error) {
	lowStock, err := t.LowStock()
	if err != nil {
		return nil, err
	}
	recs := make([]ReorderRecommendation, 0, len(lowStock))
	for _, m := range lowStock {
		target := m.MinStockLevel * 3
		recs = append(recs, ReorderRecommendation{
			MedicineID:      m.ID,
			Name:            m.Name,
			CurrentQuantity: m.Quantity,
			MinStockLevel:   m.MinStockLevel,
			SuggestedOrder:  target - m.Quantity,
			Supplier:        m.Supplier,
		})
	}
	return recs, nil
}

func firstEntries(entries []SellerEntry, n int) []SellerEntry {
	if n > 0 && len(entries) > n {
		return entries[:n]
	}
	return entries
}
