// Package refstore holds the in-memory master reference: the customer
// identity table and the retail price table. It owns the keyed lookups
// the derivation pipeline joins against, the sanity checks that gate a
// run, and the merge that folds customer-list uploads into the stored
// table.
package refstore

import (
	"strings"

	"github.com/shopspring/decimal"

	"qbgen/pkg/models"
)

// Store exposes keyed lookups over the loaded master reference. It is
// read-only after construction; reference updates build a new table and
// a new store.
type Store struct {
	customers []models.CustomerRecord
	prices    []models.PriceEntry

	bySuffix map[string]models.CustomerRecord
	byUPC    map[string]models.PriceEntry
}

// NewStore builds a store from the loaded reference tables, deriving
// each customer's suffix key from its stock lens account number.
// Duplicate keys keep the first occurrence; the sanity checks are what
// reject duplicated reference data, not the map build.
func NewStore(customers []models.CustomerRecord, prices []models.PriceEntry) *Store {
	s := &Store{
		customers: make([]models.CustomerRecord, 0, len(customers)),
		prices:    prices,
		bySuffix:  make(map[string]models.CustomerRecord, len(customers)),
		byUPC:     make(map[string]models.PriceEntry, len(prices)),
	}

	for _, c := range customers {
		if c.SuffixKey == "" {
			c.SuffixKey = SuffixKey(c.StockLensAccount)
		}
		s.customers = append(s.customers, c)
		if _, exists := s.bySuffix[c.SuffixKey]; !exists {
			s.bySuffix[c.SuffixKey] = c
		}
	}
	for _, p := range prices {
		key := normUPC(p.UPC)
		if _, exists := s.byUPC[key]; !exists {
			s.byUPC[key] = p
		}
	}

	return s
}

// Customers returns the stored customer table in load order.
func (s *Store) Customers() []models.CustomerRecord {
	return s.customers
}

// Prices returns the stored price table in load order.
func (s *Store) Prices() []models.PriceEntry {
	return s.prices
}

// LookupCustomer resolves a raw drop-ship identifier to its customer
// record.
func (s *Store) LookupCustomer(dropShipID string) (models.CustomerRecord, error) {
	c, ok := s.bySuffix[SuffixKey(dropShipID)]
	if !ok {
		return models.CustomerRecord{}, NewLookupError("CustomerList", dropShipID)
	}
	return c, nil
}

// LookupStockLensAccount resolves a raw drop-ship identifier to the
// customer's full stock lens account number.
func (s *Store) LookupStockLensAccount(dropShipID string) (string, error) {
	c, err := s.LookupCustomer(dropShipID)
	if err != nil {
		return "", err
	}
	return c.StockLensAccount, nil
}

// LookupBillingAccount resolves a raw drop-ship identifier to the
// customer's external billing account number.
func (s *Store) LookupBillingAccount(dropShipID string) (string, error) {
	c, err := s.LookupCustomer(dropShipID)
	if err != nil {
		return "", err
	}
	return c.BillingAccount, nil
}

// LookupPrice resolves a product barcode to its retail unit price and
// category label. Barcodes compare numerically: leading zeros on either
// side do not affect the match.
func (s *Store) LookupPrice(upc string) (decimal.Decimal, string, error) {
	p, ok := s.byUPC[normUPC(upc)]
	if !ok {
		return decimal.Zero, "", NewLookupError("PriceSheet", upc)
	}
	return p.Retail.Decimal, p.Category, nil
}

func normUPC(upc string) string {
	return strings.TrimLeft(strings.TrimSpace(upc), "0")
}
