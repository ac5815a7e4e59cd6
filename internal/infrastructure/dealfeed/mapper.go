package dealfeed

import (
	"log"

	"github.com/AladdinPP/prox-moble/internal/domain"
)

// rawDeal mirrors the wire shape of one deal record. Pointers distinguish
// absent fields from zero values so malformed records can be rejected instead
// of leaking NaN or empty keys into price comparisons.
type rawDeal struct {
	Retailer         *string  `json:"retailer"`
	ZipCode          *string  `json:"zip_code"`
	SearchedItemName *string  `json:"searched_item_name"`
	ProductName      *string  `json:"product_name"`
	ProductPrice     *float64 `json:"product_price"`
	DistanceM        *float64 `json:"distance_m"`
	ProductSize      *string  `json:"product_size"`
	ImageLink        *string  `json:"image_link"`
	RetailerLogoURL  *string  `json:"retailer_logo_url"`
}

// valid reports whether a record carries every required field. Display fields
// (size, image, logo) may be null.
func (r rawDeal) valid() bool {
	if r.Retailer == nil || *r.Retailer == "" {
		return false
	}
	if r.ZipCode == nil || *r.ZipCode == "" {
		return false
	}
	if r.SearchedItemName == nil || *r.SearchedItemName == "" {
		return false
	}
	if r.ProductName == nil || *r.ProductName == "" {
		return false
	}
	if r.ProductPrice == nil || *r.ProductPrice < 0 {
		return false
	}
	if r.DistanceM == nil || *r.DistanceM < 0 {
		return false
	}
	return true
}

// mapDeals converts raw records to domain deals, dropping malformed ones.
func mapDeals(raw []rawDeal, debug bool) []domain.Deal {
	deals := make([]domain.Deal, 0, len(raw))
	dropped := 0

	for _, r := range raw {
		if !r.valid() {
			dropped++
			continue
		}
		deals = append(deals, domain.Deal{
			Retailer:         *r.Retailer,
			ZipCode:          *r.ZipCode,
			SearchedItemName: *r.SearchedItemName,
			ProductName:      *r.ProductName,
			ProductPrice:     *r.ProductPrice,
			DistanceM:        *r.DistanceM,
			ProductSize:      stringValue(r.ProductSize),
			ImageLink:        stringValue(r.ImageLink),
			RetailerLogoURL:  stringValue(r.RetailerLogoURL),
		})
	}

	if dropped > 0 && debug {
		log.Printf("[FEED] Dropped %d malformed deal records", dropped)
	}
	return deals
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
