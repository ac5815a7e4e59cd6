package domain

// StoreID identifies a unique store as the composite "retailer@zip_code".
// Two deals from the same chain at different locations map to different IDs.
type StoreID string

// NewStoreID builds the composite store key from a retailer brand and ZIP.
func NewStoreID(retailer, zipCode string) StoreID {
	return StoreID(retailer + "@" + zipCode)
}

// Deal is one observed price for one item at one store, as returned by the
// remote deal feed. Display fields may be empty when the feed has no data.
type Deal struct {
	Retailer         string  `json:"retailer"`
	ZipCode          string  `json:"zip_code"`
	SearchedItemName string  `json:"searched_item_name"`
	ProductName      string  `json:"product_name"`
	ProductPrice     float64 `json:"product_price"`
	DistanceM        float64 `json:"distance_m"`
	ProductSize      string  `json:"product_size,omitempty"`
	ImageLink        string  `json:"image_link,omitempty"`
	RetailerLogoURL  string  `json:"retailer_logo_url,omitempty"`
}

// StoreID returns the composite store key this deal belongs to.
func (d Deal) StoreID() StoreID {
	return NewStoreID(d.Retailer, d.ZipCode)
}

// CartItem is one requested item resolved to a concrete deal inside a cart.
type CartItem struct {
	SearchedItem    string  `json:"searched_item"`
	ProductName     string  `json:"product_name"`
	ProductPrice    float64 `json:"product_price"`
	Retailer        string  `json:"retailer"`
	ZipCode         string  `json:"zip_code"`
	DistanceM       float64 `json:"distance_m"`
	ProductSize     string  `json:"product_size,omitempty"`
	ImageLink       string  `json:"image_link,omitempty"`
	RetailerLogoURL string  `json:"retailer_logo_url,omitempty"`
}

// OptimizedCart is the simulated outcome of one store combination:
// which requested items were found (at most one deal each), which are
// missing across every store in the combo, and the found-item price total.
type OptimizedCart struct {
	Stores         []StoreID  `json:"stores"`
	TotalCartPrice float64    `json:"total_cart_price"`
	ItemsFound     []CartItem `json:"items_found"`
	ItemsMissing   []string   `json:"items_missing"`
}

// SingleStoreResult is the degenerate one-store cart, kept for every store in
// the candidate pool regardless of completeness. The caller filters and
// deduplicates these per retailer brand for the "best price per store" view.
type SingleStoreResult struct {
	Retailer        string     `json:"retailer"`
	ZipCode         string     `json:"zip_code"`
	TotalCartPrice  float64    `json:"total_cart_price"`
	ItemsFoundCount int        `json:"items_found_count"`
	DistanceM       float64    `json:"distance_m"`
	Distance        string     `json:"distance"`
	ItemsFound      []CartItem `json:"items_found"`
	RetailerLogoURL string     `json:"retailer_logo_url,omitempty"`
}

// ItemSpec is one requested item, optionally refined with free-text
// brand/size/details hints that are passed through to the deal feed.
type ItemSpec struct {
	Name    string `json:"name" binding:"required"`
	Brand   string `json:"brand,omitempty"`
	Size    string `json:"size,omitempty"`
	Details string `json:"details,omitempty"`
}

// OptimizeRequest is a cart-optimization search. Items may be given either as
// structured specs or as a semicolon-delimited free-text query; structured
// specs win when both are present.
type OptimizeRequest struct {
	Query       string     `json:"query,omitempty"`
	Items       []ItemSpec `json:"items,omitempty" binding:"omitempty,dive"`
	ZipCode     string     `json:"zip_code" binding:"required,zipcode"`
	RadiusMiles float64    `json:"radius_miles" binding:"required,gte=1"`
	StoreLimit  int        `json:"store_limit" binding:"required,gte=1,lte=5"`
}

// OptimizeResult is what one optimization run produced. Exactly one of
// BestCart and SingleStoreResults is populated, depending on the store limit.
type OptimizeResult struct {
	SearchTerms        []string            `json:"search_terms"`
	BestCart           *OptimizedCart      `json:"best_cart,omitempty"`
	SingleStoreResults []SingleStoreResult `json:"single_store_results,omitempty"`
}

// DealSearchRequest is a flat single-deal search (no optimization).
type DealSearchRequest struct {
	Query       string     `json:"query,omitempty"`
	Items       []ItemSpec `json:"items,omitempty" binding:"omitempty,dive"`
	ZipCode     string     `json:"zip_code" binding:"required,zipcode"`
	RadiusMiles float64    `json:"radius_miles" binding:"required,gte=1"`
	SortBy      string     `json:"sort_by,omitempty" binding:"omitempty,oneof=price distance"`
}

// DealMenuQuery is the contract of the remote deal-feed RPC: one atomic fetch
// per search action, no retries or pagination beyond what the client does.
type DealMenuQuery struct {
	UserZip      string
	Items        []ItemSpec
	RadiusMeters int
	MinDate      string // YYYY-MM-DD freshness cutoff
}
