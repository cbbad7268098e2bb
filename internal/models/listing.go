package models

// Listing is one row of the source catalog. The rent fields are nil when the
// source value could not be coerced to a number; such rows are kept but sort
// after every comparable row.
type Listing struct {
	Zone           string `json:"zone" gorm:"column:zone;primaryKey"`
	Area           string `json:"area" gorm:"column:area;primaryKey"`
	Region         string `json:"region" gorm:"column:region"`
	RentMedian1BHK *int   `json:"rent_median_1bhk" gorm:"column:rent_median_1bhk"`
	RentMin1BHK    *int   `json:"rent_min_1bhk" gorm:"column:rent_min_1bhk"`
	RentMax1BHK    *int   `json:"rent_max_1bhk" gorm:"column:rent_max_1bhk"`
	DepositRatio   string `json:"deposit_ratio" gorm:"column:deposit_ratio"`
}

func (Listing) TableName() string {
	return "listings"
}

// Derived holds the fields computed once per listing during enrichment and
// never mutated afterward. A GlobalRank of 0 means the row had no usable
// median and is unranked.
type Derived struct {
	DepositMonthsMin float64 `json:"deposit_months_min"`
	ProximityScore   int     `json:"proximity_score"`
	GlobalRank       int     `json:"global_rank,omitempty"`
	Badge            string  `json:"badge,omitempty"`
}

// EnrichedListing joins a catalog row with its derived fields. Row is a
// stable identifier assigned in input order at load time.
type EnrichedListing struct {
	Row int `json:"row"`
	Listing
	Derived
}

// ZoneSummary aggregates the ranked catalog per zone for comparison views.
type ZoneSummary struct {
	Zone          string  `json:"zone"`
	ListingCount  int     `json:"listing_count"`
	MinMedianRent int     `json:"min_median_rent"`
	MaxMedianRent int     `json:"max_median_rent"`
	AvgMedianRent float64 `json:"avg_median_rent"`
	CheapestArea  string  `json:"cheapest_area"`
}
