package models

// BarDatum is one chart bar, ready for rendering. Series are chronological
// ascending and never mutated after construction.
type BarDatum struct {
	Value float64 `json:"value"`
	Level int     `json:"level"`
	Label string  `json:"label,omitempty"`
}

// DisplaySummary is the flat presentation-ready record derived once per
// fetch cycle. String fields keep the upstream formatting.
type DisplaySummary struct {
	Balance        string  `json:"balance"`
	HasArrear      bool    `json:"hasArrear"`
	LastBill       string  `json:"lastBill"`
	LastUsage      string  `json:"lastUsage"`
	YearBill       string  `json:"yearBill"`
	YearUsage      string  `json:"yearUsage"`
	TotalYearPq    float64 `json:"totalYearPq"`
	LastUpdateTime int64   `json:"lastUpdateTime"`
}
