package dto

type TopLink struct {
	LinkID string `json:"linkId"`
	Title  string `json:"title"`
	Clicks int64  `json:"clicks"`
}

type DailyViews struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

// AnalyticsResponse summarizes engagement over a trailing window. DailyViews
// holds one entry per calendar day that saw at least one profile view; silent
// days are not zero-filled.
type AnalyticsResponse struct {
	ProfileViews  int64        `json:"profileViews"`
	LinkClicks    int64        `json:"linkClicks"`
	NFCScans      int64        `json:"nfcScans"`
	ContactsSaved int64        `json:"contactsSaved"`
	TopLinks      []TopLink    `json:"topLinks"`
	DailyViews    []DailyViews `json:"dailyViews"`
}
