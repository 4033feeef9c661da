package dtos

// Advanced statistics shapes, formatted for Chart.js on the dashboard.

type StatusBreakdown struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ConversionMetrics holds stage-to-stage conversion rates as percentages.
// A rate is nil (JSON null) when its denominator stage has no applications;
// it is never reported as zero in that case.
type ConversionMetrics struct {
	AppliedToScreening   *float64 `json:"applied_to_screening"`
	ScreeningToInterview *float64 `json:"screening_to_interview"`
	InterviewToOffer     *float64 `json:"interview_to_offer"`
	OfferToHired         *float64 `json:"offer_to_hired"`
	OverallConversion    *float64 `json:"overall_conversion"`
}

// StageTimeMetrics reports how long applications currently in a stage have
// been sitting there, in days, measured from submission to last update.
type StageTimeMetrics struct {
	Stage   string  `json:"stage"`
	AvgDays float64 `json:"avg_days"`
	MinDays float64 `json:"min_days"`
	MaxDays float64 `json:"max_days"`
	Count   int     `json:"count"`
}

type FunnelData struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Colors []string `json:"colors"`
}

type DailyTrends struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type AdvancedStatsResponse struct {
	TotalApplications int                `json:"total_applications"`
	DateRange         DateRange          `json:"date_range"`
	StatusBreakdown   []StatusBreakdown  `json:"status_breakdown"`
	ConversionMetrics ConversionMetrics  `json:"conversion_metrics"`
	AvgTimePerStage   []StageTimeMetrics `json:"avg_time_per_stage"`
	FunnelData        FunnelData         `json:"funnel_data"`
	DailyTrends       DailyTrends        `json:"daily_trends"`
}
