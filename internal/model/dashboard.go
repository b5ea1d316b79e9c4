package model

// DashboardKPIs are the headline figures shown on the dashboard.
type DashboardKPIs struct {
	ActiveLeads    int64   `json:"activeLeads"`
	PropertiesSold int64   `json:"propertiesSold"`
	TotalRevenue   float64 `json:"totalRevenue"`
	AvgDealTime    float64 `json:"avgDealTime"`
}

// SalesChart is a monthly revenue series; Labels and Data are positionally aligned.
type SalesChart struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}
