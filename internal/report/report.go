package report

// SalesSummary aggregates the order ledger for the back-office dashboard.
// Revenue excludes cancelled orders; the per-status counts include them.
type SalesSummary struct {
	TotalOrders  int            `json:"totalOrders"`
	TotalRevenue float64        `json:"totalRevenue"`
	ByStatus     map[string]int `json:"byStatus"`
}
