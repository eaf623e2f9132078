package domain

// DefaultCatalog is the built-in stock table.
// The ledger is the single authoritative stock source per deployment;
// a live catalog would feed service.NewStockLedger instead.
func DefaultCatalog() []StockEntry {
	return []StockEntry{
		{ProductID: 1, TotalStock: 10, Name: "Eternal Essence"},
		{ProductID: 2, TotalStock: 15, Name: "Silk Touch Lotion"},
		{ProductID: 3, TotalStock: 8, Name: "Velvet Rose"},
		{ProductID: 4, TotalStock: 12, Name: "Ocean Breeze Set"},
		{ProductID: 5, TotalStock: 20, Name: "Noir Mystique"},
		{ProductID: 6, TotalStock: 18, Name: "Citrus Bloom"},
		{ProductID: 7, TotalStock: 25, Name: "Coconut Dream"},
		{ProductID: 8, TotalStock: 10, Name: "Shea Butter Bliss"},
		{ProductID: 9, TotalStock: 15, Name: "Aloe Vera Soothing"},
		{ProductID: 10, TotalStock: 8, Name: "Vitamin C Serum"},
		{ProductID: 11, TotalStock: 12, Name: "Hyaluronic Acid Cream"},
		{ProductID: 12, TotalStock: 6, Name: "Retinol Night Cream"},
		{ProductID: 13, TotalStock: 20, Name: "Charcoal Face Mask"},
		{ProductID: 14, TotalStock: 15, Name: "Lavender Bath Bombs"},
		{ProductID: 15, TotalStock: 10, Name: "Eucalyptus Body Wash"},
		{ProductID: 16, TotalStock: 12, Name: "Rose Petal Bath Salts"},
		{ProductID: 17, TotalStock: 8, Name: "Oatmeal Body Scrub"},
		{ProductID: 18, TotalStock: 5, Name: "Luxury Spa Gift Set"},
		{ProductID: 19, TotalStock: 10, Name: "Romantic Evening Set"},
		{ProductID: 20, TotalStock: 15, Name: "Travel Essential Kit"},
		{ProductID: 21, TotalStock: 8, Name: "Holiday Special Box"},
	}
}
