package domain

type (
	Product struct {
		ID    int
		Name  string
		Price float64
		Image string
	}

	StockEntry struct {
		ProductID  int
		TotalStock int
		Name       string
	}
)
