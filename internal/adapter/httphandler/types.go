package httphandler

type (
	Product struct {
		ID    int     `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Image string  `json:"image"`
	}

	CartLine struct {
		Product        Product `json:"product"`
		Quantity       int     `json:"quantity"`
		Subtotal       string  `json:"subtotal"`
		RemainingStock int     `json:"remaining_stock"`
	}

	Cart struct {
		Items     []CartLine `json:"items"`
		Total     string     `json:"total"`
		ItemCount int        `json:"item_count"`
	}
)

func (c Cart) hasItem(productID int) bool {
	for _, l := range c.Items {
		if l.Product.ID == productID {
			return true
		}
	}
	return false
}

type QuantityDelta struct {
	Delta int `json:"delta"`
}

type Customer struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

type OrderPlaced struct {
	OrderID string `json:"order_id"`
	Total   string `json:"total"`
}

type Stock struct {
	ProductID int `json:"product_id"`
	Available int `json:"available"`
}

type ReservedStats struct {
	ProductID int   `json:"product_id"`
	Reserved  int64 `json:"reserved"`
}

type OutOfStock struct {
	Error     string `json:"error"`
	Remaining int    `json:"remaining"`
}
