package schema

const OrderSchemaTextV1 = `{
	"type": "record",
	"namespace": "cart",
	"name": "order",
	"fields" : [
		{"name": "order_id", "type": "string"},
		{"name": "customer", "type": {
			"type": "record",
			"name": "customer",
			"fields": [
				{"name": "name", "type": "string"},
				{"name": "email", "type": "string"},
				{"name": "phone", "type": "string"},
				{"name": "address", "type": "string"},
				{"name": "payment_method", "type": "string"},
				{"name": "notes", "type": "string"}
			]
		}},
		{"name": "items", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "order_item",
				"fields": [
					{"name": "product_id", "type": "long"},
					{"name": "name", "type": "string"},
					{"name": "price", "type": "double"},
					{"name": "quantity", "type": "long"}
				]
			}
		}},
		{"name": "total", "type": "string"},
		{"name": "placed_at", "type": "long"}
	]
}`

type (
	// An OrderV1 is a placed order. Total is the formatted decimal
	// string, PlacedAt is unix milliseconds.
	OrderV1 struct {
		OrderID  string          `avro:"order_id"`
		Customer OrderCustomerV1 `avro:"customer"`
		Items    []OrderItemV1   `avro:"items"`
		Total    string          `avro:"total"`
		PlacedAt int64           `avro:"placed_at"`
	}

	OrderCustomerV1 struct {
		Name          string `avro:"name"`
		Email         string `avro:"email"`
		Phone         string `avro:"phone"`
		Address       string `avro:"address"`
		PaymentMethod string `avro:"payment_method"`
		Notes         string `avro:"notes"`
	}

	OrderItemV1 struct {
		ProductID int     `avro:"product_id"`
		Name      string  `avro:"name"`
		Price     float64 `avro:"price"`
		Quantity  int     `avro:"quantity"`
	}
)
