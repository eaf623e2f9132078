package schema

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "cart",
	"name": "cart_event",
	"fields" : [
		{"name": "kind", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "name", "type": "string"},
		{"name": "quantity", "type": "long"},
		{"name": "item_count", "type": "long"},
		{"name": "occurred_at", "type": "long"}
	]
}`

// A CartEventV1 carries one committed cart mutation.
// OccurredAt is unix milliseconds.
type CartEventV1 struct {
	Kind       string `avro:"kind"`
	ProductID  int    `avro:"product_id"`
	Name       string `avro:"name"`
	Quantity   int    `avro:"quantity"`
	ItemCount  int    `avro:"item_count"`
	OccurredAt int64  `avro:"occurred_at"`
}
