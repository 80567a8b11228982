package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// DefaultStatus is assigned to orders created without an explicit status.
const DefaultStatus = "Pending"

// Order represents a customer order stored in the relational database.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID           int64     `bun:",pk,autoincrement"`
	CustomerName string    `bun:"customer_name"`
	Product      string    `bun:"product"`
	Quantity     int       `bun:"quantity"`
	OrderDate    time.Time `bun:"order_date"`
	DeliveryDate time.Time `bun:"delivery_date"`
	Status       string    `bun:"status"`
}
