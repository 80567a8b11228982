package dto

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// OrderResponse represents an order as exposed via transport layers.
// Dates are rendered as YYYY-MM-DD; orders carry no time-of-day component.
type OrderResponse struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customer_name"`
	Product      string `json:"product"`
	Quantity     int    `json:"quantity"`
	OrderDate    string `json:"order_date"`
	DeliveryDate string `json:"delivery_date"`
	Status       string `json:"status"`
}

// DashboardEntry pairs an order with its derived due-date alert flag.
type DashboardEntry struct {
	Order OrderResponse `json:"order"`
	Alert bool          `json:"alert"`
}

// OrderForm carries the editable fields shown on the create/update forms,
// keyed by the field names the frontend submits.
type OrderForm struct {
	CustomerName string `json:"nombre" form:"nombre"`
	Product      string `json:"producto" form:"producto"`
	Quantity     string `json:"cantidad" form:"cantidad"`
	DeliveryDate string `json:"fecha_entrega" form:"fecha_entrega"`
}
