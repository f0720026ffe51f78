package domain

import "time"

// Resource types and categories used by the suggestion pipeline
const (
	ResourceFood   = "food"
	ResourceEnergy = "energy"
	ResourceWater  = "water"
)

// InventoryItem запас в хозяйстве. Quantity may go negative when consumption exceeds stock.
type InventoryItem struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit"`
	Category       string    `json:"category"`
	ExpirationDate time.Time `json:"expiration_date"`
}

// ConsumptionLog запись о расходе. ItemID is a weak reference.
type ConsumptionLog struct {
	ID           int64     `json:"id"`
	ItemID       int64     `json:"item_id"`
	Quantity     float64   `json:"quantity"`
	ResourceType string    `json:"resource_type"`
	Timestamp    time.Time `json:"timestamp"`
}

// PriceOffer предложение ритейлера, не сохраняется
type PriceOffer struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Discount string `json:"discount"`
}

// Forecast результат прогноза: либо значение, либо отсутствие данных
type Forecast struct {
	value   float64
	hasData bool
}

// NoData is returned when there are no logs to fit.
func NoData() Forecast { return Forecast{} }

// Usage wraps a predicted total.
func Usage(v float64) Forecast { return Forecast{value: v, hasData: true} }

// Value returns the predicted total and whether one exists.
func (f Forecast) Value() (float64, bool) { return f.value, f.hasData }

// HasData reports whether the forecast carries a value.
func (f Forecast) HasData() bool { return f.hasData }
