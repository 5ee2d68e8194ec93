package domain

// The dashboard's resource collections. Field names follow the JSON shapes
// the admin front-end already exchanges with the API, hence camelCase tags.

// EventStatus enumerates lifecycle states for an event listing.
type EventStatus string

const (
	EventStatusUpcoming EventStatus = "upcoming"
	EventStatusOngoing  EventStatus = "ongoing"
	EventStatusFinished EventStatus = "finished"
)

// Event is a ticketed event listing.
type Event struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Date         string      `json:"date"`
	Time         string      `json:"time"`
	Venue        string      `json:"venue"`
	Location     string      `json:"location"`
	Status       EventStatus `json:"status"`
	TicketsSold  int         `json:"ticketsSold"`
	TotalTickets int         `json:"totalTickets"`
}

// Sector is a seating sector with a base price and capacity.
type Sector struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	TotalCapacity int     `json:"totalCapacity"`
	Available     int     `json:"available"`
	BasePrice     float64 `json:"basePrice"`
	Status        string  `json:"status"`
}

// LotStatus enumerates selling states for a pricing lot.
type LotStatus string

const (
	LotStatusSelling   LotStatus = "selling"
	LotStatusScheduled LotStatus = "scheduled"
	LotStatusClosed    LotStatus = "closed"
)

// Lot is a pricing lot tied to a sector.
type Lot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Sector    string    `json:"sector"`
	Price     float64   `json:"price"`
	Sold      int       `json:"sold"`
	Total     int       `json:"total"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Status    LotStatus `json:"status"`
}

// CouponType distinguishes percentage from fixed-amount discounts.
type CouponType string

const (
	CouponTypePercentage CouponType = "percentage"
	CouponTypeFixed      CouponType = "fixed"
)

// Coupon is a discount coupon with a validity window and usage cap.
type Coupon struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	Type          CouponType `json:"type"`
	Discount      float64    `json:"discount"`
	ValidityStart string     `json:"validityStart"`
	ValidityEnd   string     `json:"validityEnd"`
	Usage         int        `json:"usage"`
	MaxUsage      int        `json:"maxUsage"`
	Status        string     `json:"status"`
}

// Settings holds dashboard appearance settings. The collection is expected
// to carry a single record.
type Settings struct {
	ID             string `json:"id"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
}
