package domain

// Rent is an immutable rental record. Renter and CarStatus are snapshots
// captured at creation time; closing a rental changes only the car's live
// status, never the record itself.
type Rent struct {
	ID        uint64    `json:"id"`
	Renter    Account   `json:"renter"`
	CarID     uint64    `json:"car_id"`
	CarStatus CarStatus `json:"car_status"`
	StartDate uint64    `json:"start_date"`
	EndDate   uint64    `json:"end_date"`
	RentCost  uint64    `json:"rent_cost"`
}
