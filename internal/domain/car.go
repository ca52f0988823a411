package domain

type CarStatus string

const (
	CarStatusAvailable CarStatus = "AVAILABLE"
	CarStatusInUse     CarStatus = "IN_USE"
)

// Car is a fleet vehicle. RentFee is charged per rent period, DepositFee is a
// flat charge per rental. Status is driven exclusively by begin/end-rental.
type Car struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Model      string    `json:"model"`
	RentFee    uint64    `json:"rent_fee"`
	DepositFee uint64    `json:"deposit_fee"`
	Status     CarStatus `json:"status"`
}
