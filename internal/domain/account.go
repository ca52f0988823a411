package domain

// Account holds a renter's identity and cash balance. The address is opaque
// and assigned by the host identity system; balances are kept in the smallest
// currency unit and never go negative.
type Account struct {
	Address   string `json:"address"`
	Name      string `json:"name"`
	Lastname  string `json:"lastname"`
	Balance   uint64 `json:"balance"`
	CreatedOn string `json:"created_on"`
}
