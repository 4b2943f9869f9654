package domain

// Role tells which leg of a shipment a correlation id stands for.
type Role string

const (
	RolePickup   Role = "pickup"
	RoleDelivery Role = "delivery"
)

// Counter mints increasing positive integers. It is owned by a single
// transformation call; the zero value starts at 1.
type Counter struct {
	last int
}

func (c *Counter) Next() int {
	c.last++
	return c.last
}

// Correlation links one order line to its pair of minted shipment ids.
type Correlation struct {
	OrderID    string
	LineID     string
	PickupID   int
	DeliveryID int
}

// Correlations is the side map produced by the outbound transformation.
// Lines are kept in minting order.
type Correlations struct {
	lines []Correlation
	byID  map[int]int
}

func NewCorrelations() *Correlations {
	return &Correlations{byID: make(map[int]int)}
}

// Add records a correlation. Ids must not have been recorded before.
func (c *Correlations) Add(corr Correlation) {
	idx := len(c.lines)
	c.lines = append(c.lines, corr)
	c.byID[corr.PickupID] = idx
	c.byID[corr.DeliveryID] = idx
}

// Lookup finds the line owning a shipment id and the role of that id.
func (c *Correlations) Lookup(id int) (Correlation, Role, bool) {
	if c == nil {
		return Correlation{}, "", false
	}
	idx, ok := c.byID[id]
	if !ok {
		return Correlation{}, "", false
	}

	corr := c.lines[idx]
	if corr.PickupID == id {
		return corr, RolePickup, true
	}
	return corr, RoleDelivery, true
}

// Lines returns the correlations in minting order.
func (c *Correlations) Lines() []Correlation {
	if c == nil {
		return nil
	}
	out := make([]Correlation, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Correlations) Len() int {
	if c == nil {
		return 0
	}
	return len(c.lines)
}
