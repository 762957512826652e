package entity

// DeliveryReport records the result of fanning one status outcome out to a
// recipient set. Partial failure is not an error: every recipient is
// attempted exactly once and failures are recorded here for observability.
type DeliveryReport struct {
	Delivered []string
	Failed    map[string]string // recipient -> error description
}

// NewDeliveryReport returns an empty report ready to record attempts.
func NewDeliveryReport() DeliveryReport {
	return DeliveryReport{Failed: make(map[string]string)}
}

// Attempted returns how many recipients were attempted.
func (r DeliveryReport) Attempted() int {
	return len(r.Delivered) + len(r.Failed)
}
