package domain

// DecodedEvent is a log entry already decoded into indexed topics and body values.
//
// For transfer-shaped events the first two indexed values are sender and
// receiver and the first body value is the amount. Swap events carry
// amount0, amount1, sqrtPriceX96 and liquidity in the body.
type DecodedEvent struct {
	Indexed []Value `json:"indexed"`
	Body    []Value `json:"body"`
}

// NewTransfer builds a transfer-shaped event.
func NewTransfer(from, to string, value any) *DecodedEvent {
	return &DecodedEvent{
		Indexed: Values(from, to),
		Body:    Values(value),
	}
}

// Sender returns the lower-cased first indexed value.
func (e *DecodedEvent) Sender() (string, bool) {
	return e.indexedAddress(0)
}

// Receiver returns the lower-cased second indexed value.
func (e *DecodedEvent) Receiver() (string, bool) {
	return e.indexedAddress(1)
}

// Parties returns sender and receiver; either may be empty.
func (e *DecodedEvent) Parties() (from, to string) {
	from, _ = e.Sender()
	to, _ = e.Receiver()
	return from, to
}

// PrimaryValue returns the first body value, or a nil Value if the body is empty.
func (e *DecodedEvent) PrimaryValue() Value {
	if e == nil || len(e.Body) == 0 {
		return Value{}
	}
	return e.Body[0]
}

// Touches reports whether addr (lower-cased) is the sender or receiver.
func (e *DecodedEvent) Touches(addr string) bool {
	from, to := e.Parties()
	return addr != "" && (from == addr || to == addr)
}

func (e *DecodedEvent) indexedAddress(i int) (string, bool) {
	if e == nil || len(e.Indexed) <= i {
		return "", false
	}
	return e.Indexed[i].Address()
}
