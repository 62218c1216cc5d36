package domain

type OrderStatus string

const (
	StatusCreated    OrderStatus = "created"
	StatusPending    OrderStatus = "pending"
	StatusPaid       OrderStatus = "paid"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// AdminStatuses are the values an administrator may assign by hand.
// created and paid are only ever set by checkout and payment verification.
var AdminStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []OrderStatus{
	StatusCreated,
	StatusPending,
	StatusPaid,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

var transitions = map[OrderStatus][]OrderStatus{
	StatusCreated:    {StatusPending, StatusPaid, StatusProcessing, StatusCancelled},
	StatusPending:    {StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled},
	StatusPaid:       {StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusDelivered, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  nil,
	StatusCancelled:  nil,
}

func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// Next lists the statuses reachable from s in one step.
func (s OrderStatus) Next() []OrderStatus {
	next := transitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether s may move to next. Staying on the same
// status is always allowed and is treated as a no-op by callers.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return s.Valid()
	}
	for _, candidate := range transitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

func parseStatus(raw string, valid []OrderStatus) (OrderStatus, error) {
	for _, s := range valid {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", &StatusError{Value: raw, Valid: valid}
}

// ParseAdminStatus accepts only values from AdminStatuses.
func ParseAdminStatus(raw string) (OrderStatus, error) {
	return parseStatus(raw, AdminStatuses)
}

// ParseStatus accepts any lifecycle status, for filtering.
func ParseStatus(raw string) (OrderStatus, error) {
	return parseStatus(raw, AllStatuses)
}

func statusStrings(list []OrderStatus) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = string(s)
	}
	return out
}

func AdminStatusStrings() []string {
	return statusStrings(AdminStatuses)
}
