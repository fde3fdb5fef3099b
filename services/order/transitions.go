package order

import "marketplace/models"

var transitions = map[string][]string{
	models.OrderPending:    {models.OrderConfirmed, models.OrderCancelled},
	models.OrderConfirmed:  {models.OrderInProgress, models.OrderCancelled},
	models.OrderInProgress: {models.OrderCompleted},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func knownStatus(s string) bool {
	switch s {
	case models.OrderPending, models.OrderConfirmed, models.OrderInProgress, models.OrderCompleted, models.OrderCancelled:
		return true
	}
	return false
}
