package billing

import "repairshop-service/internal/model"

// TaxRate is the fixed VAT rate applied to receipts and invoices.
const TaxRate = 0.20

// Totals is the computed money breakdown for a receipt or invoice.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Compute derives tax and total from a pre-tax subtotal.
func Compute(subtotal float64) Totals {
	tax := subtotal * TaxRate
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// Line is a single printable amount on a ticket receipt.
type Line struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// TicketLines returns per-task amounts for a ticket. Explicit task
// prices win; otherwise the cost is split evenly across tasks. The even
// split is a display approximation and is never used for ledger totals.
func TicketLines(ticket *model.Ticket) []Line {
	if len(ticket.TaskPrices) > 0 {
		lines := make([]Line, 0, len(ticket.TaskPrices))
		for _, tp := range ticket.TaskPrices {
			lines = append(lines, Line{Name: tp.Name, Amount: tp.Price})
		}
		return lines
	}

	if len(ticket.Tasks) == 0 {
		return nil
	}

	share := ticket.Cost / float64(len(ticket.Tasks))
	lines := make([]Line, 0, len(ticket.Tasks))
	for _, name := range ticket.Tasks {
		lines = append(lines, Line{Name: name, Amount: share})
	}
	return lines
}

// TicketCost is the authoritative cost of a ticket: the sum of task
// prices when present, the stored cost otherwise.
func TicketCost(taskPrices []model.TaskPrice, fallback float64) float64 {
	if len(taskPrices) == 0 {
		return fallback
	}
	var sum float64
	for _, tp := range taskPrices {
		sum += tp.Price
	}
	return sum
}

// InvoiceSubtotal sums quantity times price over invoice items.
func InvoiceSubtotal(items []model.InvoiceItem) float64 {
	var sum float64
	for _, item := range items {
		sum += float64(item.Quantity) * item.Price
	}
	return sum
}

// RemainingBalance is total minus the amount already paid. An overpaid
// order yields a negative balance; callers decide how to present that.
func RemainingBalance(total, amountPaid float64) float64 {
	return total - amountPaid
}
