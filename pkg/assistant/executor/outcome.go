package executor

import "stylista-be/pkg/assistant/action"

type Status string

const (
	StatusFound            Status = "found"
	StatusEmpty            Status = "empty"
	StatusMissingParameter Status = "missing_parameter"
	StatusNoIdentity       Status = "no_identity"
	StatusNotFound         Status = "not_found"
	StatusFailed           Status = "failed"
	StatusNoAction         Status = "no_action"
)

// Outcome is the explicit result of executing one command.
type Outcome struct {
	// Command is what actually ran; after a fallback it is the lexical search.
	Command  action.Command
	Status   Status
	Title    string
	Products []Product
	Orders   []OrderLine
	// Product is set by inventory checks.
	Product *Product
	// Missing names the absent parameter for StatusMissingParameter.
	Missing string
	// Degraded marks an outcome produced by the lexical fallback; Reason
	// says why.
	Degraded bool
	Reason   string
}

// ProductIDs lists the ids of the outcome's products in order.
func (o Outcome) ProductIDs() []int64 {
	ids := make([]int64, 0, len(o.Products)+1)
	for _, p := range o.Products {
		ids = append(ids, p.ID)
	}
	if o.Product != nil && len(o.Products) == 0 {
		ids = append(ids, o.Product.ID)
	}
	return ids
}
