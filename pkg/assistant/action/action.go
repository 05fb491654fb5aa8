package action

// Kind is the wire name of an action.
type Kind string

const (
	KindSearchProducts Kind = "search_products"
	KindRecommend      Kind = "recommend_products"
	KindShowTrends     Kind = "show_trends"
	KindCheckInventory Kind = "check_inventory"
	KindOrderHistory   Kind = "order_history"
	KindNoAction       Kind = "no_action"
	KindUnknown        Kind = "unknown"
)

// Known lists the actions the model may emit, in prompt order.
var Known = []Kind{
	KindSearchProducts,
	KindRecommend,
	KindShowTrends,
	KindCheckInventory,
	KindOrderHistory,
}

const DefaultTrendDays = 30

// MaxLimit caps how many products a single command may ask for.
const MaxLimit = 100

// Command is the resolved intent of a single user turn.
type Command interface {
	Kind() Kind
}

// SearchProducts filters the catalog. Empty fields are unconstrained.
type SearchProducts struct {
	Category string
	// Categories is a disjunctive set, used by multi-category shortcuts.
	Categories []string
	Brand      string
	Department string
	MinPrice   *float64
	MaxPrice   *float64
	Query      string
	Limit      int
}

type Recommend struct {
	Style    string
	Occasion string
	Category string
}

type ShowTrends struct {
	Category      string
	TimeframeDays int
}

type CheckInventory struct {
	ProductID *int64
}

type OrderHistory struct {
	Timeframe     string
	TimeframeDays int
}

// NoAction is terminal: nothing actionable was recognised.
type NoAction struct{}

// Unknown is a parsed command whose action name is outside the vocabulary.
type Unknown struct {
	Name   string
	Params map[string]any
}

func (SearchProducts) Kind() Kind { return KindSearchProducts }
func (Recommend) Kind() Kind      { return KindRecommend }
func (ShowTrends) Kind() Kind     { return KindShowTrends }
func (CheckInventory) Kind() Kind { return KindCheckInventory }
func (OrderHistory) Kind() Kind   { return KindOrderHistory }
func (NoAction) Kind() Kind       { return KindNoAction }
func (Unknown) Kind() Kind        { return KindUnknown }

// IsKnown reports whether name is one of the five model-facing actions.
func IsKnown(name string) bool {
	for _, k := range Known {
		if string(k) == name {
			return true
		}
	}
	return false
}

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Int64 returns a pointer to i.
func Int64(i int64) *int64 { return &i }
