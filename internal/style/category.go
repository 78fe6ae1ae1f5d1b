// package style implements the Rule Classifier, Text Rewriter glue, and
// Transformation Engine (components A, B/D glue) of the migration core.
package style

// Category is the target sheet a Style Block is routed to.
type Category int

const (
	Interior Category = iota
	Detail
	Results
)

func (c Category) String() string {
	switch c {
	case Detail:
		return "detail"
	case Results:
		return "results"
	default:
		return "interior"
	}
}
