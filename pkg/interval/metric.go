package interval

// Metric describes the discrete, totally ordered, finite key type that ranges
// are defined over. Implementations must have value semantics and be cheap to
// copy.
//
// Next and Prev return the unique successor and predecessor. Next is never
// called on the maximum value and Prev is never called on the minimum value;
// the range algorithms only step a value when a witness on that side exists.
type Metric[M any] interface {
	// Compare gives the result of a 3-way comparison
	// a.Compare(b) < 0 => a < b
	// a.Compare(b) == 0 => a == b
	// a.Compare(b) > 0 => a > b
	Compare(M) int
	Next() M
	Prev() M
	// Min and Max report the least and greatest values of the type. They do
	// not depend on the receiver.
	Min() M
	Max() M
}
