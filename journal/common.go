package journal

// MaxSequenceNumberUint is a type alias for uint, representing the highest sequence number
// contained in a query result.
type MaxSequenceNumberUint = uint
