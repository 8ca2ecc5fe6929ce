package div

import "errors"

// ErrInvalidArgument covers bad num_bits, k < 1, or an empty color
// stream — a fatal, no-partial-output condition.
var ErrInvalidArgument = errors.New("div: invalid argument")

// ErrInternal signals a cluster-compaction size mismatch: the
// partitioning bookkeeping produced a count that disagrees with the
// cluster's recorded size. This indicates a bug in the split loop,
// never bad input, and no partial palette is returned.
var ErrInternal = errors.New("div: internal cluster size mismatch")
