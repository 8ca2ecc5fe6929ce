package colortable

import "errors"

// ErrInvalidArgument is returned when CalcColorTable is called with
// decFactor < 1. CutBits never returns it: out-of-range bit counts
// make CutBits a silent no-op.
var ErrInvalidArgument = errors.New("colortable: invalid argument")
