package neu

import "errors"

// ErrInvalidArgument covers an empty pixel stream or a non-positive
// sample factor passed to Learn.
var ErrInvalidArgument = errors.New("neu: invalid argument")
