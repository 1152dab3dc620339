package backup

import "errors"

// ErrInvalidSnapshot is returned when an imported document fails the shape
// or semantic checks. The store is left unchanged in that case.
var ErrInvalidSnapshot = errors.New("invalid backup document")
