package linkage

import "errors"

// ErrInvalidInput reports data unsuitable for clustering: fewer than two
// observations, zero features, non-finite values, or an unsupported
// method/metric combination.
var ErrInvalidInput = errors.New("linkage: invalid input")
