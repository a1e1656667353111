package dendrogram

import "errors"

// ErrUnsupportedOrientation reports an orientation other than "top" or
// "left".
var ErrUnsupportedOrientation = errors.New("dendrogram: unsupported orientation")
