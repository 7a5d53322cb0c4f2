package eval

import "errors"

// ErrBadWeights is returned by LoadWeights when the blob's header or
// checksum doesn't match what this build of the evaluator expects.
var ErrBadWeights = errors.New("eval: malformed weights blob")
