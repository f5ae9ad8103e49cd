package light

import "errors"

// ErrInvalidState is the sentinel error for registry ownership violations:
// adding a light that already belongs to a registry, or removing a light that
// does not belong to the calling registry. These are programming-contract
// violations rather than recoverable runtime conditions; Registry.Add and
// Registry.Remove return an error wrapping this sentinel and leave both the
// light and the grid untouched.
var ErrInvalidState = errors.New("light: invalid registry state")
