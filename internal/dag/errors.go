package dag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle marks a stalled schedule: some packages remain unpublished but
// none of them has all dependencies satisfied.
var ErrCycle = errors.New("dependency cycle detected")

// CycleError reports the packages that were still unpublished when forward
// progress stopped. The set contains the cycle's members plus anything
// downstream of them; exact cycle membership is not enumerated.
type CycleError struct {
	Remaining []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: no publishable package among [%s]", ErrCycle.Error(), strings.Join(e.Remaining, ", "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }
