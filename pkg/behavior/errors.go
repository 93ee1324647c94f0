package behavior

import (
	canonerrors "github.com/canonui/canon/internal/errors"
)

// Error is the structured error returned by Start and recorded for failed
// attachments.
type Error = canonerrors.BehaviorError

// Sentinels for errors.Is.
var (
	ErrElementNotFound = canonerrors.ErrElementNotFound
	ErrObserverFailed  = canonerrors.ErrObserverFailed
	ErrJsError         = canonerrors.ErrJsError
	ErrBehaviorFailed  = canonerrors.ErrBehaviorFailed
	ErrInvalidSelector = canonerrors.ErrInvalidSelector
)

// IsFatal reports whether err prevents the runtime from working at all.
func IsFatal(err error) bool {
	return canonerrors.IsStructural(err)
}
