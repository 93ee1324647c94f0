// Package errors provides the structured error surface of the behaviour
// runtime.
//
// Errors fall into a small closed set of kinds:
//   - ElementNotFound{selector}: the root container (or another required
//     element) is missing.
//   - ObserverFailed{reason}: the mutation observer could not be created or
//     attached.
//   - JsError{message}: the host environment failed, e.g. no document.
//   - BehaviorFailed: one behaviour failed on one element. These are logged
//     and never propagated out of a scan.
//
// Each kind maps to a registered code with a message, a longer explanation
// and a category:
//   - structural: fatal, returned once from initialisation
//   - element: recovered locally, logged, scanning continues
//   - contract: caller error (invalid geometry, invalid selector)
//   - config: invalid configuration file
//
// # Usage
//
//	err := errors.ElementNotFound("body")
//	if errors.IsStructural(err) {
//	    fmt.Fprintln(os.Stderr, errors.Format(err))
//	}
//
// Kinds compare with the standard library:
//
//	stderrors.Is(err, errors.ErrElementNotFound) // true
package errors
