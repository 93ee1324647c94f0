// Package watch reports changes to fixture files so `canon watch` can
// re-apply them to a live document.
//
// Events from fsnotify are coalesced per path: a burst of writes to one
// file produces a single Change once the debounce period has passed
// without further events.
package watch
