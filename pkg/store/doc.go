// Package store holds per-element reactive state for attached behaviours.
//
// A Store maps an element id to a ComponentState. States are created the
// first time an id is seen and live as long as the Store; lookups are
// idempotent, so every caller asking for the same id shares one state:
//
//	st := store.New()
//	a := st.GetOrCreate("menu")
//	b := st.GetOrCreate("menu")
//	a.Open.SetTrue()
//	b.Open.Get() // true
package store
