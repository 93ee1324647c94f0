package standard

import (
	"github.com/canonui/canon/pkg/behavior"
	"github.com/canonui/canon/pkg/reactive"
)

// All returns a fresh instance of every standard behaviour.
func All() []behavior.Behavior {
	return []behavior.Behavior{
		Modal(),
		Dropdown(),
		Popover(),
		Collapsible(),
		Slider(),
		Resizable(),
		Selectable(),
		ChartSync(),
		TableSync(),
		VirtualList(),
	}
}

// Register installs All on reg. Disposing the returned group unregisters
// every one of them.
func Register(reg *behavior.Registry) *reactive.Group {
	g := &reactive.Group{}
	for _, b := range All() {
		g.Add(reg.Register(b))
	}
	return g
}
