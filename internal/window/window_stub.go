//go:build !ebiten

package window

import "github.com/san-kum/slitsim/internal/sim"

// Run reports that the window needs the ebiten build tag.
func Run(*sim.Loop, Options) error {
	return ErrUnavailable
}
