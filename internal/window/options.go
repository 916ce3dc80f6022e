// Package window shows the heatmap in an ebiten window. The real
// implementation is only compiled with the ebiten build tag; other builds get
// a Run that returns ErrUnavailable.
package window

import (
	"errors"

	"github.com/san-kum/slitsim/internal/storage"
)

var ErrUnavailable = errors.New("window requires building with -tags ebiten")

type Options struct {
	FPS   int
	Scale int
	Store *storage.Store
}
