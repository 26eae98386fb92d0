package frameplayer

import "github.com/banshee-data/velocity.report/internal/sim/frameio"

// Observer receives the player's current frame whenever it changes.
type Observer interface {
	OnFrameChanged(frame *frameio.Frame)
}

// ObserverHandle is returned by Player.AddObserver; Drop removes the
// observer from the player's fan-out list. This replaces weak-reference
// observer lifetime management with an explicit handle, since Go has no
// engine-level weak pointers for this purpose.
type ObserverHandle struct {
	player *Player
	id     uint64
}

// Drop unregisters the observer. It is safe to call more than once.
func (h ObserverHandle) Drop() {
	h.player.removeObserver(h.id)
}
