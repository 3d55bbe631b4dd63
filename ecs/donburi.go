package ecs

import (
	"github.com/phanxgames/scrub"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FrameEventType is the Donburi event type for scrub frame events.
var FrameEventType = events.NewEventType[scrub.FrameEvent]()

type donburiObserver struct {
	world donburi.World
}

// NewDonburiObserver creates a FrameObserver backed by a Donburi world.
// Events are queued on FrameEventType and delivered by ProcessEvents.
func NewDonburiObserver(world donburi.World) scrub.FrameObserver {
	return &donburiObserver{world: world}
}

func (o *donburiObserver) OnFrame(event scrub.FrameEvent) {
	FrameEventType.Publish(o.world, event)
}
