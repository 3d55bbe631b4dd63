// Package ecs provides ECS adapters for scrub's frame events.
//
// The primary adapter is [NewDonburiObserver], which publishes every applied
// section update (progress, frame index, whether a frame was drawn) into a
// [Donburi] world as a typed event. Subscribe to [FrameEventType] in your ECS
// systems to react to scroll position, for example to trigger sound cues or
// spawn effects at specific frames.
//
// Usage:
//
//	obs := ecs.NewDonburiObserver(world)
//	section.SetObserver(obs)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
