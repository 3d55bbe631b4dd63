// Package scrub renders scroll-scrubbed image sequences with [Ebitengine].
//
// A pinned section holds the window while the user scrolls through it. The
// scroll distance is converted into progress in [0, 1], which selects one
// still frame of a sequence and drives three overlay layers (a navigation
// bar, a headline and an outro) in opacity and depth.
//
// # Quick start
//
// The simplest way to get started is [Run], which reads frames from disk
// and opens a window:
//
//	cfg := scrub.DefaultConfig() // 207 frames in ./frames/frame_0001.jpg...
//	if err := scrub.Run(cfg, nil); err != nil {
//		log.Fatal(err)
//	}
//
// # Pieces
//
// [FrameLoader] fetches every frame of a [FrameSource] concurrently and
// closes [FrameLoader.Done] once each one has either loaded or failed.
// Failed frames are never retried; drawing them is skipped and the canvas
// keeps the last good frame.
//
// [FrameMapper] maps progress to a frame index. The first 90% of travel
// plays the sequence and the rest holds the last frame.
//
// [Canvas] paints the selected frame with a cover fit onto a [Surface]:
// [EbitenSurface] on the GPU or [RasterSurface] on the CPU.
//
// [Timeline] computes [OverlayState] for each layer as a pure function of
// progress and writes it to explicit [OverlayTarget] references such as
// [Layer].
//
// [Section] ties them together: it registers a pin with a [ScrollEngine]
// ([Scroller] provides smooth scrolling with gween and scrub smoothing with
// harmonica), ignores progress until every frame has settled, and releases
// all registrations on [Section.Teardown].
//
// Configuration is YAML ([LoadConfig]). Debug output goes to stderr when
// [SetDebugMode] is on.
//
// [Ebitengine]: https://ebitengine.org
package scrub
