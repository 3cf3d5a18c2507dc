// Package easel is a retained-mode renderer that paints trees of
// rectangles with text onto a 2D raster surface, driven by a reconciler.
//
// Element trees are described with [reconciler.CreateElement] and handed
// to [Render] together with a [Surface]. The reconciler diffs each render
// against the previous one for the same surface and applies the minimal set
// of mutations to long-lived drawables. Drawables never paint on their own:
// every mutation invalidates the surface's [Root], which repaints the whole
// surface once on the next frame.
//
// # Quick start
//
//	loop := easel.NewLoop(640, 480)
//	r := easel.NewRenderer(easel.WithScheduler(loop.Frames()))
//
//	el := reconciler.CreateElement("rectangle", easel.Props{
//		"style": easel.Style{Left: 10, Top: 5, Width: 96, Height: 96, Padding: 20, BackgroundColor: "tomato"},
//	}, "Hello")
//	if err := r.Render(el, loop.Surface(), nil); err != nil {
//		log.Fatal(err)
//	}
//	easel.Run(loop, easel.RunConfig{Title: "easel"})
//
// For headless rendering use the ggcanvas package, or a [RecordingCanvas]
// in tests, and tick a [FrameQueue] by hand.
//
// # Primitives
//
// The only built-in primitive is "rectangle" ([Rectangle]). Its style
// places a filled box at (left, top) and draws its children, which must be
// strings or numbers, as one line of text at
// (left+padding, top+padding+fontSize). Further primitives are added with
// [RegisterPrimitive].
//
// # Frames
//
// Roots schedule repaints through a [FrameScheduler]. Any number of
// mutations within one frame produce a single clear-and-repaint.
// [FrameQueue] is the scheduler used everywhere; the ebiten [Loop] ticks
// its queue once per update.
//
// # Surfaces
//
// A renderer keeps a Root per surface only while the surface is reachable.
// Dropping the last reference to a surface releases its Root and
// drawables.
//
// # Logging
//
// easel is silent by default. Call [SetLogger] to receive repaint
// statistics at debug level and warnings about unparsable colors or
// unknown fonts.
package easel
