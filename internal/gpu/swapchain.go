package gpu

import "image"

// SwapChain is a ring of render targets. Present enqueues a snapshot of
// the current back buffer behind all prior work and hands the finished
// image to the present callback, then rotates the ring on the host side.
type SwapChain struct {
	targets []*RenderTarget
	cur     int
	frame   int
	present func(frame int, img *image.NRGBA)
}

// NewSwapChain creates a swap chain of count targets. present may be nil
// when nobody wants the pixels (headless benchmarking, most tests).
func (d *Device) NewSwapChain(w, h, count int, present func(frame int, img *image.NRGBA)) *SwapChain {
	sc := &SwapChain{present: present}
	for i := 0; i < count; i++ {
		sc.targets = append(sc.targets, NewRenderTarget(w, h))
	}
	return sc
}

// CurrentBackBuffer returns the target the next frame should draw into.
func (sc *SwapChain) CurrentBackBuffer() *RenderTarget {
	return sc.targets[sc.cur]
}

// Present enqueues delivery of the current back buffer and advances the
// ring. Safe to call immediately after Execute; the snapshot runs on the
// queue worker after the frame's draws.
func (sc *SwapChain) Present(q *Queue) {
	rt := sc.targets[sc.cur]
	frame := sc.frame
	cb := sc.present
	if cb != nil {
		q.submit(func() {
			img := image.NewNRGBA(image.Rect(0, 0, rt.Width, rt.Height))
			copy(img.Pix, rt.Color)
			cb(frame, img)
		})
	}
	sc.cur = (sc.cur + 1) % len(sc.targets)
	sc.frame++
}
