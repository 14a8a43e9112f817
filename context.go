package wlcompositor

import (
	"github.com/gogpu/wlcompositor/region"
	"github.com/gogpu/wlcompositor/renderer"
)

// FrameContext offers an embedding compositor a chance to draw directly
// into an output's frame after the scene has been composited, e.g. for
// a cursor or an on-screen-display overlay. It is only valid for the
// duration of the OnRenderOutput callback and must not be retained.
type FrameContext struct {
	frame  renderer.Frame
	width  int32
	height int32
}

func newFrameContext(frame renderer.Frame, width, height int32) *FrameContext {
	return &FrameContext{frame: frame, width: width, height: height}
}

// Size returns the frame's physical pixel dimensions.
func (c *FrameContext) Size() (width, height int32) {
	return c.width, c.height
}

// DrawSolid fills dstRect, clipped to damage, with color. A nil damage
// draws the whole of dstRect.
func (c *FrameContext) DrawSolid(color renderer.Color, dstRect region.Rect, damage region.Region) {
	c.frame.DrawSolid(color, dstRect, damage)
}

// DrawTextured samples srcBufferRect out of texture and draws it into
// dstPhysicalRect, clipped to damage.
func (c *FrameContext) DrawTextured(texture renderer.Texture, srcBufferRect, dstPhysicalRect region.Rect, damage region.Region, alpha float64) {
	c.frame.DrawTextured(texture, srcBufferRect, dstPhysicalRect, damage, 0, alpha)
}
