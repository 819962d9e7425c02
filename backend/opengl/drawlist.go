package opengl

import "sync"

// Vertex is the GPU vertex layout: position, glyph texture coordinate and a
// packed RGBA color. A negative TexCoord.X marks an untextured vertex.
type Vertex struct {
	Pos      [2]float32
	TexCoord [2]float32
	Color    uint32
}

// DrawCmd is one scissored draw call.
type DrawCmd struct {
	ClipRect     [4]float32 // x1, y1, x2, y2 in window coordinates
	VertexOffset uint32
	IndexOffset  uint32
	ElemCount    uint32
}

// RGBA packs a color in the byte order the vertex shader expects.
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 512),
			IdxBuffer: make([]uint16, 0, 768),
			CmdBuffer: make([]DrawCmd, 0, 4),
		}
	},
}

// AcquireDrawList gets a cleared DrawList from the pool.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList returns a DrawList to the pool.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		drawListPool.Put(dl)
	}
}

// DrawList accumulates the quads of one frame. A new command starts at
// every clip change; indices are relative to the command's vertex offset.
type DrawList struct {
	CmdBuffer []DrawCmd
	VtxBuffer []Vertex
	IdxBuffer []uint16

	clipStack [][4]float32
	clip      [4]float32
}

// Clear resets the list, keeping its capacity.
func (dl *DrawList) Clear() {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.clip = [4]float32{-1e9, -1e9, 1e9, 1e9}
}

// PushClipRect clips subsequent quads to the rectangle.
func (dl *DrawList) PushClipRect(x1, y1, x2, y2 float32) {
	dl.clipStack = append(dl.clipStack, dl.clip)
	dl.clip = [4]float32{x1, y1, x2, y2}
	dl.split()
}

// PopClipRect restores the previous clip rectangle.
func (dl *DrawList) PopClipRect() {
	n := len(dl.clipStack)
	if n == 0 {
		return
	}
	dl.clip = dl.clipStack[n-1]
	dl.clipStack = dl.clipStack[:n-1]
	dl.split()
}

// AddRect draws a filled rectangle. Fully transparent colors are skipped.
func (dl *DrawList) AddRect(x, y, w, h float32, color uint32) {
	if color&0xFF000000 == 0 || w <= 0 || h <= 0 {
		return
	}
	dl.addQuad(x, y, w, h, [4]float32{-1, -1, -1, -1}, color)
}

// AddGlyph draws the glyph texture region u0..u1 (v spans the full height).
func (dl *DrawList) AddGlyph(x, y, w, h, u0, u1 float32, color uint32) {
	dl.addQuad(x, y, w, h, [4]float32{u0, 0, u1, 1}, color)
}

// Finalize closes the last command.
func (dl *DrawList) Finalize() {
	if n := len(dl.CmdBuffer); n > 0 {
		last := &dl.CmdBuffer[n-1]
		last.ElemCount = uint32(len(dl.IdxBuffer)) - last.IndexOffset
	}
}

func (dl *DrawList) addQuad(x, y, w, h float32, uv [4]float32, color uint32) {
	if len(dl.CmdBuffer) == 0 || dl.full() {
		dl.split()
	}
	base := uint16(uint32(len(dl.VtxBuffer)) - dl.CmdBuffer[len(dl.CmdBuffer)-1].VertexOffset)

	dl.VtxBuffer = append(dl.VtxBuffer,
		Vertex{Pos: [2]float32{x, y}, TexCoord: [2]float32{uv[0], uv[1]}, Color: color},
		Vertex{Pos: [2]float32{x + w, y}, TexCoord: [2]float32{uv[2], uv[1]}, Color: color},
		Vertex{Pos: [2]float32{x + w, y + h}, TexCoord: [2]float32{uv[2], uv[3]}, Color: color},
		Vertex{Pos: [2]float32{x, y + h}, TexCoord: [2]float32{uv[0], uv[3]}, Color: color},
	)
	dl.IdxBuffer = append(dl.IdxBuffer, base, base+1, base+2, base, base+2, base+3)
}

// full reports whether the current command is out of 16-bit indices.
func (dl *DrawList) full() bool {
	last := dl.CmdBuffer[len(dl.CmdBuffer)-1]
	return uint32(len(dl.VtxBuffer))-last.VertexOffset+4 > 0xFFFF
}

func (dl *DrawList) split() {
	dl.Finalize()
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		ClipRect:     dl.clip,
		VertexOffset: uint32(len(dl.VtxBuffer)),
		IndexOffset:  uint32(len(dl.IdxBuffer)),
	})
}
