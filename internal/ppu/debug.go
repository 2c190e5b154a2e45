package ppu

// TileDebugView decodes all 384 tiles in VRAM into 8x8 colour-index grids,
// for the tile-viewer window in cmd/diskview.
func (p *PPU) TileDebugView() [384][8][8]uint8 {
	var tiles [384][8][8]uint8
	for t := 0; t < 384; t++ {
		base := uint16(t * 16)
		for row := uint8(0); row < 8; row++ {
			for col := uint8(0); col < 8; col++ {
				tiles[t][row][col] = p.tileRowColour(base, row, col, false)
			}
		}
	}
	return tiles
}

// SpriteDebugEntry is one OAM entry as shown in cmd/diskview's OAM viewer.
type SpriteDebugEntry struct {
	Y, X, Tile, Attr uint8
}

// OAMDebugView returns all 40 OAM entries regardless of the PPU's current
// lock state (the debugger is allowed to peek where the CPU is not).
func (p *PPU) OAMDebugView() [40]SpriteDebugEntry {
	var out [40]SpriteDebugEntry
	for i := 0; i < 40; i++ {
		base := i * 4
		out[i] = SpriteDebugEntry{
			Y:    p.oam[base],
			X:    p.oam[base+1],
			Tile: p.oam[base+2],
			Attr: p.oam[base+3],
		}
	}
	return out
}

// Mode returns the PPU's current mode (0-3), for register-inspector views.
func (p *PPU) Mode() uint8 { return p.mode }

// LY returns the current scanline, bypassing the bus read path.
func (p *PPU) LY() uint8 { return p.ly }
