package ppu

// renderScanline computes all 160 pixels of the current line (p.ly) and
// writes them into the in-progress framebuffer. Background, window and
// sprites are resolved pixel-by-pixel rather than through a fetcher/FIFO,
// which is sufficient for the approximated fixed-duration mode 3 this PPU
// implements (spec.md §4.4).
func (p *PPU) renderScanline() {
	line := p.ly
	if int(line) >= ScreenHeight {
		return
	}

	var bgColourIndex [ScreenWidth]uint8
	windowVisible := p.lcdc&(1<<5) != 0 && line >= p.wy

	for x := 0; x < ScreenWidth; x++ {
		var colourIndex uint8
		if windowVisible && int(x)+7 >= int(p.wx) {
			colourIndex = p.tilePixel(p.windowTileMapBase(), uint8(x)+7-p.wx, p.wly)
		} else if p.lcdc&(1<<0) != 0 {
			colourIndex = p.tilePixel(p.bgTileMapBase(), uint8(x)+p.scx, line+p.scy)
		}
		bgColourIndex[x] = colourIndex
		p.framebuffer[line][x] = applyPalette(p.bgp, colourIndex)
	}

	if windowVisible {
		p.wly++
		p.windowWasVisible = true
	}

	if p.lcdc&(1<<1) != 0 {
		p.renderSprites(line, &bgColourIndex)
	}
}

// bgTileMapBase returns the VRAM address (0x9800 or 0x9C00) of the
// background tile map selected by LCDC.3.
func (p *PPU) bgTileMapBase() uint16 {
	if p.lcdc&(1<<3) != 0 {
		return 0x9C00
	}
	return 0x9800
}

// windowTileMapBase returns the VRAM address of the window tile map
// selected by LCDC.6.
func (p *PPU) windowTileMapBase() uint16 {
	if p.lcdc&(1<<6) != 0 {
		return 0x9C00
	}
	return 0x9800
}

// tilePixel looks up the BG/window colour index at map-relative
// coordinates (mapX, mapY), which wrap modulo 256 (the 32x32-tile map is
// 256x256 pixels).
func (p *PPU) tilePixel(mapBase uint16, mapX, mapY uint8) uint8 {
	tileCol := uint16(mapX / 8)
	tileRow := uint16(mapY / 8)
	tileIndex := p.vram[mapBase-0x8000+tileRow*32+tileCol]

	dataAddr := p.tileDataAddress(tileIndex)
	return p.tileRowColour(dataAddr, mapY%8, mapX%8, false)
}

// tileDataAddress resolves a BG/window tile index to its tile-data offset
// in VRAM, honouring LCDC.4's signed/unsigned addressing modes.
func (p *PPU) tileDataAddress(tileIndex uint8) uint16 {
	if p.lcdc&(1<<4) != 0 {
		return uint16(tileIndex) * 16
	}
	return uint16(0x1000 + int16(int8(tileIndex))*16)
}

// tileRowColour returns the 2-bit colour index of pixel (col, row) within
// the tile stored at vram offset dataAddr, honouring an optional
// horizontal flip (used by sprites).
func (p *PPU) tileRowColour(dataAddr uint16, row, col uint8, xFlip bool) uint8 {
	lo := p.vram[dataAddr+uint16(row)*2]
	hi := p.vram[dataAddr+uint16(row)*2+1]

	bit := 7 - col
	if xFlip {
		bit = col
	}
	lowBit := (lo >> bit) & 1
	highBit := (hi >> bit) & 1
	return highBit<<1 | lowBit
}

// renderSprites draws visible sprites on top of bgColourIndex, respecting
// DMG priority rules: lower OAM X drawn on top (ties by lower OAM index),
// and BG-over-sprite priority when the sprite's attribute bit 7 is set and
// the background pixel is non-zero.
func (p *PPU) renderSprites(line uint8, bgColourIndex *[ScreenWidth]uint8) {
	height := uint8(8)
	if p.lcdc&(1<<2) != 0 {
		height = 16
	}

	for _, s := range p.scanSprites(line) {
		spriteY := s.y - 16
		row := line - spriteY
		if s.attr&(1<<6) != 0 { // Y flip
			row = height - 1 - row
		}

		tile := s.tile
		if height == 16 {
			tile &^= 1
			if row >= 8 {
				tile |= 1
				row -= 8
			}
		}
		dataAddr := uint16(tile) * 16

		palette := p.obp0
		if s.attr&(1<<4) != 0 {
			palette = p.obp1
		}
		behindBG := s.attr&(1<<7) != 0
		xFlip := s.attr&(1<<5) != 0

		spriteX := int(s.x) - 8
		for col := uint8(0); col < 8; col++ {
			screenX := spriteX + int(col)
			if screenX < 0 || screenX >= ScreenWidth {
				continue
			}

			colourIndex := p.tileRowColour(dataAddr, row, col, xFlip)
			if colourIndex == 0 {
				continue // transparent
			}
			if behindBG && bgColourIndex[screenX] != 0 {
				continue
			}
			p.framebuffer[line][screenX] = applyPalette(palette, colourIndex)
		}
	}
}

// applyPalette maps a 2-bit colour index through a BGP/OBP palette
// register to a final 0..3 shade.
func applyPalette(palette, colourIndex uint8) uint8 {
	return (palette >> (colourIndex * 2)) & 0x03
}
