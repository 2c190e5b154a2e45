// Command rustyboy is the SDL2 front-end: it loads a ROM, drives the core
// one frame at a time, and presents the framebuffer in a window, pumping
// keyboard input into the joypad.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/rustyboy-go/rustyboy/internal/disasm"
	"github.com/rustyboy-go/rustyboy/internal/gameboy"
	"github.com/rustyboy-go/rustyboy/internal/joypad"
	"github.com/rustyboy-go/rustyboy/internal/persist"
	"github.com/rustyboy-go/rustyboy/internal/romfile"
	"github.com/rustyboy-go/rustyboy/pkg/log"
)

const (
	scale   = 3
	screenW = 160
	screenH = 144
	windowW = screenW * scale
	windowH = screenH * scale
)

// palette maps the core's 2-bit shade indices to an RGBA byte quadruple,
// the classic DMG four-shade green palette.
var palette = [4][4]byte{
	{0x9B, 0xBC, 0x0F, 0xFF},
	{0x8B, 0xAC, 0x0F, 0xFF},
	{0x30, 0x62, 0x30, 0xFF},
	{0x0F, 0x38, 0x0F, 0xFF},
}

// keymap binds SDL scancodes to joypad buttons.
var keymap = map[sdl.Scancode]joypad.Button{
	sdl.SCANCODE_Z:      joypad.ButtonA,
	sdl.SCANCODE_X:      joypad.ButtonB,
	sdl.SCANCODE_RSHIFT: joypad.ButtonSelect,
	sdl.SCANCODE_RETURN: joypad.ButtonStart,
	sdl.SCANCODE_RIGHT:  joypad.ButtonRight,
	sdl.SCANCODE_LEFT:   joypad.ButtonLeft,
	sdl.SCANCODE_UP:     joypad.ButtonUp,
	sdl.SCANCODE_DOWN:   joypad.ButtonDown,
}

func main() {
	romPath := flag.String("rom", "", "path to a .gb/.gbc ROM, or a .zip/.7z archive containing one")
	saveDir := flag.String("save-dir", ".", "directory to read/write battery-backed save files")
	disasmFlag := flag.Bool("disasm", false, "disassemble the ROM's entry point instead of running it")
	speed := flag.Float64("speed", 1.0, "emulation speed multiplier (1.0 = native)")
	traceFlag := flag.Bool("trace", false, "log every CPU instruction as it executes (Debugf level)")
	flag.Parse()

	var logOpts []log.Option
	if *traceFlag {
		logOpts = append(logOpts, log.Verbose())
	}
	logger := log.New(logOpts...)

	if *romPath == "" {
		logger.Errorf("no -rom specified")
		os.Exit(1)
	}

	rom, err := romfile.Load(*romPath)
	if err != nil {
		logger.Errorf("loading rom: %v", err)
		os.Exit(1)
	}

	if *disasmFlag {
		for _, line := range disasm.Range(func(a uint16) uint8 {
			if int(a) < len(rom) {
				return rom[a]
			}
			return 0xFF
		}, 0x0100, 64) {
			fmt.Println(line)
		}
		return
	}

	savePath := filepath.Join(*saveDir, persist.KeyFor(rom)+".sav")
	var opts []gameboy.Option
	opts = append(opts, gameboy.WithLogger(logger), gameboy.WithTrace(*traceFlag))
	if sram, err := persist.Load(savePath); err == nil {
		opts = append(opts, gameboy.WithSRAM(sram))
	}

	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		logger.Errorf("loading cartridge: %v", err)
		os.Exit(1)
	}

	if err := run(gb, savePath, *speed); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(gb *gameboy.GameBoy, savePath string, speed float64) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("rustyboy", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		windowW, windowH, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA32, sdl.TEXTUREACCESS_STREAMING, screenW, screenH)
	if err != nil {
		return fmt.Errorf("create texture: %w", err)
	}
	defer texture.Destroy()

	pixels := make([]byte, screenW*screenH*4)

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				button, ok := keymap[e.Keysym.Scancode]
				if !ok {
					continue
				}
				if e.State == sdl.PRESSED {
					gb.PressButton(button)
				} else {
					gb.ReleaseButton(button)
				}
			}
		}

		frame := gb.RunFrame()
		for y := 0; y < screenH; y++ {
			for x := 0; x < screenW; x++ {
				rgba := palette[frame[y][x]]
				offset := (y*screenW + x) * 4
				copy(pixels[offset:offset+4], rgba[:])
			}
		}

		texture.Update(nil, pixels, screenW*4)
		renderer.Copy(texture, nil, nil)
		renderer.Present()
		_ = speed // reserved for a future frame-pacing throttle
	}

	if sram := gb.SRAM(); sram != nil {
		if err := persist.Save(savePath, sram); err != nil {
			return fmt.Errorf("saving sram: %w", err)
		}
	}
	return nil
}
