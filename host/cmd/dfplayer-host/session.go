package main

import (
	"fmt"
	"os"
	"strconv"

	"tinydfplayer/core"
	"tinydfplayer/host/player"
)

// session dispatches REPL commands
type session struct {
	player *player.Player
	cfg    *core.Config
	screen *player.TextScreen
	render core.Presenter
}

func (s *session) run(cmd string, args []string) error {
	switch cmd {
	case "help", "?":
		printHelp()
		return nil
	case "classify":
		raw, err := parseArgs(args, 1, core.AnalogMax)
		if err != nil {
			return err
		}
		fmt.Printf("%d -> %s\n", raw[0], core.ClassifyButton(uint16(raw[0]), s.cfg))
		return nil
	case "pot":
		raw, err := parseArgs(args, 1, core.AnalogMax)
		if err != nil {
			return err
		}
		fmt.Printf("%d -> volume %d\n", raw[0], core.VolumeLevel(uint16(raw[0]), s.cfg))
		return nil
	case "battery":
		raw, err := parseArgs(args, 1, core.AnalogMax)
		if err != nil {
			return err
		}
		mv := core.BatteryMillivolts(uint16(raw[0]), s.cfg)
		fmt.Printf("%d -> %d mV, %d%%\n", raw[0], mv, core.BatteryPercent(mv, s.cfg))
		return nil
	case "screen":
		return s.preview(args)
	}

	if !s.player.IsConnected() {
		return fmt.Errorf("%s needs a module connection", cmd)
	}
	dev := s.player.Device()

	switch cmd {
	case "begin":
		if err := s.player.Begin(); err != nil {
			return err
		}
		fmt.Println("Module online")
	case "info":
		if _, err := s.player.RetrieveCardInfo(); err != nil {
			return err
		}
		s.player.PrintCardInfo(os.Stdout)
	case "play":
		v, err := parseArgs(args, 2, 255)
		if err != nil {
			return err
		}
		return dev.PlayFolder(uint8(v[0]), uint8(v[1]))
	case "vol":
		v, err := parseArgs(args, 1, 30)
		if err != nil {
			return err
		}
		return dev.SetVolume(uint8(v[0]))
	case "pause":
		return dev.Pause()
	case "resume":
		return dev.Resume()
	case "sleep":
		return dev.Sleep()
	case "events":
		events := s.player.DrainEvents()
		if len(events) == 0 {
			fmt.Println("No events")
		}
		for _, ev := range events {
			fmt.Printf("  %s (%d)\n", player.EventName(ev.Type), ev.Value)
		}
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
	return nil
}

// preview renders the status screen for folder, file, volume and battery level
func (s *session) preview(args []string) error {
	v, err := parseArgs(args, 4, 255)
	if err != nil {
		return err
	}

	state := core.PlayerState{
		Session: core.PlayerSession{Folder: uint8(v[0]), File: uint8(v[1]), Volume: uint8(v[2])},
		Battery: core.BatteryState{LevelPercent: uint8(v[3])},
	}
	if info := s.player.GetCardInfo(); info != nil {
		state.FolderCount = info.Folders
		if f := int(state.Session.Folder); f >= 1 && f <= len(info.Files) {
			state.FileCount = info.Files[f-1]
		}
	}

	if err := s.render.Render(s.screen, &state, s.cfg); err != nil {
		return err
	}
	s.screen.Print(os.Stdout)
	return nil
}

// parseArgs parses exactly n unsigned arguments no larger than max
func parseArgs(args []string, n int, max uint64) ([]uint64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d arguments, got %d", n, len(args))
	}

	values := make([]uint64, n)
	for i, a := range args {
		v, err := strconv.ParseUint(a, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("bad argument %q: %w", a, err)
		}
		if v > max {
			return nil, fmt.Errorf("argument %d out of range (max %d)", v, max)
		}
		values[i] = v
	}
	return values, nil
}
