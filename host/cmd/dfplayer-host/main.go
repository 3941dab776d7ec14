package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/shlex"

	"tinydfplayer/config"
	"tinydfplayer/core"
	"tinydfplayer/host/player"
	"tinydfplayer/host/serial"
)

var (
	device     = flag.String("device", "/dev/ttyUSB0", "Serial device path (empty for offline calibration)")
	baud       = flag.Int("baud", 9600, "Baud rate")
	configPath = flag.String("config", "", "Calibration file (JSON)")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
)

func main() {
	flag.Parse()

	fmt.Println("DFPlayer Host - bench tool for the TinyDFPlayer")
	fmt.Println("================================================")
	fmt.Println()

	if *verbose {
		core.SetDebugWriter(func(s string) { fmt.Println("[debug] " + s) })
		core.SetDebugEnabled(true)
	}

	cfg := core.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = *loaded
		fmt.Printf("Loaded calibration from %s\n", *configPath)
	}

	p := player.NewPlayer()
	if *device != "" {
		fmt.Printf("Opening %s at %d baud...\n", *device, *baud)
		serialCfg := serial.DefaultConfig(*device)
		serialCfg.Baud = *baud
		if err := p.ConnectWithConfig(serialCfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to connect: %v\n", err)
			os.Exit(1)
		}
		defer p.Close()
		fmt.Println("Port open. Run 'begin' to reset the module.")
	} else {
		fmt.Println("Offline: only calibration commands are available.")
	}

	// Interactive command loop
	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)
	repl := &session{player: p, cfg: &cfg, screen: player.NewTextScreen()}

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		parts, err := shlex.Split(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if len(parts) == 0 {
			continue
		}

		if parts[0] == "quit" || parts[0] == "exit" || parts[0] == "q" {
			fmt.Println("Goodbye!")
			return
		}

		if err := repl.run(parts[0], parts[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  help              - Show this help message")
	fmt.Println("  begin             - Reset the module and wait until it is online")
	fmt.Println("  info              - List folders and file counts on the card")
	fmt.Println("  play F N          - Play file N of folder F")
	fmt.Println("  vol N             - Set volume (0-30)")
	fmt.Println("  pause / resume    - Pause or resume playback")
	fmt.Println("  sleep             - Put the module to sleep")
	fmt.Println("  events            - Show notifications received from the module")
	fmt.Println("  classify RAW      - Decode a raw button-ladder reading")
	fmt.Println("  pot RAW           - Volume for a raw potentiometer reading")
	fmt.Println("  battery RAW       - Battery voltage and level for a raw bandgap reading")
	fmt.Println("  screen F N V BAT  - Preview the status screen")
	fmt.Println("  quit/exit/q       - Exit the program")
	fmt.Println()
}
