package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dacwave/config"
	"dacwave/core"
	"dacwave/host/audio"
	"dacwave/host/keys"
	"dacwave/host/probe"
	"dacwave/host/scope"
	"dacwave/host/serial"
	"dacwave/host/sim"
	"dacwave/output"
	"dacwave/protocol"
)

const ringSamples = 1024

var (
	configPath = flag.String("config", "", "JSON configuration file (defaults to the lab wiring)")
	device     = flag.String("device", "", "Serial device of a real board; decodes its telemetry instead of simulating")
	playAudio  = flag.Bool("audio", false, "Play the DAC output on the sound card (simulation only)")
	showScope  = flag.Bool("scope", false, "Open an oscilloscope window")
	record     = flag.String("record", "", "Write the simulated board's telemetry stream to a file")
	replay     = flag.String("replay", "", "Decode a recorded telemetry file and print a summary")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	trace      = flag.Bool("trace", false, "Dump the interrupt trace ring on exit")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *device != "" {
		cfg.Serial.Device = *device
	}

	// Raw terminal mode needs explicit carriage returns
	core.SetDebugWriter(func(s string) {
		fmt.Fprint(os.Stderr, s+"\r\n")
	})
	core.SetDebugEnabled(*verbose)
	if *verbose {
		// Interrupt handlers queue their lines instead of writing from the handler
		core.InitAsyncDebug()
	}

	switch {
	case *replay != "":
		err = runReplay(*replay)
	case cfg.Serial.Device != "":
		err = runProbe(cfg)
	default:
		err = runSimulation(cfg)
	}

	core.StopAsyncDebug()
	if *trace {
		core.DumpTrace()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return config.LoadConfig(data)
}

func runSimulation(cfg *config.Config) error {
	board, err := sim.NewBoard(cfg)
	if err != nil {
		return fmt.Errorf("build board: %w", err)
	}
	if err := board.Start(); err != nil {
		return fmt.Errorf("start board: %w", err)
	}
	defer board.Close()

	ring := output.NewRing(ringSamples)
	sinks := output.Tee{ring}

	var recorder *output.FrameSink
	if *record != "" {
		f, err := os.Create(*record)
		if err != nil {
			return fmt.Errorf("create recording: %w", err)
		}
		defer f.Close()
		recorder = output.NewFrameSink(f, cfg.TelemetryBlock)
		recorder.Identify()
		sinks = append(sinks, recorder)
	}

	// The sound card paces the generator when audio is on
	var timer core.TickTimer = core.NopTimer{}
	if !*playAudio {
		timer = core.NewHostTimer(cfg.Tick())
	}
	gen := core.NewGenerator(board.Mode, sinks, timer)
	gen.SetModeChangeHook(func(mode core.Mode, tick core.Tick) {
		if recorder != nil {
			recorder.ReportMode(mode, tick)
		}
		fmt.Fprintf(os.Stderr, "mode %s at tick %d\r\n", mode, tick)
	})

	var stopGenerator func()
	if *playAudio {
		player, err := audio.NewPlayer(cfg.AudioSampleRate, audio.NewStream(gen.Step, 1))
		if err != nil {
			return err
		}
		player.Start()
		stopGenerator = func() { player.Close() }
	} else {
		done := make(chan struct{})
		go func() {
			gen.Run()
			close(done)
		}()
		stopGenerator = func() {
			gen.Stop()
			<-done
		}
	}

	fmt.Fprintf(os.Stderr, "Simulating IRQ %d priority %d; a = sawtooth, b = sine, space = idle, q = quit\n",
		cfg.IRQ, cfg.Priority)

	if *showScope {
		err = scope.Run(scope.New(ring, board, board.Mode.Load), "dacwave (simulated)")
	} else {
		err = waitForKeys(board)
	}

	stopGenerator()
	if recorder != nil {
		recorder.Flush()
	}
	fmt.Fprintf(os.Stderr, "%d interrupts serviced, %d samples\r\n", board.Delivered(), ring.Total())
	return err
}

// waitForKeys forwards keystrokes to the board until the user quits
func waitForKeys(board *sim.Board) error {
	term := keys.NewTerminal(board)
	if err := term.Start(); err != nil {
		return err
	}
	defer term.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-term.Quit():
	case <-sig:
	}
	return nil
}

func runProbe(cfg *config.Config) error {
	port, err := serial.Open(serial.FromConfig(cfg.Serial))
	if err != nil {
		return err
	}

	ring := output.NewRing(ringSamples)
	p := probe.New(port, ring)
	defer p.Close()
	p.OnMode(func(mode core.Mode, tick core.Tick) {
		fmt.Printf("mode %s at tick %d\n", mode, tick)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- p.Run()
	}()

	fmt.Printf("Listening on %s...\n", cfg.Serial.Device)

	if *showScope {
		err = scope.Run(scope.New(ring, nil, p.Mode), "dacwave ("+cfg.Serial.Device+")")
	} else {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sig:
		case err = <-errCh:
		}
	}

	printStats(p.Version(), p.Stats(), ring)
	return err
}

func runReplay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read recording: %w", err)
	}

	ring := output.NewRing(ringSamples)
	p := probe.New(nopPort{}, ring)
	p.OnMode(func(mode core.Mode, tick core.Tick) {
		fmt.Printf("mode %s at tick %d\n", mode, tick)
	})
	p.Feed(data)

	printStats(p.Version(), p.Stats(), ring)
	return nil
}

func printStats(version string, stats protocol.ReceiverStats, ring *output.Ring) {
	fmt.Printf("board version %q: %d frames, %d samples, %d crc errors, %d lost, %d resyncs\n",
		version, stats.Frames, ring.Total(), stats.CRCErrors, stats.LostFrames, stats.Resyncs)
}

type nopPort struct{}

func (nopPort) Read(p []byte) (int, error) { return 0, os.ErrClosed }
func (nopPort) Close() error               { return nil }
