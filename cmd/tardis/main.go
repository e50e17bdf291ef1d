// Command tardis is the operator CLI around the tardis transport kernel:
// it synthesizes or loads a .tardis-snap plasma snapshot, validates it,
// runs packets through it, and reports the outcome, mirroring the
// teacher's flat os.Args[1] subcommand dispatch (main.go).
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]
	start := time.Now()

	var err error
	switch cmd {
	case "synth":
		err = runSynth(args)
	case "validate":
		err = runValidate(args)
	case "run":
		err = runRun(args)
	case "inspect":
		err = runInspect(args)
	default:
		printHelp()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "[fatal] %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n[sys] Time: %s\n", time.Since(start))
}

func printHelp() {
	fmt.Println("Usage: tardis [synth|validate|run|inspect] [flags]")
	fmt.Println("  synth    -> Generate a synthetic .tardis-snap plasma snapshot")
	fmt.Println("  validate -> Check a snapshot against the §3 contract, without transporting")
	fmt.Println("  run      -> Transport a packet population through a snapshot")
	fmt.Println("  inspect  -> Forensic report on a snapshot file's columns")
}
