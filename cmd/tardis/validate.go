package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jvshields/tardis/snapshotio"
)

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	path := fs.String("snap", "", "path to a .tardis-snap file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("validate requires -snap")
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	snap, err := snapshotio.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", *path, err)
	}

	fmt.Printf(">>> VALIDATE: %s (%d shells, %d lines, %s)\n", *path, snap.NShells, snap.NLines, snap.LineInteraction)
	if err := snap.Validate(); err != nil {
		fmt.Println(err)
		return err
	}
	fmt.Println("OK: no contract violations")
	return nil
}
