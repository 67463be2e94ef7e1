package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/framelog/slp/internal/container"
	"github.com/framelog/slp/internal/parser"
	"github.com/framelog/slp/internal/replay"
	"github.com/framelog/slp/internal/sidecar"
	"github.com/framelog/slp/internal/state"
	"github.com/framelog/slp/internal/worker"
	"github.com/framelog/slp/pkg/core"
)

func openGame(path string) (*core.Game, error) {
	loader, err := replay.NewLoader(Logger)
	if err != nil {
		return nil, err
	}
	return loader.Open(path)
}

func decodeCmd(path string, out io.Writer) error {
	g, err := openGame(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(core.Summarize(path, g))
}

func actionsCmd(ctx context.Context, args []string, out io.Writer) error {
	g, err := openGame(args[0])
	if err != nil {
		return err
	}

	slots := g.Start.ActiveSlots()
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 || n >= core.NumSlots {
			return fmt.Errorf("%w: slot %q", errUsage, args[1])
		}
		slots = []core.Slot{core.Slot(n)}
	}

	actions, err := worker.SegmentGame(ctx, g)
	if err != nil {
		return err
	}
	summary := core.Summarize(args[0], g)
	for _, slot := range slots {
		character := "absent"
		for _, p := range summary.Players {
			if p.Slot == slot {
				character = p.Character.String()
			}
		}
		fmt.Fprintf(out, "%s %s: %d actions\n", slot, character, len(actions[slot]))
		for _, a := range actions[slot] {
			line := a.String()
			if label := state.Label(a); label != "" && a.Kind == core.ActionSpecial {
				line += " " + label
			}
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
	return nil
}

// notesCmd lists the notes of args[0], or with start, length and text
// appends a note and rewrites the file in place.
func notesCmd(args []string, out io.Writer) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading replay: %w", err)
	}
	if container.IsCompressed(data) {
		return fmt.Errorf("%s: notes of compressed replays are read-only; decompress first", path)
	}
	h, err := parser.ParseHeader(data)
	if err != nil {
		return err
	}
	notes, err := sidecar.ReadNotes(data[h.FooterOffset:])
	if err != nil {
		return err
	}

	if len(args) == 1 {
		for i := 0; i < notes.Len(); i++ {
			fmt.Fprintf(out, "%d\t%d\t%s\n", notes.StartFrames[i], notes.FrameLengths[i], notes.Text(i))
		}
		return nil
	}

	start, err := strconv.ParseInt(args[1], 10, 32)
	if err != nil {
		return fmt.Errorf("%w: start %q", errUsage, args[1])
	}
	length, err := strconv.ParseInt(args[2], 10, 32)
	if err != nil || length < 0 {
		return fmt.Errorf("%w: length %q", errUsage, args[2])
	}
	notes.Add(int32(start), int32(length), args[3])

	updated, err := sidecar.EmbedNotes(data, notes)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, updated, 0644); err != nil {
		return fmt.Errorf("writing replay: %w", err)
	}
	fmt.Fprintf(out, "%d notes\n", notes.Len())
	return nil
}

func compressCmd(in, outPath string, out io.Writer) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("reading replay: %w", err)
	}
	if container.IsCompressed(data) {
		return fmt.Errorf("%s is already compressed", in)
	}
	// reject anything that is not a replay before writing
	if _, err := parser.ParseHeader(data); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := container.Compress(f, data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d -> %d bytes\n", outPath, len(data), info.Size())
	return nil
}
