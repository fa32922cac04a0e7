// Command toniebox inspects and repairs Tonie file images: read a file's
// header and run its statistics checker, extract one chapter (or the
// whole body) as a standalone Ogg Opus stream, or repair a stale stored
// hash after an external edit.
//
// Building a Tonie file from source audio requires real Opus
// encoder/decoder collaborators, which this module deliberately does not
// implement (see audiosrc.Decoder / opusenc.Encoder) — this command only
// drives the read-side operations that work on any *.taf file as-is.
//
// Usage:
//
//	toniebox -in file.taf -cmd stat
//	toniebox -in file.taf -cmd extract -chapter 1 -out chapter1.opus
//	toniebox -in file.taf -cmd dumpall -out file.opus
//	toniebox -in file.taf -cmd repair -out file.taf
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/toniecodec/tonie"
)

func main() {
	inFile := flag.String("in", "", "Tonie file to read (required)")
	outFile := flag.String("out", "", "Output file (required for extract/dumpall/repair)")
	cmd := flag.String("cmd", "stat", "Operation: stat, extract, dumpall, repair")
	chapter := flag.Int("chapter", 0, "Chapter index (for -cmd extract)")
	flag.Parse()

	if *inFile == "" {
		fmt.Println("Usage: toniebox -in <file.taf> -cmd stat|extract|dumpall|repair [-chapter N] [-out <file>]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	data, err := os.ReadFile(*inFile)
	if err != nil {
		log.Fatalf("read %s: %v", *inFile, err)
	}

	f, err := tonie.Read(data)
	if err != nil {
		log.Fatalf("parse %s: %v", *inFile, err)
	}

	switch *cmd {
	case "stat":
		printStats(f)
	case "extract":
		if *outFile == "" {
			log.Fatal("-out is required for -cmd extract")
		}
		if err := extractChapter(f, *chapter, *outFile); err != nil {
			log.Fatalf("extract chapter %d: %v", *chapter, err)
		}
		fmt.Printf("wrote chapter %d to %s\n", *chapter, *outFile)
	case "dumpall":
		if *outFile == "" {
			log.Fatal("-out is required for -cmd dumpall")
		}
		if err := dumpAll(f, *outFile); err != nil {
			log.Fatalf("dump all: %v", err)
		}
		fmt.Printf("wrote body to %s\n", *outFile)
	case "repair":
		if *outFile == "" {
			log.Fatal("-out is required for -cmd repair")
		}
		f.Repair()
		if err := writeFile(f, *outFile); err != nil {
			log.Fatalf("write %s: %v", *outFile, err)
		}
		fmt.Printf("repaired hash, wrote %s\n", *outFile)
	default:
		log.Fatalf("unknown -cmd %q", *cmd)
	}
}

func printStats(f *tonie.File) {
	fmt.Println("=== Tonie File Info ===")
	fmt.Printf("  Audio ID:       0x%08X\n", f.Header.AudioID)
	fmt.Printf("  Body size:      %d bytes\n", f.Header.AudioLength)
	fmt.Printf("  Usable:         %v\n", f.Header.Usable)
	fmt.Printf("  Hash correct:   %v\n", f.HashCorrect)
	fmt.Printf("  Chapters:       %v\n", f.Header.AudioChapters)
	fmt.Printf("  Segment range:  %d..%d\n", f.Stats.MinSegments, f.Stats.MaxSegments)
	fmt.Printf("  Granule delta:  %d..%d\n", f.Stats.MinGranuleDelta, f.Stats.MaxGranuleDelta)
	fmt.Printf("  Highest granule: %d\n", f.Stats.HighestGranule)
}

func extractChapter(f *tonie.File, i int, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return f.ExtractChapterToOgg(i, out)
}

func dumpAll(f *tonie.File, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return f.DumpAllAsSingleOgg(out)
}

func writeFile(f *tonie.File, path string) error {
	raw, err := f.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
