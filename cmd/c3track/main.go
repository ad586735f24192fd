package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"c3track/internal/board"
	"c3track/internal/config"
	"c3track/internal/pipeline"
	"c3track/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "extract:appointments":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 2, "max items per batch")
		boardID := fs.Int64("board", cfg.BoardID, "board id")
		group := fs.String("group", cfg.GroupName, "group title")
		_ = fs.Parse(os.Args[2:])
		cfg.BoardID = *boardID
		cfg.GroupName = *group
		must(cfg.Require("BOARD_API_TOKEN", cfg.BoardAPIToken))
		svc := pipeline.NewService(db, board.NewClient(cfg), cfg)
		result, err := svc.ExtractAppointments(context.Background(), *limit)
		must(err)
		printJSON(result)
	case "extract:po":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		itemIDs := fs.String("itemIds", "", "comma-separated item ids")
		_ = fs.Parse(os.Args[2:])
		ids := splitIDs(*itemIDs)
		if len(ids) == 0 {
			must(fmt.Errorf("--itemIds is required"))
		}
		must(cfg.Require("BOARD_API_TOKEN", cfg.BoardAPIToken))
		svc := pipeline.NewService(db, board.NewClient(cfg), cfg)
		results, err := svc.ExtractPONumbers(context.Background(), ids)
		must(err)
		printJSON(map[string]any{"items": results})
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		trace := fs.String("trace", "", "batch trace id")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*trace) == "" || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--trace and --out are required"))
		}
		outcomes, err := db.ListOutcomesByTrace(*trace)
		must(err)
		if len(outcomes) == 0 {
			must(fmt.Errorf("no records for trace=%s", *trace))
		}
		must(pipeline.ExportOutcomesToXLSX(outcomes, *out))
		fmt.Printf("exported %d records to %s\n", len(outcomes), *out)
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "path to a saved .eml notification")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		result, err := pipeline.ExtractFromEmailFile(*input)
		must(err)
		printJSON(result)
	default:
		usage()
		os.Exit(1)
	}
}

func splitIDs(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printJSON(v any) {
	blob, err := json.MarshalIndent(v, "", "  ")
	must(err)
	fmt.Println(string(blob))
}

func usage() {
	fmt.Println("usage: c3track <command>")
	fmt.Println("commands:")
	fmt.Println("  extract:appointments [--limit=2] [--board=...] [--group=...]")
	fmt.Println("  extract:po --itemIds=1,2,3")
	fmt.Println("  export:xlsx --trace=... --out=./out/records.xlsx")
	fmt.Println("  run --input=./notification.eml")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
