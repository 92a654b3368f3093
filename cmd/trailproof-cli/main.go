// Command trailproof-cli is an operator front-end over a Trailproof
// ledger: verify its chain, inspect recent events, follow a trace, or
// export it to a JSON file. Grounded on the teacher's cmd/vouch-cli —
// same flag.NewFlagSet-per-subcommand dispatch out of main, trimmed to
// the operations a pure audit-trail library exposes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/trailproof/trailproof"
)

const defaultConfigPath = "trailproof-cli.yaml"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "verify":
		verifyCommand(args)
	case "status":
		statusCommand(args)
	case "events":
		eventsCommand(args)
	case "trace":
		traceCommand(args)
	case "export":
		exportCommand(args)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("trailproof-cli - audit trail inspection tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  trailproof-cli verify                 Validate the entire hash chain")
	fmt.Println("  trailproof-cli status                 Show record count and first event")
	fmt.Println("  trailproof-cli events [--limit N]     List recent events (default: 10)")
	fmt.Println("  trailproof-cli trace <trace-id>       Show every event sharing a trace id")
	fmt.Println("  trailproof-cli export <file.json>     Export every event to a JSON file")
	fmt.Println()
	fmt.Println("All commands read ./trailproof-cli.yaml for store and key configuration.")
}

func openLedger() *trailproof.Ledger {
	cfg, err := loadConfig(defaultConfigPath)
	if err != nil {
		fmt.Printf("Failed to load config %s: %v\n", defaultConfigPath, err)
		os.Exit(1)
	}

	var opts []trailproof.Option
	if cfg.Key != "" {
		opts = append(opts, trailproof.WithKey(cfg.Key))
	}
	if cfg.DefaultTenant != "" {
		opts = append(opts, trailproof.WithDefaultTenant(cfg.DefaultTenant))
	}

	ledger, err := trailproof.New(cfg.Store.Kind, cfg.Store.Path, opts...)
	if err != nil {
		fmt.Printf("Failed to open ledger: %v\n", err)
		os.Exit(1)
	}
	return ledger
}

func verifyCommand(_ []string) {
	ledger := openLedger()

	result, err := ledger.Verify()
	if err != nil {
		fmt.Printf("Verification error: %v\n", err)
		os.Exit(1)
	}

	if result.Intact {
		fmt.Printf("chain is intact (%d events verified)\n", result.Total)
		return
	}

	fmt.Printf("chain verification failed\n")
	fmt.Printf("  broken at indices: %v\n", result.Broken)
	os.Exit(1)
}

func statusCommand(_ []string) {
	ledger := openLedger()

	count, err := ledger.Count()
	if err != nil {
		fmt.Printf("Failed to read count: %v\n", err)
		os.Exit(1)
	}

	result, err := ledger.Query(trailproof.Filter{Limit: 1})
	if err != nil {
		fmt.Printf("Failed to read ledger: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Ledger Status")
	fmt.Println("=============")
	fmt.Printf("Total Events: %d\n", count)
	if len(result.Events) > 0 {
		fmt.Printf("First Event:  %s (%s)\n", result.Events[0].EventID, result.Events[0].Timestamp)
	}
}

func eventsCommand(args []string) {
	flags := flag.NewFlagSet("events", flag.ExitOnError)
	limit := flags.Int("limit", 10, "number of events to show")
	_ = flags.Parse(args)

	ledger := openLedger()

	result, err := ledger.Query(trailproof.Filter{Limit: 1 << 30})
	if err != nil {
		fmt.Printf("Failed to read events: %v\n", err)
		os.Exit(1)
	}

	events := result.Events
	if *limit > 0 && len(events) > *limit {
		events = events[len(events)-*limit:]
	}

	fmt.Printf("Recent Events (showing %d)\n", len(events))
	fmt.Println("===========================")
	for _, e := range events {
		fmt.Printf("%s | %-24s | %-16s | actor=%s\n", e.EventID, e.Timestamp, e.EventType, e.ActorID)
	}
}

func traceCommand(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: trailproof-cli trace <trace-id>")
		os.Exit(1)
	}
	traceID := args[0]

	ledger := openLedger()

	events, err := ledger.GetTrace(traceID)
	if err != nil {
		fmt.Printf("Failed to read trace: %v\n", err)
		os.Exit(1)
	}

	if len(events) == 0 {
		fmt.Printf("No events found for trace %s\n", traceID)
		return
	}

	fmt.Printf("Trace: %s\n", traceID)
	fmt.Println("======================================")
	for _, e := range events {
		fmt.Printf("%s | %-24s | %-16s | actor=%s\n", e.EventID, e.Timestamp, e.EventType, e.ActorID)
	}
}

func exportCommand(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: trailproof-cli export <output-file.json>")
		os.Exit(1)
	}
	outputFile := args[0]

	ledger := openLedger()

	result, err := ledger.Query(trailproof.Filter{Limit: 1 << 30})
	if err != nil {
		fmt.Printf("Failed to read events: %v\n", err)
		os.Exit(1)
	}

	if err := writeExport(outputFile, result.Events); err != nil {
		fmt.Printf("Failed to write export: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("exported %d events to %s\n", len(result.Events), outputFile)
}
