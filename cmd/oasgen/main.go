package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasgen"
	"github.com/erraggy/oasgen/cmd/oasgen/commands"
	"github.com/erraggy/oasgen/internal/cliutil"
)

var commandNames = []string{"generate", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasgen %s\n", oasgen.BuildInfo())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "generate":
		err = commands.HandleGenerate(os.Args[2:])
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = commands.HandleMCP(ctx, os.Args[2:])
		stop()
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when
// none is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	usage := `oasgen - TypeScript code generation from schema graphs

Usage:
  oasgen <command> [options]

Commands:
  generate    Generate types, validators and transformers from a schema graph
  mcp         Start an MCP server on stdio
  version     Show version information
  help        Show this help message

Examples:
  oasgen generate -o ./client graph.yaml
  oasgen generate --flavor typescript,zod -o ./client graph.yaml
  cat graph.yaml | oasgen generate --format json -o ./client -
  oasgen mcp

Run 'oasgen <command> --help' for more information on a command.
`
	cliutil.Writef(os.Stdout, "%s", usage)
}
