package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cv2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  export     Export CV files (YAML, JSON or Markdown) to PDF")
	fmt.Fprintln(w, "  serve      Run the HTTP export API")
	fmt.Fprintln(w, "  doctor     Check Chrome and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'cv2pdf help <command>' for details on a specific command.")
}

func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-document render timeout (default 60s)")
	fmt.Fprintln(w, "      --font-timeout <d>    Web font wait before fallback fonts (default 15s)")
	fmt.Fprintln(w, "      --settle-delay <d>    Pause before printing (default 150ms)")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome/Chromium binary")
	fmt.Fprintln(w, "      --no-sandbox          Disable the Chrome sandbox")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --theme <name|path>   Theme name (classic, modern, compact) or file")
	fmt.Fprintln(w, "      --theme-dir <dir>     Directory with custom themes/<name>.yaml")
	fmt.Fprintln(w, "      --photo-root <dir>    Directory of <id>.jpg|jpeg|png|webp photos")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Debug logging and timing")
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cv2pdf export <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export CV files to two-column A4 PDFs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    CV file (.yaml, .yml, .json, .md) or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel exports (0 = auto)")
	fmt.Fprintln(w, "      --html                Also write the HTML print documents")
	fmt.Fprintln(w, "      --html-only           Write the HTML print documents only")
	fmt.Fprintln(w)
	printRenderUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cv2pdf serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the export API:")
	fmt.Fprintln(w, "  POST /v1/exports    JSON CV -> PDF (Accept: application/pdf) or stored result")
	fmt.Fprintln(w, "  POST /v1/previews   JSON CV -> HTML preview")
	fmt.Fprintln(w, "  GET  /healthz       Liveness")
	fmt.Fprintln(w, "  GET  /metrics       Prometheus metrics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent exports (0 = auto)")
	fmt.Fprintln(w, "  -o, --output-dir <dir>    Directory for stored PDFs")
	fmt.Fprintln(w)
	printRenderUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "export":
		printExportUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: cv2pdf doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, sandbox, temp directory, photo root and themes.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: cv2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: cv2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
