// httpshare — share one file with anyone who has a browser.
//
// Build:   go build -o httpshare .
// Usage:   httpshare report.pdf
//
//	httpshare -k -p 9000 report.pdf
//	httpshare -q --history transfers.db report.pdf
//	httpshare --history transfers.db --list
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// CLI / ENTRY POINT
// ─────────────────────────────────────────────────────────────────────────────

func usage(w io.Writer, prog string) {
	fmt.Fprintf(w, `Usage : %s [-h | --help] [-k] [-p Port] [-q] [--history DB] File_To_Send
        %s --history DB --list
  -h,--help : display this help.
  -k : keep serving the same file, do not exit after the first download. Use Ctrl+C to quit.
  -p Port : specify the port the server will bind to (default %d).
  -q : also print the download URL as a QR code.
  --history DB : record every transfer in the SQLite database DB.
  --list : print the transfers recorded in DB and exit.
  File_To_Send : the file the server will send.
`, prog, prog, defaultPort)
}

func banner() {
	fmt.Println("+--------------------------------+")
	fmt.Println("|       HTTP file sharing        |")
	fmt.Println("+--------------------------------+")
	fmt.Println()
}

func main() {
	os.Exit(run(os.Args[0], os.Args[1:]))
}

func run(prog string, args []string) int {
	banner()

	cfg, err := parseArgs(args)
	if err == nil && cfg.Help {
		usage(os.Stdout, prog)
		return 0
	}
	if err == nil {
		err = cfg.validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error : %v.\n", err)
		usage(os.Stderr, prog)
		return 1
	}

	var history HistoryRepository
	if cfg.HistoryPath != "" {
		h, err := NewSQLiteHistory(cfg.HistoryPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error : history database '%s': %v.\n", cfg.HistoryPath, err)
			return 1
		}
		defer h.Close()
		history = h
	}

	if cfg.ListHistory {
		if err := listHistory(os.Stdout, history); err != nil {
			fmt.Fprintf(os.Stderr, "Error : %v.\n", err)
			return 1
		}
		return 0
	}

	ep, err := createServer(cfg.Port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error : %v.\n", err)
		return 1
	}

	fi, err := os.Stat(cfg.Path)
	if err == nil {
		fmt.Printf("Sharing '%s' (%s) on port %d\n", displayName(cfg.Path), strings.TrimSpace(fmtSize(float64(fi.Size()))), ep.Port)
	}

	metrics := NewMetrics()
	srv := NewServer(cfg, ep, metrics, history)
	defer srv.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			fmt.Println("\nshutting down server...")
			srv.Close()
		}
	}()

	t0 := time.Now()
	err = srv.Serve()
	if cfg.KeepServing || errors.Is(err, ErrServerClosed) {
		printSummary(os.Stdout, metrics.Snapshot(), time.Since(t0))
	}

	switch {
	case err == nil, errors.Is(err, ErrServerClosed):
		return 0
	default:
		if isFatal(err) {
			fmt.Fprintf(os.Stderr, "Error : %v.\n", err)
		}
		return 1
	}
}

func printSummary(w io.Writer, snap map[string]int64, elapsed time.Duration) {
	fmt.Fprintf(w, "%d download(s) completed, %d aborted, %s sent in %s\n",
		snap["completed"], snap["aborted"],
		strings.TrimSpace(fmtSize(float64(snap["bytes_sent"]))), fmtTime(elapsed.Seconds()))
}

func listHistory(w io.Writer, history HistoryRepository) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	recs, err := history.ListTransfers(ctx, 0)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(w, "No transfers recorded.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tFILE\tCLIENT\tSENT\tSTATUS\tREASON")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%s\t%s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.FileName, r.ClientAddr,
			r.BytesSent, r.FileSize, r.Status, r.FailureReason)
	}
	return tw.Flush()
}
