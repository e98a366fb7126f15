package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"jot/internal/config"
	"jot/internal/errors"
	"jot/internal/journal"
	"jot/internal/ops"
	"jot/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(svc *ops.Service, db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "jot",
		Usage:   "Workspace scratchpad for focus and interruptions",
		Version: Version,
		Commands: []*cli.Command{
			createCmd(svc),
			findCmd(svc),
			readCmd(svc),
			logCmd(svc),
			focusCmd(svc),
			reviewCmd(svc),
			doneCmd(svc),
			archiveCmd(svc),
			historyCmd(db),
			serveCmd(svc, db),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// createCmd creates the create command.
func createCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a scratchpad for the current workspace",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "location", Aliases: []string{"l"}, Usage: "Directory to create the scratchpad in"},
			&cli.BoolFlag{Name: "overwrite", Usage: "Replace an existing scratchpad"},
		},
		Action: func(c *cli.Context) error {
			output, err := svc.Create(ops.CreateInput{
				Location:  c.String("location"),
				Overwrite: c.Bool("overwrite"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// findCmd creates the find command.
func findCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:  "find",
		Usage: "Locate the scratchpad without reading it",
		Action: func(c *cli.Context) error {
			output, err := svc.Find()
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// readCmd creates the read command.
func readCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:  "read",
		Usage: "Print the scratchpad",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "plain", Aliases: []string{"p"}, Usage: "Print the raw markdown instead of JSON"},
		},
		Action: func(c *cli.Context) error {
			output, err := svc.Read()
			if err != nil {
				return outputError(err)
			}
			if c.Bool("plain") {
				fmt.Print(output.Content)
				return nil
			}
			return outputJSON(output)
		},
	}
}

// logCmd creates the log command.
func logCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:      "log",
		Usage:     "Log an interruption or idea (text as argument or piped via stdin)",
		ArgsUsage: "[note]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Kind of note: idea|bug|feature|question|contact|refactor|task|note"},
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "Priority: high|medium|low"},
		},
		Action: func(c *cli.Context) error {
			note, err := textArg(c, "note")
			if err != nil {
				return outputError(err)
			}
			output, err := svc.LogInterruption(ops.LogInput{
				Note:     note,
				Type:     c.String("type"),
				Priority: c.String("priority"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// focusCmd creates the focus command.
func focusCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:      "focus",
		Usage:     "Set the current focus task",
		ArgsUsage: "[task]",
		Action: func(c *cli.Context) error {
			task, err := textArg(c, "task")
			if err != nil {
				return outputError(err)
			}
			output, err := svc.UpdateFocus(ops.FocusInput{Task: task})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// reviewCmd creates the review command.
func reviewCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:      "review",
		Usage:     "Queue a note to review later",
		ArgsUsage: "[note]",
		Action: func(c *cli.Context) error {
			note, err := textArg(c, "note")
			if err != nil {
				return outputError(err)
			}
			output, err := svc.AddReviewLater(ops.ReviewInput{Note: note})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// doneCmd creates the done command.
func doneCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Mark an item as completed (unmatched text is recorded fresh)",
		ArgsUsage: "[text]",
		Action: func(c *cli.Context) error {
			text, err := textArg(c, "text")
			if err != nil {
				return outputError(err)
			}
			output, err := svc.MarkCompleted(ops.CompleteInput{Text: text})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// archiveCmd creates the archive command.
func archiveCmd(svc *ops.Service) *cli.Command {
	return &cli.Command{
		Name:      "archive",
		Usage:     "Archive or dismiss an item",
		ArgsUsage: "[text]",
		Action: func(c *cli.Context) error {
			text, err := textArg(c, "text")
			if err != nil {
				return outputError(err)
			}
			output, err := svc.ArchiveItem(ops.ArchiveInput{Text: text})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent operations from the activity journal",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Maximum entries to list"},
		},
		Action: func(c *cli.Context) error {
			if db == nil {
				return outputError(errors.NewValidation("journal", "the activity journal is disabled"))
			}
			entries, err := journal.Recent(db, c.Int("limit"))
			if err != nil {
				return outputError(errors.NewIO(err))
			}
			if entries == nil {
				entries = []journal.Entry{}
			}
			return outputJSON(entries)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(svc *ops.Service, db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the read-only web view",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Value: 8787, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(svc, db, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// textArg returns the first positional argument, falling back to piped
// stdin. An empty result is reported against the named field.
func textArg(c *cli.Context, field string) (string, error) {
	if c.NArg() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}
	if stdinHasData() {
		text, err := readStdin()
		if err != nil {
			return "", errors.NewIO(err)
		}
		if text != "" {
			return text, nil
		}
	}
	return "", errors.NewValidation(field, "is required (pass as argument or pipe via stdin)")
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if jotErr, ok := err.(*errors.JotError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", jotErr.Code, jotErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
