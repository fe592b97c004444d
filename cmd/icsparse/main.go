package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ics "github.com/Ownezx/ics-go"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "icsparse",
		Short:   "Parse and inspect iCalendar files",
		Long:    "icsparse reads RFC 5545 iCalendar files containing a VTODO, VEVENT or VJOURNAL and reports their contents or validation failures.",
		Version: version,
	}

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(showCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openCalendar(path string) (*ics.Calendar, error) {
	if !strings.EqualFold(filepath.Ext(path), ".ics") {
		return nil, fmt.Errorf("%s: not an .ics file", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cal, err := ics.ParseCalendar(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cal, nil
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.ics>...",
		Short: "Check that files parse as valid iCalendar documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed bool
			for _, path := range args {
				if _, err := openCalendar(path); err != nil {
					fmt.Fprintln(os.Stderr, err)
					failed = true
					continue
				}
				fmt.Printf("%s: ok\n", path)
			}
			if failed {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	var reserialize bool
	cmd := &cobra.Command{
		Use:   "show <file.ics>",
		Short: "Print a summary of the calendar's component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := openCalendar(args[0])
			if err != nil {
				return err
			}
			if reserialize {
				fmt.Print(cal.Serialize())
				return nil
			}
			fmt.Printf("PRODID:  %s\n", cal.ProdId)
			fmt.Printf("VERSION: %s\n", cal.Version)
			switch {
			case cal.Todo != nil:
				showTodo(cal.Todo)
			case cal.Event != nil:
				showEvent(cal.Event)
			case cal.Journal != nil:
				showJournal(cal.Journal)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reserialize, "serialize", false, "print the re-serialized calendar instead of a summary")
	return cmd
}

func showTodo(t *ics.VTodo) {
	fmt.Println("component: VTODO")
	fmt.Printf("  UID:     %s\n", t.UID)
	fmt.Printf("  DTSTAMP: %s\n", t.DtStamp.Format(time.RFC3339))
	showOptStr("SUMMARY", t.Summary)
	showOptStr("DESCRIPTION", t.Description)
	if t.Due != nil {
		fmt.Printf("  DUE:     %s\n", t.Due.Format(time.RFC3339))
	}
	if t.Status != nil {
		fmt.Printf("  STATUS:  %s\n", *t.Status)
	}
	if len(t.Categories) > 0 {
		fmt.Printf("  CATEGORIES: %s\n", strings.Join(t.Categories, ", "))
	}
	if t.Alarm != nil {
		fmt.Printf("  alarm: %s at %s\n", t.Alarm.Action, t.Alarm.Trigger)
	}
}

func showEvent(e *ics.VEvent) {
	fmt.Println("component: VEVENT")
	fmt.Printf("  UID:     %s\n", e.UID)
	fmt.Printf("  DTSTAMP: %s\n", e.DtStamp.Format(time.RFC3339))
	showOptStr("SUMMARY", e.Summary)
	showOptStr("LOCATION", e.Location)
	if e.DtStart != nil {
		fmt.Printf("  DTSTART: %s\n", e.DtStart.Format(time.RFC3339))
	}
	if e.Duration != nil {
		fmt.Printf("  DURATION: %s\n", ics.FormatDuration(*e.Duration))
	}
	if e.Status != nil {
		fmt.Printf("  STATUS:  %s\n", *e.Status)
	}
	if e.Alarm != nil {
		fmt.Printf("  alarm: %s at %s\n", e.Alarm.Action, e.Alarm.Trigger)
	}
}

func showJournal(j *ics.VJournal) {
	fmt.Println("component: VJOURNAL")
	fmt.Printf("  UID:     %s\n", j.UID)
	fmt.Printf("  DTSTAMP: %s\n", j.DtStamp.Format(time.RFC3339))
	showOptStr("SUMMARY", j.Summary)
	showOptStr("DESCRIPTION", j.Description)
	if j.Status != nil {
		fmt.Printf("  STATUS:  %s\n", *j.Status)
	}
}

func showOptStr(name string, v *string) {
	if v != nil {
		fmt.Printf("  %s: %s\n", name, *v)
	}
}
