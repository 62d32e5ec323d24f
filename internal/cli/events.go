package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/onboard/internal/observability"
)

var (
	eventsSince time.Duration
	eventsType  string
	eventsLevel string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent pipeline events",
	Long: `Read the .onboard_events.jsonl event log and print recent pipeline
stage events, MCP health checks, and session fallback warnings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if EventLog == nil {
			return fmt.Errorf("event log is not available")
		}

		since := time.Now().Add(-eventsSince)
		events, err := EventLog.Read(observability.EventFilter{
			Since: &since,
			Type:  eventsType,
			Level: eventsLevel,
		})
		if err != nil {
			return fmt.Errorf("reading events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No events in the selected window")
			return nil
		}

		for _, ev := range events {
			line := fmt.Sprintf("%s  %-5s %s", ev.Time.Local().Format("2006-01-02 15:04:05"), ev.Level, ev.Type)
			if step, ok := ev.Data["step"]; ok {
				line += fmt.Sprintf("  step=%v", step)
			}
			if errMsg, ok := ev.Data["error"]; ok {
				line += fmt.Sprintf("  error=%v", errMsg)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().DurationVar(&eventsSince, "since", 24*time.Hour, "how far back to read")
	eventsCmd.Flags().StringVar(&eventsType, "type", "", "filter by event type")
	eventsCmd.Flags().StringVar(&eventsLevel, "level", "", "filter by level (INFO, WARN, ERROR)")
	rootCmd.AddCommand(eventsCmd)
}
