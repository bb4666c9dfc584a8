package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const defaultName = "AI Learner"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "hello",
		Short: "Print a greeting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printGreeting(cmd.OutOrStdout(), name, time.Now())
		},
	}

	cmd.Flags().StringVar(&name, "name", defaultName, "Name to greet")

	return cmd
}

// greet builds the welcome message for name
func greet(name string) string {
	return fmt.Sprintf("🌟 Hello, %s! Welcome to Go programming. 🌟", name)
}

func printGreeting(w io.Writer, name string, now time.Time) error {
	_, err := fmt.Fprintf(w, "%s\n\n✅ Program finished successfully! Current time: %s\n",
		greet(name), now.Format("2006-01-02 15:04:05"))
	return err
}
