package main

import (
	"fmt"
	"io"
	"os"

	"fitprofile/internal/profile"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	showUser  uint
	showUnits string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Load and display a user's profile",
	Long:  `Request read access for the profile sample types, load the latest samples and print the Age, Height, Weight and BMI rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showUnits == "" {
			showUnits = cfg.DefaultUnits
		}
		units, err := profile.ParseUnits(showUnits)
		if err != nil {
			return err
		}

		screen := profile.NewScreen(showUser, newStore())
		st := screen.Refresh(cmd.Context())
		printProfile(os.Stdout, showUser, st, units)
		return nil
	},
}

func printProfile(w io.Writer, userID uint, st profile.State, units profile.Units) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(w, "\n%s\n\n", cyan(fmt.Sprintf("=== Profile of user %d ===", userID)))

	for _, row := range profile.Render(st, units) {
		value := gray(row.Value)
		if row.Available {
			value = green(row.Value)
		}
		line := fmt.Sprintf("  %-8s %s", row.Title, value)
		if row.Detail != "" {
			line += " " + yellow("("+row.Detail+")")
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w)
	if st.Status() == profile.StatusUnavailable {
		fmt.Fprintf(w, "  %s %s\n", red("Unavailable:"), st.Reason())
		return
	}
	fmt.Fprintf(w, "  %s %s\n", gray("Loaded at:"), st.LoadedAt().Format("2006-01-02 15:04:05"))
}

func init() {
	showCmd.Flags().UintVar(&showUser, "user", 0, "user ID")
	showCmd.Flags().StringVar(&showUnits, "units", "", "metric or imperial (default from DEFAULT_UNITS)")
	showCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(showCmd)
}
