package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"neoshelf/app"
	"neoshelf/config"
	"neoshelf/gesture"
	"neoshelf/log"
	"neoshelf/mel"
	"neoshelf/shelf"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "neoshelf",
	Short: "neoshelf is a terminal shelf of command buttons",
	Long: `neoshelf keeps shelves of command buttons imported from legacy MEL
shelf files. Click a button to run its command, shift-click for its
secondary command, hold for its submenu, right-click for the manager.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Initialize()
		defer log.Close()

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("neoshelf must be run in a terminal")
		}
		return app.Run(context.Background())
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import legacy shelf files into the catalogue",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Initialize()
		defer log.Close()

		cat, err := openCatalogue()
		if err != nil {
			return err
		}
		imported, failures := app.ImportFiles(cmd.Context(), cat, args)
		for _, name := range imported {
			fmt.Printf("imported %s\n", name)
		}
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "failed: %v\n", f)
		}
		if len(failures) > 0 {
			return fmt.Errorf("%d of %d files failed to import", len(failures), len(args))
		}
		return nil
	},
}

var (
	addKind       string
	addLabel      string
	addAnnotation string
)

var addCmd = &cobra.Command{
	Use:   "add <shelf> <name> <command>",
	Short: "Add a command button to a shelf",
	Long: `Adds a button to the named shelf, creating the shelf if needed. The
command language is detected from the code unless --kind says otherwise.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Initialize()
		defer log.Close()

		cat, err := openCatalogue()
		if err != nil {
			return err
		}
		btn := shelf.DefaultButton()
		btn.Name = args[1]
		btn.Command = args[2]
		btn.Label = addLabel
		btn.Annotation = addAnnotation
		switch strings.ToLower(addKind) {
		case "auto":
			btn.Kind = mel.DetectKind(btn.Command)
		case "mel", "python":
			btn.Kind = shelf.ParseCommandKind(addKind)
		default:
			return fmt.Errorf("unknown kind %q (want auto, mel or python)", addKind)
		}
		btn.ShiftKind = btn.Kind
		if err := cat.AddItem(args[0], btn, -1); err != nil {
			return err
		}
		fmt.Printf("added %s to %s as %s\n", btn.Name, args[0], btn.Kind)
		return nil
	},
}

var (
	editName         string
	editLabel        string
	editCommand      string
	editShiftCommand string
	editAnnotation   string
	editKind         string
)

var editCmd = &cobra.Command{
	Use:   "edit <shelf> <index>",
	Short: "Edit a button on a shelf",
	Long: `Rewrites fields of the button at the given position (as printed by
'neoshelf shelves', counting from 0). Only the flags given change; --kind
auto re-detects the language from the command text.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Initialize()
		defer log.Close()

		cat, err := openCatalogue()
		if err != nil {
			return err
		}
		idx, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("index must be a number: %v", err)
		}
		sh := cat.Get(args[0])
		if sh == nil {
			return fmt.Errorf("shelf %q does not exist", args[0])
		}
		if idx < 0 || idx >= len(sh.Items) {
			return fmt.Errorf("item index %d out of range", idx)
		}
		btn, ok := sh.Items[idx].(*shelf.Button)
		if !ok {
			return fmt.Errorf("item %d is a separator", idx)
		}

		edited := *btn
		if cmd.Flags().Changed("name") {
			edited.Name = editName
		}
		if cmd.Flags().Changed("label") {
			edited.Label = editLabel
		}
		if cmd.Flags().Changed("command") {
			edited.Command = editCommand
		}
		if cmd.Flags().Changed("shift-command") {
			edited.ShiftCommand = editShiftCommand
		}
		if cmd.Flags().Changed("annotation") {
			edited.Annotation = editAnnotation
		}
		if cmd.Flags().Changed("kind") {
			switch strings.ToLower(editKind) {
			case "auto":
				edited.Kind = mel.DetectKind(edited.Command)
			case "mel", "python":
				edited.Kind = shelf.ParseCommandKind(editKind)
			default:
				return fmt.Errorf("unknown kind %q (want auto, mel or python)", editKind)
			}
			edited.ShiftKind = edited.Kind
		}
		return cat.UpdateItem(args[0], idx, &edited)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <shelf> <file>",
	Short: "Export a shelf back to the legacy format",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Initialize()
		defer log.Close()

		cat, err := openCatalogue()
		if err != nil {
			return err
		}
		return app.ExportShelf(cat, args[0], args[1])
	},
}

var shelvesCmd = &cobra.Command{
	Use:   "shelves",
	Short: "List the shelves in the catalogue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Initialize()
		defer log.Close()

		cat, err := openCatalogue()
		if err != nil {
			return err
		}
		activeName := ""
		if active := cat.ActiveShelf(); active != nil {
			activeName = active.Name
		}
		for _, name := range cat.Names() {
			marker := " "
			if name == activeName {
				marker = "*"
			}
			sh := cat.Get(name)
			fmt.Printf("%s %s (%d items)\n", marker, name, len(sh.Items))
		}
		return nil
	},
}

var triggersCmd = &cobra.Command{
	Use:   "triggers [action trigger]",
	Short: "Show or change the gesture bindings",
	Long: `With no arguments, prints the current action to trigger bindings.
With an action and a trigger, rebinds the action; a trigger already owned
by another action is taken from it, and the change is only saved once every
action has a distinct trigger.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Initialize()
		defer log.Close()

		state := config.LoadState()
		store := gesture.NewStore(state)
		m := store.Load()

		if len(args) == 0 {
			for _, action := range gesture.Actions() {
				fmt.Printf("%-20s %s\n", action, m.Get(action))
			}
			return nil
		}
		if len(args) != 2 {
			return fmt.Errorf("need both an action and a trigger")
		}
		action, err := gesture.ParseAction(args[0])
		if err != nil {
			return err
		}
		trigger, err := gesture.ParseTrigger(args[1])
		if err != nil {
			return err
		}
		m.Set(action, trigger)
		if err := store.Save(m); err != nil {
			return fmt.Errorf("%w; bind the displaced action first:\n%s", err, formatTriggers(m))
		}
		return nil
	},
}

var resetTriggersCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default gesture bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Initialize()
		defer log.Close()

		state := config.LoadState()
		return gesture.NewStore(state).Save(gesture.DefaultTriggerMap())
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every shelf from the catalogue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Initialize()
		defer log.Close()

		state := config.LoadState()
		if err := state.DeleteAllShelves(); err != nil {
			return err
		}
		fmt.Println("All shelves deleted")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of neoshelf",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("neoshelf version %s\n", version)
	},
}

func openCatalogue() (*shelf.Catalogue, error) {
	state := config.LoadState()
	cat, err := shelf.NewCatalogue(state, state)
	if err != nil {
		return nil, fmt.Errorf("failed to load shelves: %w", err)
	}
	return cat, nil
}

func formatTriggers(m gesture.TriggerMap) string {
	var b strings.Builder
	for _, action := range gesture.Actions() {
		fmt.Fprintf(&b, "  %-20s %s\n", action, m.Get(action))
	}
	return strings.TrimRight(b.String(), "\n")
}

func init() {
	addCmd.Flags().StringVar(&addKind, "kind", "auto", "command language: auto, mel or python")
	addCmd.Flags().StringVar(&addLabel, "label", "", "short text drawn over the button")
	addCmd.Flags().StringVar(&addAnnotation, "annotation", "", "tooltip text")

	editCmd.Flags().StringVar(&editName, "name", "", "button name")
	editCmd.Flags().StringVar(&editLabel, "label", "", "short text drawn over the button")
	editCmd.Flags().StringVar(&editCommand, "command", "", "main command")
	editCmd.Flags().StringVar(&editShiftCommand, "shift-command", "", "secondary command")
	editCmd.Flags().StringVar(&editAnnotation, "annotation", "", "tooltip text")
	editCmd.Flags().StringVar(&editKind, "kind", "", "command language: auto, mel or python")

	triggersCmd.AddCommand(resetTriggersCmd)
	rootCmd.AddCommand(importCmd, addCmd, editCmd, exportCmd, shelvesCmd, triggersCmd, resetCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
