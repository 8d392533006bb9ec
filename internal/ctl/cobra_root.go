package ctl

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Config carries persistent CLI settings resolved from flags and env.
type Config struct {
	Addr string
}

// DefaultAddr resolves the daemon base URL from env with a local fallback.
func DefaultAddr() string {
	if v := os.Getenv("OFFLOADD_URL"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}

// Run executes the CLI with the given arguments (excluding argv[0]).
func Run(args []string) error {
	cfg := &Config{Addr: DefaultAddr()}
	root := buildRootCmdWith(cfg)
	root.SetArgs(args)
	return root.Execute()
}

// buildRootCmdWith constructs the Cobra command tree wired to the HTTP client.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "offloadctl",
		Short:         "Client for the offloadd placement daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("addr", cfg.Addr, "Base URL of the offloadd API (defaults OFFLOADD_URL or http://127.0.0.1:8080)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if f := cmd.InheritedFlags().Lookup("addr"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.Addr = v
			}
		}
	}

	statusCmd := &cobra.Command{Use: "status", Short: "Show registry status", RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newClient(cfg.Addr).status()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}}

	tableCmd := &cobra.Command{Use: "table", Short: "Print the resource table", RunE: func(cmd *cobra.Command, args []string) error {
		out, err := newClient(cfg.Addr).table()
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}}

	var elemType string
	addCmd := &cobra.Command{Use: "add <id> <path>", Short: "Register a weight file as a resource", Args: cobra.ExactArgs(2), RunE: func(cmd *cobra.Command, args []string) error {
		return newClient(cfg.Addr).add(args[0], args[1], elemType)
	}}
	addCmd.Flags().StringVar(&elemType, "elem-type", "", "Element type label (e.g. float16)")

	removeCmd := &cobra.Command{Use: "remove <id>", Short: "Remove a resource", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		return newClient(cfg.Addr).remove(args[0])
	}}

	var margin float64
	enableCmd := &cobra.Command{Use: "enable <device>", Short: "Enable auto offload against a device", Example: "  offloadctl enable cuda:0 --margin 0.1", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		return newClient(cfg.Addr).enable(args[0], margin)
	}}
	enableCmd.Flags().Float64Var(&margin, "margin", 0.1, "Fractional safety margin added to footprints")

	disableCmd := &cobra.Command{Use: "disable", Short: "Disable auto offload", RunE: func(cmd *cobra.Command, args []string) error {
		return newClient(cfg.Addr).disable()
	}}

	invokeCmd := &cobra.Command{Use: "invoke <id>", Short: "Invoke a resource", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		return newClient(cfg.Addr).invoke(args[0])
	}}

	root.AddCommand(statusCmd, tableCmd, addCmd, removeCmd, enableCmd, disableCmd, invokeCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	root.AddCommand(completionCmd)

	return root
}
