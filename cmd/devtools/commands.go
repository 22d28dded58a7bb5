package devtools

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ValentinKolb/rKV/cmd/util"
	"github.com/ValentinKolb/rKV/lib/devtools"
	"github.com/spf13/cobra"
)

var (
	sessionsCmd = &cobra.Command{
		Use:   "sessions",
		Short: "Lists the open sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := rpcHost.Sessions()
			if err != nil {
				return err
			}
			return util.PrintJSON(os.Stdout, sessions)
		},
	}
	historyCmd = &cobra.Command{
		Use:   "history [session]",
		Short: "Prints the recorded actions and states of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}
			entries, err := rpcHost.History(id)
			if err != nil {
				return err
			}
			return util.PrintJSON(os.Stdout, entries)
		},
	}
	jumpCmd = &cobra.Command{
		Use:   "jump [session] [index]",
		Short: "Replaces the state of a store with a recorded state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}
			index, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}
			if err := rpcHost.Jump(id, index); err != nil {
				return err
			}
			fmt.Println("jump queued")
			return nil
		},
	}
	resetCmd = &cobra.Command{
		Use:   "reset [session]",
		Short: "Resets a store to its initial data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}
			if err := rpcHost.Reset(id); err != nil {
				return err
			}
			fmt.Println("reset queued")
			return nil
		},
	}
	dispatchCmd = &cobra.Command{
		Use:   "dispatch [session] [action]",
		Short: "Applies an action to a store",
		Long: `Applies an action to a store. The action is a JSON object, e.g.
{"type":"SET user.name","value":"Ana"} or {"type":"UPDATE","key":"u1","path":"age","value":3}`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}
			action, err := devtools.ParseAction([]byte(args[1]))
			if err != nil {
				return err
			}
			if err := rpcHost.Dispatch(id, action); err != nil {
				return err
			}
			fmt.Println("action queued")
			return nil
		},
	}
	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Prints statistics about the debug host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := rpcHost.GetInfo()
			if err != nil {
				return err
			}
			return util.PrintJSON(os.Stdout, info)
		},
	}
)

func parseSessionID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("session must be a number: %w", err)
	}
	return id, nil
}
