package devtools

import (
	"io"

	"github.com/ValentinKolb/rKV/cmd/util"
	"github.com/ValentinKolb/rKV/lib/devtools/host"
	"github.com/ValentinKolb/rKV/rpc/client"
	"github.com/spf13/cobra"
)

var (
	rpcHost host.IHost

	// DevToolsCommands represents the debug host command group
	DevToolsCommands = &cobra.Command{
		Use:   "devtools",
		Short: "Run or operate a time-travel debugging host",
	}
)

func init() {
	DevToolsCommands.AddCommand(serveCmd)

	// Client commands share the rpc connection flags
	for _, cmd := range []*cobra.Command{sessionsCmd, historyCmd, jumpCmd, resetCmd, dispatchCmd, infoCmd} {
		util.SetupRPCClientFlags(cmd)
		cmd.PreRunE = setupHostClient
		cmd.PostRunE = closeHostClient
		DevToolsCommands.AddCommand(cmd)
	}
}

// setupHostClient connects to the debug host
func setupHostClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get serializer and transport
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	rpcHost, err = client.NewRPCHost(
		*util.GetClientConfig(),
		t,
		s,
	)

	return err
}

// closeHostClient closes the connection opened by setupHostClient
func closeHostClient(_ *cobra.Command, _ []string) error {
	if c, ok := rpcHost.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
