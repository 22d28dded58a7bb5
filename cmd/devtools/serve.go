package devtools

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ValentinKolb/rKV/cmd/util"
	"github.com/ValentinKolb/rKV/lib/devtools"
	"github.com/ValentinKolb/rKV/rpc/common"
	"github.com/ValentinKolb/rKV/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	serveCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the debug host",
		Long:    `Start the debug host with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is RKV_<flag> (e.g. RKV_MAX_AGE=100)`,
		Args:    cobra.NoArgs,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// add flags
	key := "endpoint"
	serveCmd.Flags().String(key, "0.0.0.0:8080", util.WrapString("The address on which the host will listen (e.g. localhost:8080, /tmp/rkv.sock, ...)"))

	key = "timeout"
	serveCmd.Flags().Int64(key, 5, util.WrapString("Read and write timeout of connections in seconds (0 = none)"))

	key = "log-level"
	serveCmd.Flags().String(key, "info", util.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	key = "max-age"
	serveCmd.Flags().Int(key, devtools.DefaultMaxAge, util.WrapString("Number of actions kept per session if the session does not request a limit"))

	key = "workers-per-conn"
	serveCmd.Flags().Int(key, 8, util.WrapString("How many requests of a single connection are processed concurrently (ignored for http)"))

	key = "buffer-size"
	serveCmd.Flags().Int(key, 512, util.WrapString("The size of the pooled read buffers (in KB, ignored for http). Must hold the largest state snapshot"))

	key = "transport-write-buffer"
	serveCmd.Flags().Int(key, 0, util.WrapString("The size of the socket write buffer (in KB, 0 = OS default, ignored for http)"))

	key = "transport-read-buffer"
	serveCmd.Flags().Int(key, 0, util.WrapString("The size of the socket read buffer (in KB, 0 = OS default, ignored for http)"))

	key = "transport-tcp-nodelay"
	serveCmd.Flags().Bool(key, true, util.WrapString("Whether to enable TCP_NODELAY (only for tcp)"))

	key = "transport-tcp-keepalive"
	serveCmd.Flags().Int(key, 0, util.WrapString("The keepalive interval (in seconds, only for tcp)"))

	key = "transport-tcp-linger"
	serveCmd.Flags().Int(key, 0, util.WrapString("The linger time (in seconds, only for tcp)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.MaxAge = viper.GetInt("max-age")
	serveCmdConfig.LogLevel = viper.GetString("log-level")
	serveCmdConfig.Transport = common.ServerTransportConfig{
		Endpoint:       viper.GetString("endpoint"),
		WorkersPerConn: viper.GetInt("workers-per-conn"),
		BufferSize:     viper.GetInt("buffer-size") * 1024,
		SocketConf: common.SocketConf{
			WriteBufferSize: viper.GetInt("transport-write-buffer") * 1024,
			ReadBufferSize:  viper.GetInt("transport-read-buffer") * 1024,
		},
		TCPConf: common.TCPConf{
			TCPNoDelay:      viper.GetBool("transport-tcp-nodelay"),
			TCPKeepAliveSec: viper.GetInt("transport-tcp-keepalive"),
			TCPLingerSec:    viper.GetInt("transport-tcp-linger"),
		},
	}

	return common.InitLoggers(serveCmdConfig.LogLevel)
}

// run starts the debug host and blocks until it is interrupted
func run(_ *cobra.Command, _ []string) error {
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetServerTransport(serveCmdConfig.Transport.BufferSize)
	if err != nil {
		return err
	}

	serv := server.NewRPCServer(
		*serveCmdConfig,
		t,
		s,
		nil,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		if err := serv.Close(); err != nil {
			server.Logger.Errorf("failed to close server: %v", err)
		}
	}()

	return serv.Serve()
}
