// Command rmconsole is an interactive console against the embedded
// in-memory host. It drives the same invocation, decode and reply
// surfaces a module would use in-server, which makes it a convenient
// sandbox for command plumbing and ACL setups.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	redismodule "github.com/nebulaiq/redismodule-go"
	"github.com/nebulaiq/redismodule-go/host"
	"github.com/nebulaiq/redismodule-go/hosttest"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rmconsole",
		Short: "Interactive console for the embedded module host",
		Long: `rmconsole runs commands against an embedded in-memory host through
the module invocation surface: call options, reply decoding and handle
accounting behave exactly as they do inside the server.`,
		SilenceUsage: true,
		RunE:         runConsole,
	}

	cmd.Flags().Bool("resp3", false, "Issue calls with the RESP3 option flag")
	cmd.Flags().String("user", "", "Authenticate as this ACL user before the first command")
	cmd.Flags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.Flags().String("exec", "", "Run a single command and exit")
	cmd.Flags().String("env-file", "", "Load environment from this file")

	return cmd
}

func initConfig(cmd *cobra.Command) (*viper.Viper, error) {
	if f, _ := cmd.Flags().GetString("env-file"); f != "" {
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	} else {
		// A local .env is optional.
		_ = godotenv.Load()
	}

	v := viper.New()
	v.SetEnvPrefix("RMCONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, name := range []string{"resp3", "user", "log-level", "exec"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func runConsole(cmd *cobra.Command, args []string) error {
	v, err := initConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(v.GetString("log-level"))
	if err != nil {
		return err
	}
	defer log.Sync()
	redismodule.SetLogger(log)

	srv := hosttest.NewServer()
	srv.SetLogger(log)
	srv.SetContextFlags(host.CtxMaster)
	ctx := redismodule.NewContext(srv)

	if user := v.GetString("user"); user != "" {
		srv.RegisterUser(user, host.ACLAll)
		if ctx.AuthenticateUser(user) != host.StatusOK {
			return fmt.Errorf("authenticate user %q", user)
		}
	}

	session := &session{
		ctx:   ctx,
		srv:   srv,
		resp3: v.GetBool("resp3"),
	}

	if line := v.GetString("exec"); line != "" {
		return session.execLine(cmd.OutOrStdout(), line)
	}
	if len(args) > 0 {
		return session.execLine(cmd.OutOrStdout(), strings.Join(args, " "))
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("stdin is not a terminal; use --exec or pass a command")
	}

	return session.runInteractive()
}

// execLine runs one command line non-interactively and prints the
// rendered reply.
func (s *session) execLine(w io.Writer, line string) error {
	cmdName, cmdArgs, err := splitCommandLine(line)
	if err != nil {
		return err
	}
	value, callErr := s.invoke(cmdName, cmdArgs)
	if callErr != nil {
		return callErr
	}
	fmt.Fprintln(w, renderValue(value, 0))
	return nil
}
