// workspacectl drives a workspace session against the workspace API from
// the command line. Each invocation loads the caller's workspaces into a
// client.WorkspaceContext and applies one operation to it.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-workspace/pkg/client"
	"github.com/wekeepgrowing/semo-workspace/pkg/logger"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions flags shared by every subcommand
type globalOptions struct {
	apiURL  string
	token   string
	output  string
	timeout time.Duration
	verbose bool
}

func (o *globalOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.apiURL, "api-url", envOr("WORKSPACE_API_URL", "http://localhost:8080/api/v1"), "workspace API base URL")
	fs.StringVar(&o.token, "token", os.Getenv("WORKSPACE_TOKEN"), "bearer token issued by the auth service")
	fs.StringVarP(&o.output, "output", "o", "json", "output format: json or yaml")
	fs.DurationVar(&o.timeout, "timeout", 30*time.Second, "overall request timeout")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log requests to stderr")
}

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, env *cliEnv, args []string) error
}

var commands = []command{
	{"list", "list your workspaces", runList},
	{"create", "create a workspace", runCreate},
	{"update", "rename a workspace or change its description", runUpdate},
	{"delete", "delete a workspace", runDelete},
	{"users", "list the members of a workspace", runUsers},
	{"invite", "invite a registered user to a workspace", runInvite},
	{"watch", "stream workspace events from Redis", runWatch},
}

// cliEnv 하위 명령 실행에 필요한 공통 의존성
type cliEnv struct {
	opts    globalOptions
	stdout  io.Writer
	stderr  io.Writer
	logger  *zap.Logger
	session *client.WorkspaceContext
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var opts globalOptions
	fs := pflag.NewFlagSet("workspacectl", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	opts.addFlags(fs)
	fs.SetInterspersed(false)
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr, fs)
		return errors.New("missing command")
	}
	if opts.output != "json" && opts.output != "yaml" {
		return fmt.Errorf("unsupported output format %q", opts.output)
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == rest[0] {
			cmd = &commands[i]
			break
		}
	}
	if cmd == nil {
		return fmt.Errorf("unknown command %q", rest[0])
	}

	zapLogger := zap.NewNop()
	if opts.verbose {
		var err error
		zapLogger, err = logger.NewZapLogger(logger.Config{Level: "debug", Format: "console", Output: "stderr"})
		if err != nil {
			return err
		}
		defer zapLogger.Sync()
	}

	backend := client.NewAPIClient(opts.apiURL,
		client.WithToken(opts.token),
		client.WithAPILogger(zapLogger),
	)
	env := &cliEnv{
		opts:    opts,
		stdout:  stdout,
		stderr:  stderr,
		logger:  zapLogger,
		session: client.NewWorkspaceContext(backend, client.WithLogger(zapLogger)),
	}

	if cmd.name != "watch" {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}
	return cmd.run(ctx, env, rest[1:])
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: workspacectl [flags] <command> [command flags]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "\nFlags:\n%s", fs.FlagUsages())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
