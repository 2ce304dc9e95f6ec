package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/wekeepgrowing/semo-workspace/pkg/client"
	"github.com/wekeepgrowing/semo-workspace/pkg/messaging"
)

func newFlagSet(env *cliEnv, name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(env.stderr)
	return fs
}

// failure 세션 연산이 실패했을 때 마지막 백엔드 에러를 붙여 반환
func failure(env *cliEnv, op string) error {
	if err := env.session.LastError(); err != nil {
		return fmt.Errorf("%s failed: %w", op, err)
	}
	return fmt.Errorf("%s failed", op)
}

// loadWorkspaces 워크스페이스 목록을 불러오고 실패하면 에러를 반환
func loadWorkspaces(ctx context.Context, env *cliEnv) error {
	env.session.FetchWorkspaces(ctx)
	if err := env.session.LastError(); err != nil {
		return fmt.Errorf("fetching workspaces failed: %w", err)
	}
	return nil
}

func findWorkspace(env *cliEnv, id string) (client.Workspace, bool) {
	for _, w := range env.session.Workspaces() {
		if w.ID == id {
			return w, true
		}
	}
	return client.Workspace{}, false
}

func requireArg(args []string, what string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one argument: %s", what)
	}
	return args[0], nil
}

func runList(ctx context.Context, env *cliEnv, args []string) error {
	if err := loadWorkspaces(ctx, env); err != nil {
		return err
	}
	return writeOutput(env.stdout, env.opts.output, env.session.Workspaces())
}

func runCreate(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet(env, "create")
	name := fs.String("name", "", "workspace name (required)")
	description := fs.String("description", "", "workspace description; omit for none")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return errors.New("--name is required")
	}

	var desc *string
	if fs.Changed("description") {
		desc = description
	}

	created := env.session.CreateWorkspace(ctx, *name, desc)
	if created == nil {
		return failure(env, "create")
	}
	return writeOutput(env.stdout, env.opts.output, created)
}

func runUpdate(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet(env, "update")
	name := fs.String("name", "", "new name; unchanged when omitted")
	description := fs.String("description", "", "new description; unchanged when omitted")
	clearDescription := fs.Bool("clear-description", false, "remove the description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := requireArg(fs.Args(), "workspace id")
	if err != nil {
		return err
	}
	if fs.Changed("description") && *clearDescription {
		return errors.New("--description and --clear-description are mutually exclusive")
	}

	if err := loadWorkspaces(ctx, env); err != nil {
		return err
	}
	current, ok := findWorkspace(env, id)
	if !ok {
		return fmt.Errorf("workspace %s not found", id)
	}

	newName := current.Name
	if fs.Changed("name") {
		newName = *name
	}
	newDesc := current.Description
	switch {
	case *clearDescription:
		newDesc = nil
	case fs.Changed("description"):
		newDesc = description
	}

	if !env.session.UpdateWorkspace(ctx, id, newName, newDesc) {
		return failure(env, "update")
	}
	updated, _ := findWorkspace(env, id)
	return writeOutput(env.stdout, env.opts.output, updated)
}

func runDelete(ctx context.Context, env *cliEnv, args []string) error {
	id, err := requireArg(args, "workspace id")
	if err != nil {
		return err
	}
	if !env.session.DeleteWorkspace(ctx, id) {
		return failure(env, "delete")
	}
	fmt.Fprintf(env.stderr, "deleted %s\n", id)
	return nil
}

func runUsers(ctx context.Context, env *cliEnv, args []string) error {
	id, err := requireArg(args, "workspace id")
	if err != nil {
		return err
	}
	env.session.FetchWorkspaceUsers(ctx, id)
	if err := env.session.LastError(); err != nil {
		return fmt.Errorf("fetching users failed: %w", err)
	}
	return writeOutput(env.stdout, env.opts.output, env.session.WorkspaceUsers())
}

func runInvite(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet(env, "invite")
	email := fs.String("email", "", "email of a registered user (required)")
	role := fs.String("role", "member", "role to grant: admin or member")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := requireArg(fs.Args(), "workspace id")
	if err != nil {
		return err
	}
	if *email == "" {
		return errors.New("--email is required")
	}

	// 초대 후 멤버 목록을 다시 불러오도록 먼저 로드
	env.session.FetchWorkspaceUsers(ctx, id)
	if err := env.session.LastError(); err != nil {
		return fmt.Errorf("fetching users failed: %w", err)
	}
	if !env.session.InviteUserToWorkspace(ctx, id, *email, *role) {
		return failure(env, "invite")
	}
	return writeOutput(env.stdout, env.opts.output, env.session.WorkspaceUsers())
}

func runWatch(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet(env, "watch")
	addr := fs.String("redis-addr", envOr("WORKSPACE_REDIS_ADDR", "localhost:6379"), "Redis address")
	password := fs.String("redis-password", os.Getenv("WORKSPACE_REDIS_PASSWORD"), "Redis password")
	channel := fs.String("channel", "workspace.events", "event channel")
	if err := fs.Parse(args); err != nil {
		return err
	}

	broker, err := messaging.NewRedisBroker(messaging.Options{Addr: *addr, Password: *password})
	if err != nil {
		return err
	}
	defer broker.Close()

	messages, err := broker.Subscribe(ctx, *channel)
	if err != nil {
		return err
	}
	return printEvents(ctx, env, messages)
}

func printEvents(ctx context.Context, env *cliEnv, messages <-chan messaging.Message) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			if err := writeOutput(env.stdout, env.opts.output, eventView(msg)); err != nil {
				return err
			}
		}
	}
}
