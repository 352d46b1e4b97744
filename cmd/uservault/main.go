// Command uservault is a thin shell over the authentication service and
// the cross-backend migration procedure. All business logic lives in
// internal/auth and internal/storage.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"uservault/internal/auth"
	"uservault/internal/config"
	"uservault/internal/logging"
	"uservault/internal/storage"
	"uservault/internal/storage/factory"
	"uservault/internal/storage/migrate"
)

const usage = `usage: uservault <command> [flags]

commands:
  register              create a user (prompts for details)
  login                 authenticate a user
  list                  print all users
  stats                 print backend statistics
  migrate <from> <to>   copy all records between backends

flags:
  -b <backend>   storage backend: inmemory | embedded | relational
  -d <path>      sqlite database path (or ":memory:")
  -f <path>      bolt database path
  -c <path>      JSON config file
  -v             verbose logging
`

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 || os.Args[1] == "help" {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	ctx := context.Background()
	cmd := os.Args[1]
	cfg := config.Load()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewJSONLogger(os.Stderr, level)

	if cmd == "migrate" {
		return runMigrate(ctx, cfg, logger)
	}

	store, err := factory.Open(ctx, cfg.Backend, factory.Options{
		SQLitePath: cfg.SQLitePath,
		BoltPath:   cfg.BoltPath,
	})
	if err != nil {
		logger.Error(ctx, "backend open failed", "backend", string(cfg.Backend), "error", err.Error())
		return 1
	}
	defer store.Close()

	service := auth.NewService(store, logger)

	switch cmd {
	case "register":
		return runRegister(ctx, service)
	case "login":
		return runLogin(ctx, service)
	case "list":
		return runList(ctx, service)
	case "stats":
		return runStats(ctx, service)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		return 2
	}
}

func runRegister(ctx context.Context, service *auth.Service) int {
	reader := bufio.NewReader(os.Stdin)

	username, err := promptLine(reader, "Username", os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	email, err := promptLine(reader, "Email", os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	password, err := promptPassword(os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	user, err := service.Register(ctx, username, email, password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("registered %s (%s)\n", user.Username, user.ID)
	return 0
}

func runLogin(ctx context.Context, service *auth.Service) int {
	reader := bufio.NewReader(os.Stdin)

	email, err := promptLine(reader, "Email", os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	password, err := promptPassword(os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	user, err := service.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("welcome, %s\n", user.Username)
	return 0
}

func runList(ctx context.Context, service *auth.Service) int {
	users, err := service.GetAllUsers(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	for _, u := range users {
		fmt.Printf("%s\t%s\t%s\t%s\n",
			u.ID, u.Username, u.Email, u.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("%d user(s)\n", len(users))
	return 0
}

func runStats(ctx context.Context, service *auth.Service) int {
	stats, err := service.Stats(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("backend: %v\nusers:   %v\n",
		stats[storage.StatBackendType], stats[storage.StatUserCount])
	return 0
}

func runMigrate(ctx context.Context, cfg *config.Config, logger logging.Logger) int {
	args := nonFlagArgs(os.Args[2:])
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: uservault migrate <from> <to>")
		return 2
	}

	from, err := storage.ParseBackendType(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	to, err := storage.ParseBackendType(args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if from == to {
		fmt.Fprintln(os.Stderr, "source and destination backends must differ")
		return 2
	}

	opts := factory.Options{SQLitePath: cfg.SQLitePath, BoltPath: cfg.BoltPath}

	src, err := factory.Open(ctx, from, opts)
	if err != nil {
		logger.Error(ctx, "source open failed", "backend", string(from), "error", err.Error())
		return 1
	}
	defer src.Close()

	dst, err := factory.Open(ctx, to, opts)
	if err != nil {
		logger.Error(ctx, "destination open failed", "backend", string(to), "error", err.Error())
		return 1
	}
	defer dst.Close()

	res, err := migrate.Run(ctx, src, dst, logger)
	fmt.Printf("migrated %d, skipped %d, failed %d\n",
		res.Migrated, res.Skipped, len(res.Failed))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// nonFlagArgs drops flags and their values, leaving positional words.
func nonFlagArgs(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			// "-f value" form: skip the value too; "-f=value" and the
			// boolean -v carry no separate value.
			if arg != "-v" && !strings.Contains(arg, "=") &&
				i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}
