package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"

	"mindcare/internal/app"
	"mindcare/internal/config"
)

var errLoginRequired = errors.New("please log in first: mindcare login -email <email>")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		usage()
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage()
		return 2
	}

	config.LoadEnv()
	cfg := config.LoadClient()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Printf("start: %v", err)
		return 1
	}
	defer application.Close()

	if cmd.path != "" && application.Route(cmd.path).View == app.ViewLogin {
		log.Print(errLoginRequired)
		return 1
	}

	if err := cmd.run(ctx, application, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 2
		}
		log.Printf("%s: %v", args[0], err)
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: mindcare <command> [flags] [args]")
	fmt.Fprintln(os.Stderr)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-13s %s\n", name, commands[name].summary)
	}
}
