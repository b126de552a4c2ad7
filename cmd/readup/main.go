package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/readupapp/readup-go/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Command:    args[0],
		Args:       args[1:],
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "readup: %v\n", err)
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: readup [-config path] <command> [args]

commands:
  search <author name>        merge backend and catalog author search
  shelf                       list your shelf
  shelve <book-id> <status>   add or move a book (to_read|reading|read|dnf)
  follows                     list follows
  follow <type> <id>          toggle a follow (User|Author|Book)
  events [author-id]          list events with staleness info
  refresh-events [author-id]  ask the backend to re-check event sources
  feed                        show the follower timeline
  recs                        show recommendations
  comments <post-id>          list a forum post's comments
  import <file.csv>           upload a Goodreads export and watch it
`)
}
