package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/samber/do/v2"

	"github.com/readupapp/readup-go/internal/domain"
	"github.com/readupapp/readup-go/internal/googlebooks"
	"github.com/readupapp/readup-go/internal/imports"
	"github.com/readupapp/readup-go/internal/readup"
	"github.com/readupapp/readup-go/internal/reconcile"
	"github.com/readupapp/readup-go/internal/store"
)

// Options configure one invocation of the client.
type Options struct {
	ConfigPath string
	Command    string
	Args       []string
}

// Run executes one CLI verb against a freshly wired container.
func Run(ctx context.Context, opts Options) error {
	injector := NewContainer(opts)
	defer func() { _ = injector.Shutdown() }()

	switch opts.Command {
	case "search":
		return runSearch(ctx, injector, opts.Args)
	case "shelf":
		return runShelf(ctx, injector)
	case "shelve":
		return runShelve(ctx, injector, opts.Args)
	case "follows":
		return runFollows(ctx, injector)
	case "follow":
		return runFollow(ctx, injector, opts.Args)
	case "events":
		return runEvents(ctx, injector, opts.Args)
	case "refresh-events":
		return runRefreshEvents(ctx, injector, opts.Args)
	case "feed":
		return runFeed(ctx, injector)
	case "recs":
		return runRecs(ctx, injector)
	case "comments":
		return runComments(ctx, injector, opts.Args)
	case "import":
		return runImport(ctx, injector, opts.Args)
	default:
		return fmt.Errorf("unknown command %q", opts.Command)
	}
}

// runSearch merges backend authors with external catalog candidates into
// one deduplicated listing and registers the candidates for promotion.
func runSearch(ctx context.Context, injector do.Injector, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: search <author name>")
	}
	name := args[0]

	api := do.MustInvoke[*readup.Client](injector)
	catalog := do.MustInvoke[*googlebooks.Client](injector)
	rec := do.MustInvoke[*reconcile.Reconciler](injector)

	local, err := api.FetchAuthors(ctx, name)
	if err != nil {
		return fmt.Errorf("search authors: %w", err)
	}

	candidate, books, err := catalog.AuthorCandidate(ctx, name)
	if err != nil {
		return fmt.Errorf("search catalog: %w", err)
	}
	candidate = rec.RegisterAuthor(candidate)
	for _, b := range books {
		rec.RegisterBook(b)
	}

	merged := reconcile.MergeAuthors(local, []domain.Author{candidate})
	if err := printJSON(map[string]any{"authors": merged, "books": books}); err != nil {
		return err
	}
	return nil
}

func runShelf(ctx context.Context, injector do.Injector) error {
	shelf := do.MustInvoke[*store.ShelfStore](injector)
	if err := shelf.Load(ctx); err != nil {
		return fmt.Errorf("load shelf: %w", err)
	}
	return printJSON(shelf.Entries().List(nil))
}

func runShelve(ctx context.Context, injector do.Injector, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: shelve <book-id> <status>")
	}
	bookID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("parse book id %q: %w", args[0], err)
	}

	shelf := do.MustInvoke[*store.ShelfStore](injector)
	entry, err := shelf.UpdateShelf(ctx, domain.ShelfRequest{
		BookID: bookID,
		Status: domain.ReadingStatus(args[1]),
	})
	if err != nil {
		return err
	}
	return printJSON(entry)
}

func runFollows(ctx context.Context, injector do.Injector) error {
	follows := do.MustInvoke[*store.FollowStore](injector)
	if err := follows.Load(ctx); err != nil {
		return fmt.Errorf("load follows: %w", err)
	}
	return printJSON(follows.Follows())
}

func runFollow(ctx context.Context, injector do.Injector, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: follow <User|Author|Book> <id>")
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("parse id %q: %w", args[1], err)
	}

	follows := do.MustInvoke[*store.FollowStore](injector)
	if err := follows.Load(ctx); err != nil {
		return fmt.Errorf("load follows: %w", err)
	}
	if err := follows.ToggleFollow(ctx, domain.FollowableType(args[0]), id); err != nil {
		return err
	}
	return printJSON(follows.Follows())
}

func runEvents(ctx context.Context, injector do.Injector, args []string) error {
	var authorID int64
	if len(args) > 0 {
		parsed, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("parse author id %q: %w", args[0], err)
		}
		authorID = parsed
	}

	events := do.MustInvoke[*store.EventStore](injector)
	if err := events.Load(ctx, authorID); err != nil {
		return fmt.Errorf("load events: %w", err)
	}
	return printJSON(map[string]any{
		"events":       events.Events(),
		"last_checked": events.TimeSinceRefresh(authorID),
		"has_more":     events.HasMore(),
	})
}

func runRefreshEvents(ctx context.Context, injector do.Injector, args []string) error {
	var authorID int64
	if len(args) > 0 {
		parsed, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("parse author id %q: %w", args[0], err)
		}
		authorID = parsed
	}

	events := do.MustInvoke[*store.EventStore](injector)
	found, err := events.Refresh(ctx, authorID)
	if err != nil {
		return err
	}
	fmt.Printf("%d new events found\n", found)
	return nil
}

func runFeed(ctx context.Context, injector do.Injector) error {
	feed := do.MustInvoke[*store.FeedStore](injector)
	if err := feed.Load(ctx); err != nil {
		return fmt.Errorf("load feed: %w", err)
	}
	return printJSON(feed.Items())
}

func runRecs(ctx context.Context, injector do.Injector) error {
	recs := do.MustInvoke[*store.RecommendationStore](injector)
	if err := recs.RefreshAll(ctx); err != nil {
		return fmt.Errorf("load recommendations: %w", err)
	}
	return printJSON(map[string]any{
		"books":   recs.Books(),
		"authors": recs.Authors(),
		"events":  recs.Events(),
	})
}

func runComments(ctx context.Context, injector do.Injector, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: comments <post-id>")
	}
	postID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("parse post id %q: %w", args[0], err)
	}

	forum := do.MustInvoke[*store.ForumStore](injector)
	comments, err := forum.LoadComments(ctx, postID)
	if err != nil {
		return fmt.Errorf("load comments: %w", err)
	}
	return printJSON(comments)
}

// runImport uploads a Goodreads CSV and watches the job to completion.
func runImport(ctx context.Context, injector do.Injector, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: import <file.csv>")
	}
	path := args[0]

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat import file: %w", err)
	}

	api := do.MustInvoke[*readup.Client](injector)
	job, err := api.UploadGoodreadsCSV(ctx, path, file, info.Size())
	if err != nil {
		return err
	}
	fmt.Printf("import %d queued (%s)\n", job.ID, job.FileName)

	watcher := do.MustInvoke[*imports.Watcher](injector)
	watcher.OnUpdate = func(j domain.ImportJob) {
		fmt.Printf("import %d: %s %d/%d rows\n", j.ID, j.Status, j.ProcessedRows, j.TotalRows)
	}
	final, err := watcher.Watch(ctx, job.ID)
	if err != nil {
		return err
	}
	if final.Status == domain.ImportFailed {
		return fmt.Errorf("import failed: %s", final.Error)
	}
	fmt.Printf("imported %d rows (%d failed)\n", final.SuccessRows, final.FailedRows)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
