package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/wizardkids/ida/conf"
	"github.com/wizardkids/ida/db"
	"github.com/wizardkids/ida/feeds"
	"github.com/wizardkids/ida/migrations"
	"github.com/wizardkids/ida/models"
	"github.com/wizardkids/ida/reader"
	"github.com/wizardkids/ida/store"
)

const usage = `ida - a small news feed reader

Usage:
  ida check                            fetch all feeds and build a fresh snapshot
  ida list                             browse feeds and unread articles
  ida add <rss> [group] [title]        subscribe to a feed
  ida edit <number> <rss>              point a feed at a new RSS address
  ida delete <number>                  delete a feed (by its list number)
  ida move <number> <group>            move a feed to another group
  ida rename-group <name> <new-name>   rename a group
  ida delete-group <name>              delete an empty group
  ida prune                            purge deleted feeds and empty groups
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	// Load config
	conf.LoadConfig()

	// Connect to DB and migrate to the latest version
	dbc := db.ConnectDB()
	defer dbc.Close()
	migrations.Migrate()

	st := store.New(dbc)

	var err error
	switch os.Args[1] {
	case "check":
		err = runCheck(st)
	case "list":
		err = runList(st)
	case "add":
		err = runAdd(st, os.Args[2:])
	case "edit":
		err = runEdit(st, os.Args[2:])
	case "delete":
		err = runDelete(st, os.Args[2:])
	case "move":
		err = runMove(st, os.Args[2:])
	case "rename-group":
		err = runRenameGroup(st, os.Args[2:])
	case "delete-group":
		err = runDeleteGroup(st, os.Args[2:])
	case "prune":
		err = runPrune(st)
	default:
		fmt.Print(usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// runCheck fetches every feed and persists the new snapshot and the updated
// catalog
func runCheck(st *store.Store) error {
	catalog, err := st.LoadCatalog()
	if err != nil {
		return err
	}

	checker := &feeds.Checker{}
	if err := checker.Init(context.Background()); err != nil {
		return err
	}

	fmt.Println("Checking feeds, this may take a few seconds...")
	snapshot, bad, err := checker.CheckAll(&catalog)
	if err != nil {
		return err
	}

	if err := st.SaveSnapshot(&snapshot); err != nil {
		return err
	}
	if err := st.SaveCatalog(&catalog); err != nil {
		return err
	}

	fmt.Printf("Checked %d feeds.\n", len(snapshot.Feeds))
	if len(bad) > 0 {
		fmt.Println("Unreachable feeds:")
		for _, u := range bad {
			fmt.Printf("  %s (%s): %s\n", u.Title, u.RSS, u.Err)
		}
	}
	return nil
}

// runList drives one feed-viewing session over the last snapshot
func runList(st *store.Store) error {
	catalog, err := st.LoadCatalog()
	if err != nil {
		return err
	}
	snapshot, err := st.LoadSnapshot()
	if err != nil {
		if errors.Is(err, store.ErrNoSnapshot) {
			fmt.Println(`Run "ida check" first.`)
			return nil
		}
		return err
	}
	ledger, err := st.LoadLedger()
	if err != nil {
		return err
	}

	session := reader.NewSession(&catalog, &snapshot, ledger, openLink)
	stdin := bufio.NewScanner(os.Stdin)

	for {
		for _, item := range session.FeedList() {
			flag := "  "
			if item.Flagged {
				flag = " *"
			}
			fmt.Printf("%s%d: %s (%s)\n", flag, item.Number, item.Title, item.Group)
		}
		line := prompt(stdin, "\nSelect feed (empty to quit): ")
		if line == "" {
			break
		}
		number, err := strconv.Atoi(line)
		if err != nil {
			number = 0
		}
		view, err := session.SelectFeed(number)
		if err != nil {
			fmt.Println(err)
			continue
		}
		browseFeed(stdin, view)
	}

	// Persist read-state and flag changes made during the session
	if err := st.SaveLedger(ledger); err != nil {
		return err
	}
	return st.SaveCatalog(&catalog)
}

// browseFeed runs the article-listing state for one feed
func browseFeed(stdin *bufio.Scanner, view *reader.FeedView) {
	for {
		if view.UnreadCount() == 0 {
			fmt.Println("\nAll articles have been read.")
			if prompt(stdin, "Un-read some articles from this feed? (y/N) ") == "y" {
				sel := prompt(stdin, "Number or range of articles to set to unread: ")
				if err := view.MarkUnread(sel); err != nil {
					fmt.Println(err)
				}
				continue
			}
			view.ClearChangeFlag()
			return
		}

		fmt.Println()
		for _, a := range view.Entries() {
			switch {
			case !a.Read:
				fmt.Printf("*%d: %s\n", a.Number, a.Title)
			case view.ShowRead():
				fmt.Printf(" %d: %s\n", a.Number, a.Title)
			}
		}
		fmt.Println("\n<t>oggle showing read articles | set to <r>ead | set to <u>nread")

		input := prompt(stdin, "Select from menu or a numbered article: ")
		switch input {
		case "":
			return
		case "t":
			view.ToggleShowRead()
		case "r":
			sel := prompt(stdin, "Number or range of articles to set to read: ")
			if err := view.MarkRead(sel); err != nil {
				fmt.Println(err)
			}
		case "u":
			sel := prompt(stdin, "Number or range of articles to set to unread: ")
			if err := view.MarkUnread(sel); err != nil {
				fmt.Println(err)
			}
		default:
			number, err := strconv.Atoi(input)
			if err != nil {
				number = 0
			}
			if _, err := view.Open(number); err != nil {
				fmt.Println(err)
			}
		}
	}
}

func runAdd(st *store.Store, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: ida add <rss> [group] [title]")
	}
	rss := args[0]
	group := ""
	if len(args) > 1 {
		group = args[1]
	}

	catalog, err := st.LoadCatalog()
	if err != nil {
		return err
	}

	feed := models.Feed{RSS: rss}
	if len(args) > 2 {
		feed.Title = args[2]
	}

	// Fetch the feed once to validate it and pick up its title and current top
	// entry, so the very next check doesn't flag everything as changed
	checker := &feeds.Checker{}
	if err := checker.Init(context.Background()); err != nil {
		return err
	}
	posts, info, err := checker.RequestFeed(rss)
	if err != nil {
		return fmt.Errorf("feed not reachable: %w", err)
	}
	if feed.Title == "" {
		feed.Title = posts.Title
	}
	if feed.Title == "" {
		feed.Title = rss
	}
	feed.SiteURL = posts.Link
	feed.ETag = info.ETag
	feed.LastModified = info.LastModified
	if len(posts.Items) > 0 && posts.Items[0] != nil {
		feed.LastPostTitle = posts.Items[0].Title
		feed.LastPostLink = posts.Items[0].Link
	}

	added := catalog.AddFeed(group, feed)
	if err := st.SaveCatalog(&catalog); err != nil {
		return err
	}
	fmt.Printf("Added feed %q.\n", added.Title)
	return nil
}

// runEdit manually re-points a feed at a new RSS address, for when a site moves
// its feed and the old address starts failing
func runEdit(st *store.Store, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: ida edit <number> <rss>")
	}
	catalog, err := st.LoadCatalog()
	if err != nil {
		return err
	}

	id, title, err := feedByNumber(&catalog, args[0])
	if err != nil {
		return err
	}
	if err := catalog.SetRSS(id, args[1]); err != nil {
		return err
	}
	if err := st.SaveCatalog(&catalog); err != nil {
		return err
	}
	fmt.Printf("RSS address for %q has been set to %s.\n", title, args[1])
	return nil
}

func runDelete(st *store.Store, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: ida delete <number>")
	}
	catalog, err := st.LoadCatalog()
	if err != nil {
		return err
	}

	id, title, err := feedByNumber(&catalog, args[0])
	if err != nil {
		return err
	}
	if err := catalog.RemoveFeed(id); err != nil {
		return err
	}
	catalog.Prune()
	if err := st.SaveCatalog(&catalog); err != nil {
		return err
	}
	fmt.Printf("Deleted feed %q.\n", title)
	return nil
}

func runMove(st *store.Store, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: ida move <number> <group>")
	}
	catalog, err := st.LoadCatalog()
	if err != nil {
		return err
	}

	id, title, err := feedByNumber(&catalog, args[0])
	if err != nil {
		return err
	}
	if err := catalog.MoveFeed(id, args[1]); err != nil {
		return err
	}
	catalog.Prune()
	if err := st.SaveCatalog(&catalog); err != nil {
		return err
	}
	fmt.Printf("Moved feed %q.\n", title)
	return nil
}

func runRenameGroup(st *store.Store, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: ida rename-group <name> <new-name>")
	}
	catalog, err := st.LoadCatalog()
	if err != nil {
		return err
	}
	if err := catalog.RenameGroup(args[0], args[1]); err != nil {
		return err
	}
	return st.SaveCatalog(&catalog)
}

func runDeleteGroup(st *store.Store, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: ida delete-group <name>")
	}
	catalog, err := st.LoadCatalog()
	if err != nil {
		return err
	}
	if err := catalog.DeleteGroup(args[0]); err != nil {
		return err
	}
	return st.SaveCatalog(&catalog)
}

func runPrune(st *store.Store) error {
	catalog, err := st.LoadCatalog()
	if err != nil {
		return err
	}
	catalog.Prune()
	return st.SaveCatalog(&catalog)
}

// feedByNumber resolves a 1-based list number to a feed ID
func feedByNumber(catalog *models.Catalog, arg string) (int64, string, error) {
	refs := catalog.AllFeeds()
	number, err := strconv.Atoi(arg)
	if err != nil || number < 1 || number > len(refs) {
		return 0, "", &reader.InvalidSelectionError{Min: 1, Max: len(refs)}
	}
	ref := refs[number-1]
	return ref.Feed.ID, ref.Feed.Title, nil
}

func prompt(stdin *bufio.Scanner, msg string) string {
	fmt.Print(msg)
	if !stdin.Scan() {
		return ""
	}
	return strings.TrimSpace(stdin.Text())
}

// openLink shows an article in the default browser, best effort
func openLink(url string) error {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
	case "windows":
		cmd, args = "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		cmd = "xdg-open"
	}
	return exec.Command(cmd, append(args, url)...).Start()
}
