package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Xunop/gutenbrowse/internal/config"
	"github.com/Xunop/gutenbrowse/internal/gutendex"
	"github.com/Xunop/gutenbrowse/internal/log"
	"github.com/Xunop/gutenbrowse/internal/model"
	"github.com/Xunop/gutenbrowse/internal/queryparam"
	"github.com/Xunop/gutenbrowse/internal/search"
	"github.com/Xunop/gutenbrowse/internal/server"
	"github.com/Xunop/gutenbrowse/internal/session"
	"github.com/Xunop/gutenbrowse/internal/version"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	filter     model.FilterState
	showLinks  bool

	rootCmd = &cobra.Command{
		Use:   "gutenbrowse",
		Short: "GutenBrowse is a browser for the Gutendex book catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
		SilenceUsage: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	searchCmd = &cobra.Command{
		Use:   "search",
		Short: "Search the catalog and print one page of results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd.OutOrStdout(), cmd.Flags().Changed("page"))
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a TOML, YAML or JSON config file")

	f := searchCmd.Flags()
	f.StringVarP(&filter.Search, "search", "s", "", "words in the title or author name")
	f.StringVar(&filter.AuthorYearStart, "author-year-start", "", "authors alive on or after this year")
	f.StringVar(&filter.AuthorYearEnd, "author-year-end", "", "authors alive on or before this year")
	f.StringVar(&filter.Copyright, "copyright", "", `"true", "false" or empty for any`)
	f.StringVarP(&filter.Languages, "languages", "l", "", "comma separated language codes")
	f.StringVar(&filter.Sort, "sort", "", "ascending, descending or popular")
	f.StringVarP(&filter.Topic, "topic", "t", "", "subject or bookshelf")
	f.StringVarP(&filter.Page, "page", "p", model.DefaultPage, "page to fetch")
	f.BoolVar(&showLinks, "links", false, "print the API URL of every book")

	rootCmd.AddCommand(serveCmd, searchCmd, versionCmd)
}

func loadConfig() *config.Options {
	var (
		opts *config.Options
		err  error
	)
	if configFile != "" {
		opts, err = config.ParseFile(configFile)
	} else {
		opts, err = config.GetConfig()
	}
	if err != nil {
		log.Fatal("Error loading configuration", zap.Error(err))
	}
	return opts
}

func newClient(opts *config.Options) *gutendex.Client {
	return gutendex.NewClient(opts.APIURL,
		gutendex.WithTimeout(opts.RequestTimeout),
		gutendex.WithUserAgent(opts.UserAgent),
		gutendex.WithRateLimit(opts.RequestsPerSecond),
	)
}

func runServe(ctx context.Context) error {
	opts := loadConfig()
	log.Init(opts)
	defer log.Logger.Sync()

	log.Info("Starting GutenBrowse",
		zap.String("version", version.GetCurrentVersion()),
		zap.String("api_url", opts.APIURL))

	client := newClient(opts)
	sessions, err := session.NewManager(opts.SessionCacheSize, client)
	if err != nil {
		log.Error("Error creating session manager", zap.Error(err))
		return err
	}

	s, err := server.NewServer(client, sessions)
	if err != nil {
		log.Error("Error creating server", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, s); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		return err
	}
	log.Info("Server stopped")
	return nil
}

func runSearch(ctx context.Context, out io.Writer, pageChanged bool) error {
	opts := loadConfig()
	client := newClient(opts)

	params := queryparam.NewMemoryStore()
	queryparam.Apply(params, filter)

	c := search.NewController(client)
	var err error
	if pageChanged {
		err = c.OnPageChange(ctx, params, filter.Page)
	} else {
		err = c.OnSearch(ctx, params)
	}
	if err != nil {
		return err
	}

	printResults(out, client, params, c.Snapshot())
	return nil
}

func printResults(out io.Writer, client *gutendex.Client, params queryparam.Store, snap search.Snapshot) {
	fmt.Fprintf(out, "Query: ?%s\n", params.Encode())
	if snap.NoResults {
		fmt.Fprintln(out, "No books found")
		return
	}

	fmt.Fprintf(out, "Page %s of %d (%s books)\n\n",
		params.Get(model.KeyPage), snap.PageCount, humanize.Comma(int64(snap.Response.Count)))
	for _, b := range snap.Response.Results {
		authors := make([]string, 0, len(b.Authors))
		for _, a := range b.Authors {
			authors = append(authors, a.Name)
		}
		languages := make([]string, 0, len(b.Languages))
		for _, code := range b.Languages {
			languages = append(languages, model.LanguageName(code))
		}

		fmt.Fprintf(out, "%6d  %s\n", b.ID, b.Title)
		if len(authors) > 0 {
			fmt.Fprintf(out, "        by %s\n", strings.Join(authors, "; "))
		}
		fmt.Fprintf(out, "        %s, %s downloads\n", strings.Join(languages, ", "), humanize.Comma(int64(b.DownloadCount)))
		if showLinks {
			fmt.Fprintf(out, "        %s\n", client.BookURL(b.ID))
		}
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
