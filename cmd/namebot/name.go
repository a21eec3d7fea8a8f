package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/namebot/internal/namer"
	"github.com/vmunix/namebot/pkg/mediainfo"
	"github.com/vmunix/namebot/pkg/release"
)

var nameCmd = &cobra.Command{
	Use:   "name --link <url> --tmdb <id>",
	Short: "Compose a release name from a MediaInfo paste",
	Long: `Fetch a MediaInfo JSON paste and the TMDB record, then print the release name.

The TMDB ID is a TV show unless --movie is given.

Examples:
  namebot name --link https://pastebin.com/AbCd1234 --tmdb 1399 --group GRP
  namebot name --link pastebin.com/AbCd1234 --tmdb 550 --movie --json`,
	Args: cobra.NoArgs,
	RunE: runNameCmd,
}

var parseCmd = &cobra.Command{
	Use:   "parse <mediainfo.json> --tmdb <id>",
	Short: "Compose a release name from a local MediaInfo file",
	Long: `Read a MediaInfo JSON report from a file (or - for stdin) and print the release name.

Examples:
  mediainfo --Output=JSON episode.mkv | namebot parse - --tmdb 1399
  namebot parse report.json --tmdb 550 --movie --group GRP`,
	Args: cobra.ExactArgs(1),
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(parseCmd)

	nameCmd.Flags().String("link", "", "MediaInfo paste link")
	_ = nameCmd.MarkFlagRequired("link")

	for _, c := range []*cobra.Command{nameCmd, parseCmd} {
		c.Flags().Int64("tmdb", 0, "TMDB ID of the title")
		c.Flags().Bool("movie", false, "Treat the TMDB ID as a movie")
		c.Flags().String("group", "", "Release group tag")
		_ = c.MarkFlagRequired("tmdb")
	}
}

// requestFromFlags reads the flags shared by name and parse.
func requestFromFlags(cmd *cobra.Command) namer.Request {
	tmdbID, _ := cmd.Flags().GetInt64("tmdb")
	movie, _ := cmd.Flags().GetBool("movie")
	group, _ := cmd.Flags().GetString("group")

	kind := release.Show
	if movie {
		kind = release.Movie
	}
	return namer.Request{TMDBID: tmdbID, Kind: kind, Group: group}
}

func runNameCmd(cmd *cobra.Command, _ []string) error {
	req := requestFromFlags(cmd)
	req.Link, _ = cmd.Flags().GetString("link")

	return withApp(cmd.Context(), cmd.ErrOrStderr(), func(a *app) error {
		res, err := a.namer.Name(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), res)
	})
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}

	req := requestFromFlags(cmd)
	req.Document = doc
	req.Source = args[0]

	return withApp(cmd.Context(), cmd.ErrOrStderr(), func(a *app) error {
		res, err := a.namer.Name(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), res)
	})
}

func readDocument(cmd *cobra.Command, path string) (*mediainfo.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := mediainfo.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}
