package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Digital-Shane/torrent-tidy/internal/core"
	"github.com/Digital-Shane/torrent-tidy/internal/log"
	"github.com/Digital-Shane/torrent-tidy/internal/media"
	"github.com/Digital-Shane/torrent-tidy/internal/provider"
	"github.com/google/go-cmp/cmp"
)

// catalogProvider answers lookups from a fixed table.
type catalogProvider struct{}

var catalog = map[string]struct {
	id, name string
	episodes map[string]string
}{
	"family guy":         {"84", "Family Guy", map[string]string{"S20E20": "Jersey Bore"}},
	"stranger things":    {"2993", "Stranger Things", map[string]string{"S04E01": "Chapter One: The Hellfire Club"}},
	"brooklyn nine-nine": {"49", "Brooklyn Nine-Nine", map[string]string{"S05E19": "Bachelor/ette Party"}},
}

func (catalogProvider) Name() string                                 { return "catalog" }
func (catalogProvider) Description() string                          { return "fixed test catalog" }
func (catalogProvider) Configure(config map[string]interface{}) error { return nil }

func (catalogProvider) Fetch(ctx context.Context, req provider.FetchRequest) (*provider.Metadata, error) {
	notFound := &provider.ProviderError{Provider: "catalog", Code: provider.CodeNotFound, Message: "no match"}
	if req.MediaType == provider.MediaTypeShow {
		show, ok := catalog[strings.ToLower(req.Name)]
		if !ok {
			return nil, notFound
		}
		return &provider.Metadata{
			Core: provider.CoreMetadata{Title: show.name},
			IDs:  map[string]string{"series_id": show.id},
		}, nil
	}
	for _, show := range catalog {
		if show.id == req.ID {
			if title, ok := show.episodes[media.SeasonEpisodeTag(req.Season, req.Episode)]; ok {
				return &provider.Metadata{Core: provider.CoreMetadata{EpisodeName: title}}, nil
			}
		}
	}
	return nil, notFound
}

type cliEnv struct {
	home      string
	downloads string
	movies    string
	shows     string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	env := &cliEnv{
		home:      home,
		downloads: filepath.Join(home, "downloads"),
		movies:    filepath.Join(home, "movies"),
		shows:     filepath.Join(home, "shows"),
	}
	for _, dir := range []string{env.downloads, env.movies, env.shows} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return env
}

func (e *cliEnv) touch(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(e.downloads, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes the CLI with the library roots pointed at the env.
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	registry := provider.NewRegistry()
	registry.Register("catalog", func() provider.Provider { return catalogProvider{} }, false)

	base := []string{
		"--config=" + filepath.Join(e.home, "config.toml"),
		"--movies-dir=" + e.movies,
		"--shows-dir=" + e.shows,
		"--provider=catalog",
	}
	root := newRootCommand(registry)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(base, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func entries(t *testing.T, dir string) []string {
	t.Helper()
	list, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := []string{}
	for _, e := range list {
		names = append(names, e.Name())
	}
	return names
}

func TestRootArguments(t *testing.T) {
	env := newCLIEnv(t)

	if _, err := env.run(t); !errors.Is(err, core.ErrInvalidArguments) {
		t.Errorf("no args error = %v, want ErrInvalidArguments", err)
	}
	if _, err := env.run(t, "a", "b"); !errors.Is(err, core.ErrInvalidArguments) {
		t.Errorf("two args error = %v, want ErrInvalidArguments", err)
	}
	if _, err := env.run(t, filepath.Join(env.downloads, "missing")); !errors.Is(err, core.ErrPathNotFound) {
		t.Errorf("missing path error = %v, want ErrPathNotFound", err)
	}
}

func TestRootFilesMovie(t *testing.T) {
	env := newCLIEnv(t)
	src := env.touch(t, "The.Outfit.2022.1080p.BluRay.x264.AAC5.1-[YTS.MX].mp4")

	if _, err := env.run(t, src); err != nil {
		t.Fatalf("run error = %v", err)
	}
	if diff := cmp.Diff([]string{"The Outfit (2022).mp4"}, entries(t, env.movies)); diff != "" {
		t.Errorf("movies mismatch (-want +got):\n%s", diff)
	}

	// Re-running is a no-op with a notice
	out, err := env.run(t, src)
	if err != nil {
		t.Fatalf("second run error = %v", err)
	}
	if !strings.Contains(out, "already exists, not moving") {
		t.Errorf("second run output = %q", out)
	}
}

func TestRootFilesShowDryRun(t *testing.T) {
	env := newCLIEnv(t)
	src := env.touch(t, "family.guy.s20e20.1080p.web.h264-cakes[eztv.re].mkv")

	out, err := env.run(t, "--dry-run", src)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}

	showDir := filepath.Join(env.shows, "Family Guy")
	want := "mkdir '" + showDir + "'\n" +
		`ln "` + src + `" "` + filepath.Join(showDir, "Family Guy S20E20 - Jersey Bore.mkv") + `"` + "\n"
	if out != want {
		t.Errorf("dry run output = %q, want %q", out, want)
	}
	if got := entries(t, env.shows); len(got) != 0 {
		t.Errorf("dry run created %v", got)
	}
}

func TestRootUnrecognized(t *testing.T) {
	env := newCLIEnv(t)
	src := env.touch(t, "ubuntu-24.04-desktop-amd64.iso")

	_, err := env.run(t, src)
	if !errors.Is(err, core.ErrUnrecognized) || err.Error() != "torrent not recognized" {
		t.Errorf("run error = %v, want torrent not recognized", err)
	}
}

func TestHistoryAndUndo(t *testing.T) {
	env := newCLIEnv(t)
	src := env.touch(t, "Stranger.Things.S04E01.1080p.HEVC.x265-MeGusta[eztv.re].mkv")

	if _, err := env.run(t, src); err != nil {
		t.Fatalf("run error = %v", err)
	}
	showDir := filepath.Join(env.shows, "Stranger Things")
	if diff := cmp.Diff([]string{"Stranger Things S04E01 - Chapter One: The Hellfire Club.mkv"}, entries(t, showDir)); diff != "" {
		t.Fatalf("show dir mismatch (-want +got):\n%s", diff)
	}

	sessions, err := log.NewJournal(filepath.Join(env.home, ".torrent-tidy", "logs"), true).Sessions(1)
	if err != nil || len(sessions) != 1 {
		t.Fatalf("Sessions() = %d sessions, err %v; want 1", len(sessions), err)
	}
	meta := sessions[0].Session.Metadata
	if meta.TorrentPath != src {
		t.Errorf("recorded torrent path = %q, want %q", meta.TorrentPath, src)
	}

	out, err := env.run(t, "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	for _, want := range []string{"SESSION", "TORRENT", meta.SessionID[:8], filepath.Base(src), "live"} {
		if !strings.Contains(out, want) {
			t.Errorf("history output missing %q:\n%s", want, out)
		}
	}

	out, err = env.run(t, "undo")
	if err != nil {
		t.Fatalf("undo error = %v", err)
	}
	if !strings.HasPrefix(out, "Undid 2 operations") {
		t.Errorf("undo output = %q", out)
	}
	if got := entries(t, env.shows); len(got) != 0 {
		t.Errorf("shows dir after undo = %v, want empty", got)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("undo touched the torrent file: %v", err)
	}

	out, err = env.run(t, "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if !strings.Contains(out, "No sessions recorded.") {
		t.Errorf("history after undo = %q", out)
	}
}

func TestSelfTest(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "self-test")
	if err != nil {
		t.Fatalf("self-test error = %v\n%s", err, out)
	}
	if strings.Contains(out, "FAILED") {
		t.Errorf("self-test reported failures:\n%s", out)
	}
	if got := strings.Count(out, "PASSED"); got != len(core.MovieSelfTests)+len(core.ShowSelfTests) {
		t.Errorf("PASSED count = %d\n%s", got, out)
	}

	flagOut, err := env.run(t, "--self-test")
	if err != nil {
		t.Fatalf("--self-test error = %v", err)
	}
	if flagOut != out {
		t.Errorf("--self-test output differs from self-test subcommand")
	}
}

func TestConfigCommand(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "config")
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	for _, want := range []string{"movies_dir", env.movies, "[lookup]", "catalog"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}

	if _, err := env.run(t, "config", "--init"); err != nil {
		t.Fatalf("config --init error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.home, "config.toml")); err != nil {
		t.Errorf("config --init did not write file: %v", err)
	}
	if _, err := env.run(t, "config", "--init"); err == nil {
		t.Error("second config --init error = nil, want exists error")
	}
}

func TestUnknownProvider(t *testing.T) {
	env := newCLIEnv(t)
	src := env.touch(t, "Heat.1995.1080p.mkv")

	_, err := env.run(t, src, "--provider", "anidb")
	if err == nil || !strings.Contains(err.Error(), `"anidb" is not supported`) {
		t.Errorf("run error = %v, want unsupported provider", err)
	}
}

func TestHistoryTorrentFollowsFlags(t *testing.T) {
	env := newCLIEnv(t)
	src := env.touch(t, "Heat.1995.1080p.BluRay.x264/Heat.1995.1080p.BluRay.x264.mkv")

	if _, err := env.run(t, filepath.Dir(src), "--dry-run=false"); err != nil {
		t.Fatalf("run error = %v", err)
	}

	out, err := env.run(t, "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if !strings.Contains(out, "Heat.1995.1080p.BluRay.x264") {
		t.Errorf("history output missing torrent name:\n%s", out)
	}
	if strings.Contains(out, "--dry-run") {
		t.Errorf("history shows a flag as the torrent:\n%s", out)
	}
}

func TestProviderFlagIsNormalized(t *testing.T) {
	env := newCLIEnv(t)
	src := env.touch(t, "Family.Guy.S20E20.720p.WEB.x264-GALAXY.mkv")

	if _, err := env.run(t, src, "--provider= Catalog "); err != nil {
		t.Fatalf("run error = %v", err)
	}
	want := []string{"Family Guy S20E20 - Jersey Bore.mkv"}
	if diff := cmp.Diff(want, entries(t, filepath.Join(env.shows, "Family Guy"))); diff != "" {
		t.Errorf("show dir mismatch (-want +got):\n%s", diff)
	}
}

func TestDirFlagsExpandHome(t *testing.T) {
	env := newCLIEnv(t)
	src := env.touch(t, "Heat.1995.1080p.mkv")

	if _, err := env.run(t, src, "--movies-dir=~/movies"); err != nil {
		t.Fatalf("run error = %v", err)
	}
	if diff := cmp.Diff([]string{"Heat (1995).mkv"}, entries(t, env.movies)); diff != "" {
		t.Errorf("movies dir mismatch (-want +got):\n%s", diff)
	}
}
