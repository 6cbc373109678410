package media

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMovieTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"The.Human.Centipede.III.Final.Sequence.2015.1080p.BluRay.x264.YIFY.mp4", "The Human Centipede III Final Sequence (2015).mp4"},
		{"The.Human.Centipede.II.Full.Sequence.2011.UNRATED.DC.1080p.BluRay.H264.AAC-RARBG.mp4", "The Human Centipede II Full Sequence (2011).mp4"},
		{"The.Batman.2022.1080p.WEBRip.x264.AAC5.1-[YTS.MX].mp4", "The Batman (2022).mp4"},
		{"X.2022.1080p.WEBRip.x264.AAC5.1-[YTS.MX].mp4", "X (2022).mp4"},
		{"Wyrmwood.Road.of.the.Dead.2014.1080p.BluRay.x264.YIFY.mp4", "Wyrmwood Road of the Dead (2014).mp4"},
		{"Wyrmwood.Apocalypse.2021.1080p.WEBRip.x264.AAC5.1-[YTS.MX].mp4", "Wyrmwood Apocalypse (2021).mp4"},
		{"The.Outfit.2022.1080p.BluRay.x264.AAC5.1-[YTS.MX].mp4", "The Outfit (2022).mp4"},
		{"2012.2009.1080p.BluRay.x265-RARBG.mp4", "2012 (2009).mp4"},
		{"300 (2006) [1080p] [BluRay] [YTS.MX].mp4", "300 (2006).mp4"},
		{"Dude.Wheres.My.Car.2000.1080p.BluRay.x264.AAC5.1-[YTS.MX].mp4", "Dude Wheres My Car (2000).mp4"},
		{"Snatch.2000.1080p.BluRay.x264-[YTS.AM].mp4", "Snatch (2000).mp4"},
		{"Snatch.2000.REPACK.2160p.4K.BluRay.x265.10bit.AAC5.1-[YTS.MX].mkv", "Snatch (2000).mkv"},
		{"Heat.1995.720p.BluRay.x264.MKV", "Heat (1995).MKV"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMovieTitle(tt.input)
			if err != nil {
				t.Fatalf("ParseMovieTitle(%q) error = %v", tt.input, err)
			}
			if got.Filename() != tt.want {
				t.Errorf("ParseMovieTitle(%q).Filename() = %q, want %q", tt.input, got.Filename(), tt.want)
			}
		})
	}
}

func TestParseMovieTitleFields(t *testing.T) {
	got, err := ParseMovieTitle("The.Batman.2022.1080p.WEBRip.x264.AAC5.1-[YTS.MX].mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := MovieTitle{Title: "The Batman", Year: "2022", Extension: ".mp4", Resolution: "1080p"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseMovieTitle mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMovieTitleErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		step  string
	}{
		{"no_resolution", "The.Batman.2022.WEBRip.mp4", "resolution"},
		{"no_year", "The.Batman.1080p.WEBRip.mp4", "year"},
		{"empty_title", "..2022.1080p.mp4", "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMovieTitle(tt.input)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("ParseMovieTitle(%q) error = %v, want *ParseError", tt.input, err)
			}
			if perr.Step != tt.step {
				t.Errorf("ParseMovieTitle(%q) failed at %q, want %q", tt.input, perr.Step, tt.step)
			}
		})
	}
}

func TestResolutionMarkerPriority(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Movie.2160p.720p.mkv", "720p"},
		{"Movie.2160p.1080p.mkv", "1080p"},
		{"Movie.2160p.mkv", "2160p"},
	}

	for _, tt := range tests {
		m, ok := FirstMatch(resolutionRules, tt.input)
		if !ok {
			t.Fatalf("FirstMatch(resolutionRules, %q) found nothing", tt.input)
		}
		if m.Text != tt.want {
			t.Errorf("FirstMatch(resolutionRules, %q) = %q, want %q", tt.input, m.Text, tt.want)
		}
	}

	if _, ok := FirstMatch(resolutionRules, "Movie.480p.mkv"); ok {
		t.Error("FirstMatch matched a name without a known resolution marker")
	}
}

func TestRuleMatchGroups(t *testing.T) {
	m, ok := movieYearRule.Match("The.Batman.2022.")
	if !ok {
		t.Fatal("movieYearRule did not match")
	}
	want := Match{
		Rule:   movieYearRule,
		Start:  0,
		End:    15,
		Text:   "The.Batman.2022",
		Groups: []string{"The.Batman", "2022"},
	}
	if diff := cmp.Diff(want.Groups, m.Groups); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
	if m.Start != want.Start || m.End != want.End || m.Text != want.Text || m.Rule.Name != want.Rule.Name {
		t.Errorf("Match = {%d %d %q %q}, want {%d %d %q %q}", m.Start, m.End, m.Text, m.Rule.Name, want.Start, want.End, want.Text, want.Rule.Name)
	}
}
