package media

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseShowTitle(t *testing.T) {
	tests := []struct {
		input string
		want  ShowTitle
		tag   string
	}{
		{
			input: "family.guy.s20e20.1080p.web.h264-cakes[eztv.re].mkv",
			want:  ShowTitle{RawName: "family.guy", Season: 20, Episode: 20, Extension: ".mkv"},
			tag:   "S20E20",
		},
		{
			input: "Stranger.Things.S04E01.1080p.HEVC.x265-MeGusta[eztv.re].mkv",
			want:  ShowTitle{RawName: "Stranger.Things", Season: 4, Episode: 1, Extension: ".mkv"},
			tag:   "S04E01",
		},
		{
			input: "Brooklyn.Nine-Nine.S05E19.WEB.x264-TBS[eztv].mp4",
			want:  ShowTitle{RawName: "Brooklyn.Nine-Nine", Season: 5, Episode: 19, Extension: ".mp4"},
			tag:   "S05E19",
		},
		{
			input: "Stranger.Things.S4E1.720p.MKV",
			want:  ShowTitle{RawName: "Stranger.Things", Season: 4, Episode: 1, Extension: ".MKV"},
			tag:   "S04E01",
		},
		{
			input: "The Boys - S02E01 - The Big Ride.mkv",
			want:  ShowTitle{RawName: "The Boys -", Season: 2, Episode: 1, Extension: ".mkv"},
			tag:   "S02E01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseShowTitle(tt.input)
			if err != nil {
				t.Fatalf("ParseShowTitle(%q) error = %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseShowTitle(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			if got.Tag() != tt.tag {
				t.Errorf("ParseShowTitle(%q).Tag() = %q, want %q", tt.input, got.Tag(), tt.tag)
			}
		})
	}
}

func TestParseShowTitleNoMarker(t *testing.T) {
	_, err := ParseShowTitle("The.Batman.2022.1080p.mp4")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Step != "season/episode" {
		t.Errorf("Step = %q, want %q", perr.Step, "season/episode")
	}
}

func TestSeasonEpisodeTagPadding(t *testing.T) {
	for season := 0; season < 100; season += 7 {
		for episode := 0; episode < 100; episode += 9 {
			tag := SeasonEpisodeTag(season, episode)
			if len(tag) != 6 {
				t.Errorf("SeasonEpisodeTag(%d, %d) = %q, want six characters", season, episode, tag)
			}
		}
	}
}

func TestShowTitleFilename(t *testing.T) {
	show := ShowTitle{RawName: "family.guy", Season: 20, Episode: 20, Extension: ".mkv"}
	got := show.Filename("Family Guy", "Jersey Bore")
	want := "Family Guy S20E20 - Jersey Bore.mkv"
	if got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestNormalizeShowName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"family.guy", "family guy"},
		{"the.boys.2019", "the boys"},
		{"The Boys -", "The Boys"},
		{"Brooklyn.Nine-Nine", "Brooklyn Nine-Nine"},
		{"1923", "1923"},
		{" Stranger.Things ", "Stranger Things"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeShowName(tt.raw); got != tt.want {
				t.Errorf("NormalizeShowName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
