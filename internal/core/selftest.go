package core

import (
	"context"

	"github.com/Digital-Shane/torrent-tidy/internal/media"
)

// SelfTestCase is one known release name and the filename it must produce.
type SelfTestCase struct {
	Input string
	Want  string
	Show  string // expected canonical show name, shows only
}

// SelfTestResult is the outcome of one SelfTestCase.
type SelfTestResult struct {
	Case   SelfTestCase
	Got    string
	Err    error
	Passed bool
}

var MovieSelfTests = []SelfTestCase{
	{Input: "The.Human.Centipede.III.Final.Sequence.2015.1080p.BluRay.x264.YIFY.mp4", Want: "The Human Centipede III Final Sequence (2015).mp4"},
	{Input: "The.Human.Centipede.II.Full.Sequence.2011.UNRATED.DC.1080p.BluRay.H264.AAC-RARBG.mp4", Want: "The Human Centipede II Full Sequence (2011).mp4"},
	{Input: "The.Batman.2022.1080p.WEBRip.x264.AAC5.1-[YTS.MX].mp4", Want: "The Batman (2022).mp4"},
	{Input: "X.2022.1080p.WEBRip.x264.AAC5.1-[YTS.MX].mp4", Want: "X (2022).mp4"},
	{Input: "Wyrmwood.Road.of.the.Dead.2014.1080p.BluRay.x264.YIFY.mp4", Want: "Wyrmwood Road of the Dead (2014).mp4"},
	{Input: "Wyrmwood.Apocalypse.2021.1080p.WEBRip.x264.AAC5.1-[YTS.MX].mp4", Want: "Wyrmwood Apocalypse (2021).mp4"},
	{Input: "The.Outfit.2022.1080p.BluRay.x264.AAC5.1-[YTS.MX].mp4", Want: "The Outfit (2022).mp4"},
	{Input: "2012.2009.1080p.BluRay.x265-RARBG.mp4", Want: "2012 (2009).mp4"},
	{Input: "300 (2006) [1080p] [BluRay] [YTS.MX].mp4", Want: "300 (2006).mp4"},
	{Input: "Dude.Wheres.My.Car.2000.1080p.BluRay.x264.AAC5.1-[YTS.MX].mp4", Want: "Dude Wheres My Car (2000).mp4"},
	{Input: "Snatch.2000.1080p.BluRay.x264-[YTS.AM].mp4", Want: "Snatch (2000).mp4"},
	{Input: "Snatch.2000.REPACK.2160p.4K.BluRay.x265.10bit.AAC5.1-[YTS.MX].mkv", Want: "Snatch (2000).mkv"},
}

var ShowSelfTests = []SelfTestCase{
	{Input: "family.guy.s20e20.1080p.web.h264-cakes[eztv.re].mkv", Want: "Family Guy S20E20 - Jersey Bore.mkv", Show: "Family Guy"},
	{Input: "Stranger.Things.S04E01.1080p.HEVC.x265-MeGusta[eztv.re].mkv", Want: "Stranger Things S04E01 - Chapter One: The Hellfire Club.mkv", Show: "Stranger Things"},
	{Input: "Brooklyn.Nine-Nine.S05E19.WEB.x264-TBS[eztv].mp4", Want: "Brooklyn Nine-Nine S05E19 - Bachelor-ette Party.mp4", Show: "Brooklyn Nine-Nine"},
}

// SelfTestMovies runs the movie cases. No network or filesystem access.
func SelfTestMovies(cases []SelfTestCase) []SelfTestResult {
	results := make([]SelfTestResult, 0, len(cases))
	for _, c := range cases {
		r := SelfTestResult{Case: c}
		title, err := media.ParseMovieTitle(c.Input)
		if err != nil {
			r.Err = err
		} else {
			r.Got = title.Filename()
			r.Passed = r.Got == c.Want
		}
		results = append(results, r)
	}
	return results
}

// SelfTestShows runs the show cases against the configured provider.
func (p *Processor) SelfTestShows(ctx context.Context, cases []SelfTestCase) []SelfTestResult {
	results := make([]SelfTestResult, 0, len(cases))
	for _, c := range cases {
		r := SelfTestResult{Case: c}
		dest, err := p.ShowTitle(ctx, c.Input)
		if err != nil {
			r.Err = err
		} else {
			r.Got = dest.Filename
			r.Passed = dest.Filename == c.Want && dest.ShowName == c.Show
		}
		results = append(results, r)
	}
	return results
}
