// Package sampledata writes synthetic athlete-event datasets in the layout of
// the public Olympic history CSV.
package sampledata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/medalhist/internal/domain/model"
	"github.com/okian/medalhist/pkg/logger"
)

// Header is the column order of the generated file.
var Header = []string{
	"ID", "Name", "Sex", "Age", "Height", "Weight", "Team", "NOC",
	"Games", "Year", "Season", "City", "Sport", "Event", "Medal",
}

// Generator defaults.
const (
	DefaultRows      = 5000
	DefaultSeed      = 1896
	DefaultStartYear = 1896
	DefaultEndYear   = 2016

	gamesEvery    = 4
	medalPercent  = 15
	usTeamPercent = 25
)

// cancelledGames are summer games that never took place.
var cancelledGames = map[int]bool{1916: true, 1940: true, 1944: true}

type team struct{ name, noc string }

var teams = []team{
	{"China", "CHN"},
	{"France", "FRA"},
	{"Germany", "GER"},
	{"Great Britain", "GBR"},
	{"Italy", "ITA"},
	{"Japan", "JPN"},
	{"Soviet Union", "URS"},
	{"Sweden", "SWE"},
	{"Australia", "AUS"},
	{"Hungary", "HUN"},
}

var usTeam = team{"United States", "USA"}

var sports = map[string][]string{
	"Athletics":  {"100 metres", "Marathon", "Long Jump", "Shot Put"},
	"Swimming":   {"100 metres Freestyle", "200 metres Butterfly", "4 x 100 metres Medley Relay"},
	"Rowing":     {"Eights", "Single Sculls"},
	"Gymnastics": {"Individual All-Around", "Horizontal Bar"},
	"Boxing":     {"Heavyweight", "Flyweight"},
	"Fencing":    {"Foil, Individual", "Sabre, Team"},
	"Basketball": {"Basketball"},
	"Diving":     {"Springboard", "Platform"},
	"Wrestling":  {"Freestyle Lightweight"},
	"Cycling":    {"Road Race, Individual"},
}

var sportNames = []string{
	"Athletics", "Swimming", "Rowing", "Gymnastics", "Boxing",
	"Fencing", "Basketball", "Diving", "Wrestling", "Cycling",
}

var cities = map[int]string{
	1896: "Athina", 1900: "Paris", 1904: "St. Louis", 1908: "London", 1912: "Stockholm",
	1920: "Antwerpen", 1924: "Paris", 1928: "Amsterdam", 1932: "Los Angeles", 1936: "Berlin",
	1948: "London", 1952: "Helsinki", 1956: "Melbourne", 1960: "Roma", 1964: "Tokyo",
	1968: "Mexico City", 1972: "Munich", 1976: "Montreal", 1980: "Moskva", 1984: "Los Angeles",
	1988: "Seoul", 1992: "Barcelona", 1996: "Atlanta", 2000: "Sydney", 2004: "Athina",
	2008: "Beijing", 2012: "London", 2016: "Rio de Janeiro",
}

var (
	firstNames = []string{"John", "Mary", "Carl", "Florence", "Michael", "Jesse", "Wilma", "Mark", "Greg", "Janet"}
	lastNames  = []string{"Lewis", "Phelps", "Owens", "Rudolph", "Spitz", "Louganis", "Evans", "Griffith", "Thorpe", "Ewing"}
	medals     = []string{"Gold", "Silver", "Bronze"}
)

// Stats summarizes a generated file.
type Stats struct {
	Rows      int         // data rows written, header excluded
	Malformed int         // rows with an unparseable Year
	USMedals  int         // well-formed rows that are US medal wins
	PerYear   map[int]int // US medal wins by year
}

// Generator produces a deterministic dataset for a given seed.
type Generator struct {
	rows           int
	seed           uint64
	malformedEvery int
	startYear      int
	endYear        int
	logger         logger.Logger
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithRows sets the number of data rows.
func WithRows(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.rows = n
		}
	}
}

// WithSeed sets the PRNG seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithMalformedEvery makes every n-th row carry an unparseable Year. Zero
// disables malformed rows.
func WithMalformedEvery(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.malformedEvery = n
		}
	}
}

// WithYears bounds the games years.
func WithYears(start, end int) Option {
	return func(g *Generator) {
		if start > 0 && end >= start {
			g.startYear, g.endYear = start, end
		}
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		rows:      DefaultRows,
		seed:      DefaultSeed,
		startYear: DefaultStartYear,
		endYear:   DefaultEndYear,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Years returns the summer games years in range.
func (g *Generator) Years() []int {
	var years []int
	first := g.startYear + (gamesEvery-(g.startYear-DefaultStartYear)%gamesEvery)%gamesEvery
	for y := first; y <= g.endYear; y += gamesEvery {
		if !cancelledGames[y] {
			years = append(years, y)
		}
	}
	return years
}

// Write emits the header and all rows to w.
func (g *Generator) Write(ctx context.Context, w io.Writer) (Stats, error) {
	stats := Stats{PerYear: make(map[int]int)}
	years := g.Years()
	if len(years) == 0 {
		return stats, fmt.Errorf("no games between %d and %d", g.startYear, g.endYear)
	}

	rng := rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15)) //nolint:gosec // reproducible test data
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return stats, err
	}

	for i := 1; i <= g.rows; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}
		row, medal := g.row(rng, i, years)
		stats.Rows++
		if g.malformedEvery > 0 && i%g.malformedEvery == 0 {
			row[9] = "unknown"
			stats.Malformed++
		} else if medal {
			year, _ := strconv.Atoi(row[9])
			stats.USMedals++
			stats.PerYear[year]++
		}
		if err := cw.Write(row); err != nil {
			return stats, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return stats, err
	}

	if g.logger != nil {
		g.logger.Info(ctx, "dataset generated",
			logger.Int("rows", stats.Rows),
			logger.Int("malformed", stats.Malformed),
			logger.Int("usMedals", stats.USMedals),
		)
	}
	return stats, nil
}

// row builds one data row. It reports whether the row is a US medal win.
func (g *Generator) row(rng *rand.Rand, i int, years []int) ([]string, bool) {
	t := teams[rng.IntN(len(teams))]
	if rng.IntN(100) < usTeamPercent {
		t = usTeam
	}
	year := years[rng.IntN(len(years))]
	sport := sportNames[rng.IntN(len(sportNames))]
	events := sports[sport]
	sex := "M"
	if rng.IntN(2) == 0 {
		sex = "F"
	}
	event := sport + " " + genderLabel(sex) + " " + events[rng.IntN(len(events))]
	medal := model.NoMedal
	if rng.IntN(100) < medalPercent {
		medal = medals[rng.IntN(len(medals))]
	}

	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(strconv.FormatUint(g.seed, 10)+"/"+strconv.Itoa(i)))
	name := firstNames[rng.IntN(len(firstNames))] + " " + lastNames[rng.IntN(len(lastNames))]

	return []string{
		id.String(),
		name,
		sex,
		strconv.Itoa(16 + rng.IntN(20)),
		optionalMeasure(rng, 150, 60),
		optionalMeasure(rng, 45, 70),
		t.name,
		t.noc,
		strconv.Itoa(year) + " Summer",
		strconv.Itoa(year),
		"Summer",
		cities[year],
		sport,
		event,
		medal,
	}, t == usTeam && medal != model.NoMedal
}

func genderLabel(sex string) string {
	if sex == "F" {
		return "Women's"
	}
	return "Men's"
}

// optionalMeasure returns a value in [base, base+spread) or "NA" for about
// one row in five, as older games often lack measurements.
func optionalMeasure(rng *rand.Rand, base, spread int) string {
	if rng.IntN(5) == 0 {
		return "NA"
	}
	return strconv.Itoa(base + rng.IntN(spread))
}
