package memory

import (
	"time"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/delivery"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/match"
)

const (
	LeagueIDIPL  = "ipl"
	LeagueIDT20I = "t20i"

	TeamIDChennai   = "csk"
	TeamIDMumbai    = "mi"
	TeamIDBangalore = "rcb"
	TeamIDKolkata   = "kkr"
	TeamIDDelhi     = "dc"
	TeamIDPunjab    = "pbks"
	TeamIDIndia     = "ind"
	TeamIDAustralia = "aus"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func SeedLeagues() []identity.LeagueIdentity {
	return []identity.LeagueIdentity{
		{
			CanonicalID: LeagueIDIPL,
			Name:        "Indian Premier League",
			Aliases: []identity.Alias{
				{Label: "IPL"},
				{Label: "DLF IPL", ValidTo: datePtr(2012, time.December, 31)},
				{Label: "Pepsi IPL", ValidFrom: datePtr(2013, time.January, 1), ValidTo: datePtr(2015, time.December, 31)},
				{Label: "Vivo IPL", ValidFrom: datePtr(2016, time.January, 1), ValidTo: datePtr(2021, time.December, 31)},
				{Label: "Tata IPL", ValidFrom: datePtr(2022, time.January, 1)},
			},
		},
		{
			CanonicalID:   LeagueIDT20I,
			Name:          "T20 Internationals",
			Aliases:       []identity.Alias{{Label: "T20I"}},
			International: true,
		},
	}
}

// SeedTeams carries the Delhi franchise rename: Delhi Daredevils through the
// 2018 season, Delhi Capitals from 2019. Both labels resolve to one canonical
// id so statistics and ratings stay continuous across the rename.
func SeedTeams() []identity.TeamIdentity {
	return []identity.TeamIdentity{
		{CanonicalID: TeamIDChennai, Name: "Chennai Super Kings", Short: "CSK"},
		{CanonicalID: TeamIDMumbai, Name: "Mumbai Indians", Short: "MI"},
		{CanonicalID: TeamIDBangalore, Name: "Royal Challengers Bangalore", Short: "RCB",
			Aliases: []identity.Alias{{Label: "Royal Challengers Bengaluru", ValidFrom: datePtr(2024, time.January, 1)}}},
		{CanonicalID: TeamIDKolkata, Name: "Kolkata Knight Riders", Short: "KKR"},
		{CanonicalID: TeamIDDelhi, Name: "Delhi Capitals", Short: "DC",
			Aliases: []identity.Alias{
				{Label: "Delhi Daredevils", ValidTo: datePtr(2018, time.December, 31)},
				{Label: "DD", ValidTo: datePtr(2018, time.December, 31)},
			}},
		{CanonicalID: TeamIDPunjab, Name: "Punjab Kings", Short: "PBKS",
			Aliases: []identity.Alias{
				{Label: "Kings XI Punjab", ValidTo: datePtr(2021, time.February, 1)},
				{Label: "KXIP", ValidTo: datePtr(2021, time.February, 1)},
			}},
		{CanonicalID: TeamIDIndia, Name: "India", Short: "IND"},
		{CanonicalID: TeamIDAustralia, Name: "Australia", Short: "AUS"},
	}
}

func SeedHandedness() []identity.Handedness {
	return []identity.Handedness{
		{Player: "MS Dhoni", BatHand: identity.HandRight, BowlArm: identity.HandRight},
		{Player: "RG Sharma", BatHand: identity.HandRight, BowlArm: identity.HandRight},
		{Player: "V Kohli", BatHand: identity.HandRight, BowlArm: identity.HandRight},
		{Player: "S Dhawan", BatHand: identity.HandLeft, BowlArm: identity.HandRight},
		{Player: "RR Pant", BatHand: identity.HandLeft, BowlArm: identity.HandRight},
		{Player: "JJ Bumrah", BatHand: identity.HandRight, BowlArm: identity.HandRight},
		{Player: "T Boult", BatHand: identity.HandRight, BowlArm: identity.HandLeft},
		{Player: "RA Jadeja", BatHand: identity.HandLeft, BowlArm: identity.HandLeft},
		{Player: "AR Patel", BatHand: identity.HandLeft, BowlArm: identity.HandLeft},
		{Player: "PP Shaw", BatHand: identity.HandRight, BowlArm: identity.HandRight},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:          "ipl-2018-final",
			Date:        time.Date(2018, time.May, 27, 0, 0, 0, 0, time.UTC),
			HomeLabel:   "Chennai Super Kings",
			AwayLabel:   "Delhi Daredevils",
			LeagueLabel: "Vivo IPL",
			Event:       "Final",
			WinnerLabel: "Chennai Super Kings",
			FormatOvers: 20,
		},
		{
			ID:          "ipl-2019-m05",
			Date:        time.Date(2019, time.March, 30, 0, 0, 0, 0, time.UTC),
			HomeLabel:   "Delhi Capitals",
			AwayLabel:   "Kolkata Knight Riders",
			LeagueLabel: "Vivo IPL",
			WinnerLabel: "Delhi Capitals",
			FormatOvers: 20,
		},
		{
			ID:          "ipl-2020-m12",
			Date:        time.Date(2020, time.September, 25, 0, 0, 0, 0, time.UTC),
			HomeLabel:   "Mumbai Indians",
			AwayLabel:   "Royal Challengers Bangalore",
			LeagueLabel: "IPL",
			WinnerLabel: "Mumbai Indians",
			FormatOvers: 20,
		},
		{
			ID:          "ipl-2020-m30",
			Date:        time.Date(2020, time.October, 17, 0, 0, 0, 0, time.UTC),
			HomeLabel:   "Delhi Capitals",
			AwayLabel:   "Chennai Super Kings",
			LeagueLabel: "IPL",
			WinnerLabel: "Delhi Capitals",
			FormatOvers: 20,
		},
		{
			ID:          "ipl-2021-m27",
			Date:        time.Date(2021, time.April, 29, 0, 0, 0, 0, time.UTC),
			HomeLabel:   "Punjab Kings",
			AwayLabel:   "Mumbai Indians",
			LeagueLabel: "Vivo IPL",
			WinnerLabel: "Punjab Kings",
			FormatOvers: 20,
		},
		{
			ID:          "ipl-2021-m44",
			Date:        time.Date(2021, time.October, 2, 0, 0, 0, 0, time.UTC),
			HomeLabel:   "Delhi Capitals",
			AwayLabel:   "Mumbai Indians",
			LeagueLabel: "Vivo IPL",
			NoResult:    true,
			FormatOvers: 20,
		},
		{
			ID:            "t20i-2021-aus",
			Date:          time.Date(2021, time.November, 14, 0, 0, 0, 0, time.UTC),
			HomeLabel:     "India",
			AwayLabel:     "Australia",
			LeagueLabel:   "T20I",
			WinnerLabel:   "Australia",
			FormatOvers:   20,
			International: true,
		},
	}
}

// SeedDeliveries expands a compact per-innings script into ball records. The
// run pattern is synthetic but structurally faithful: six-ball overs, both
// innings present, wickets and boundaries spread across phases.
func SeedDeliveries() []delivery.Delivery {
	out := make([]delivery.Delivery, 0, 480)
	out = append(out, scriptInnings("ipl-2019-m05", 1, "Delhi Capitals", "Kolkata Knight Riders", "PP Shaw", "S Dhawan", "JJ Bumrah")...)
	out = append(out, scriptInnings("ipl-2019-m05", 2, "Kolkata Knight Riders", "Delhi Capitals", "RG Sharma", "V Kohli", "AR Patel")...)
	out = append(out, scriptInnings("ipl-2020-m30", 1, "Delhi Capitals", "Chennai Super Kings", "RR Pant", "S Dhawan", "RA Jadeja")...)
	out = append(out, scriptInnings("ipl-2020-m30", 2, "Chennai Super Kings", "Delhi Capitals", "MS Dhoni", "RA Jadeja", "AR Patel")...)
	return out
}

func scriptInnings(matchID string, innings int, battingLabel, bowlingLabel, striker, nonStriker, bowler string) []delivery.Delivery {
	// Deterministic pattern: a boundary to open each over, a dot to close it,
	// singles between, one wicket in overs 5, 12 and 18.
	out := make([]delivery.Delivery, 0, 120)
	for over := 1; over <= 20; over++ {
		for ball := 1; ball <= 6; ball++ {
			d := delivery.Delivery{
				MatchID:      matchID,
				Innings:      innings,
				Over:         over,
				Ball:         ball,
				Striker:      striker,
				NonStriker:   nonStriker,
				Bowler:       bowler,
				BattingLabel: battingLabel,
				BowlingLabel: bowlingLabel,
				Shot:         "drive",
				Line:         "good",
				Length:       "full",
			}
			switch {
			case ball == 1:
				d.Runs = 4
			case ball == 6:
				d.Runs = 0
			case ball == 3 && (over == 5 || over == 12 || over == 18):
				d.Wicket = true
			default:
				d.Runs = 1
			}
			out = append(out, d)
		}
	}
	return out
}
