package postgres

import "time"

type teamTableModel struct {
	CanonicalID string `db:"canonical_id"`
	Name        string `db:"name"`
	Short       string `db:"short_name"`
}

type teamAliasTableModel struct {
	TeamCanonicalID string     `db:"team_canonical_id"`
	Label           string     `db:"label"`
	ValidFrom       *time.Time `db:"valid_from"`
	ValidTo         *time.Time `db:"valid_to"`
}

type leagueTableModel struct {
	CanonicalID   string `db:"canonical_id"`
	Name          string `db:"name"`
	International bool   `db:"is_international"`
}

type leagueAliasTableModel struct {
	LeagueCanonicalID string     `db:"league_canonical_id"`
	Label             string     `db:"label"`
	ValidFrom         *time.Time `db:"valid_from"`
	ValidTo           *time.Time `db:"valid_to"`
}

type playerTableModel struct {
	Label   string `db:"label"`
	BatHand string `db:"bat_hand"`
	BowlArm string `db:"bowl_arm"`
}
