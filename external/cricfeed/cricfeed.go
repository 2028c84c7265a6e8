package cricfeed

type matchesEnvelope struct {
	Data       []matchItem `json:"data"`
	Pagination pagination  `json:"pagination"`
}

type deliveriesEnvelope struct {
	Data []deliveryItem `json:"data"`
}

type pagination struct {
	Count       int  `json:"count"`
	PerPage     int  `json:"per_page"`
	CurrentPage int  `json:"current_page"`
	HasMore     bool `json:"has_more"`
}

type matchItem struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	HomeTeam      string `json:"home_team"`
	AwayTeam      string `json:"away_team"`
	Competition   string `json:"competition"`
	Event         string `json:"event"`
	Winner        string `json:"winner"`
	NoResult      bool   `json:"no_result"`
	FormatOvers   int    `json:"format_overs"`
	International bool   `json:"international"`
}

type deliveryItem struct {
	Innings     int    `json:"innings"`
	Over        int    `json:"over"`
	Ball        int    `json:"ball"`
	Striker     string `json:"striker"`
	NonStriker  string `json:"non_striker"`
	Bowler      string `json:"bowler"`
	BattingTeam string `json:"batting_team"`
	BowlingTeam string `json:"bowling_team"`
	RunsOffBat  int    `json:"runs_off_bat"`
	Extras      int    `json:"extras"`
	Wicket      bool   `json:"wicket"`
	Shot        string `json:"shot"`
	Line        string `json:"line"`
	Length      string `json:"length"`
}
