package events

// BetPlaced é publicado depois que o serviço aceita uma aposta.
// Valores monetários e odds vão como string decimal para não perder precisão.
type BetPlaced struct {
	BetID           string `json:"bet_id"`
	UserID          string `json:"user_id"`
	GameID          string `json:"game_id"`
	BetType         string `json:"bet_type"`
	Selection       string `json:"selection"`
	Odds            string `json:"odds"`
	Stake           string `json:"stake"`
	StakeCents      int64  `json:"stake_cents"`
	PotentialPayout string `json:"potential_payout"`
	TsUnixMs        int64  `json:"ts_unix_ms"`
}
