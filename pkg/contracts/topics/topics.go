package topics

const (
	// Bets
	BetPlaced    = "bet_placed"
	BetPlacedDLQ = "bet_placed_dlq"
)
