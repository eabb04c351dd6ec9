package model

// Pair is one table entry as exposed to clients: the attack card id
// and, when covered, the covering card id (NoCover = -1 otherwise).
type Pair struct {
	Attack int `json:"attack"`
	Cover  int `json:"cover"`
}

// Snapshot is the per-seat view of a running match. Only the
// requesting seat's hand appears in full; every other seat is exposed
// as a count so clients render card backs for them.
type Snapshot struct {
	Seat     int      `json:"seat"`
	Hand     []int    `json:"hand"`
	Sizes    []int    `json:"sizes"`
	Names    []string `json:"names"`
	Attacker int      `json:"attacker"`
	Defender int      `json:"defender"`
	Phase    string   `json:"phase"`
	DeckSize int      `json:"deckSize"`
	Bottom   int      `json:"bottom"` // visible bottom card id, -1 once the deck is empty
	Pairs    []Pair   `json:"pairs"`
}

// WaitInfo answers ready/wait polls during the lobby phase.
type WaitInfo struct {
	Ready   int `json:"ready"`
	Desired int `json:"desired"`
}
