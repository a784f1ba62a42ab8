package models

// Milestone is a detected storyline about the upcoming game night. Entries
// are ephemeral: recomputed per request, never persisted.
type Milestone struct {
	Type        string   `json:"type"`
	Emoji       string   `json:"emoji"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    int      `json:"priority"` // higher = more interesting
	Players     []string `json:"players"`
}
