package model

// Certification is a recommended industry certification. Names are unique.
type Certification struct {
	ID          int64  `json:"-"`
	Name        string `json:"name"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

const (
	MaxCertificationNameLen       = 200
	MaxCertificationDifficultyLen = 50
)

// Clamp truncates oversized fields and fills blanks with safe defaults.
func (c *Certification) Clamp() {
	if c.Name == "" {
		c.Name = "Untitled"
	}
	if c.Difficulty == "" {
		c.Difficulty = "Beginner"
	}
	c.Name = truncate(c.Name, MaxCertificationNameLen)
	c.Difficulty = truncate(c.Difficulty, MaxCertificationDifficultyLen)
}
