package model

// Course is a recommended online course. Titles are unique; AI-generated
// duplicates are dropped at insert time.
type Course struct {
	ID         int64  `json:"-"`
	Title      string `json:"title"`
	ShortIntro string `json:"short_intro"`
	Skills     string `json:"skills"`
	Category   string `json:"category"`
	Duration   string `json:"duration"`
	Rating     string `json:"rating"`
	Site       string `json:"site"`
	URL        string `json:"url"`
}

// Field length limits enforced before persisting AI output.
const (
	MaxCourseTitleLen    = 200
	MaxCourseSkillsLen   = 400
	MaxCourseCategoryLen = 120
	MaxCourseDurationLen = 80
	MaxCourseRatingLen   = 20
	MaxCourseSiteLen     = 80
)

// Clamp truncates oversized fields and fills blanks with safe defaults, so
// an over-chatty generation never fails a column constraint.
func (c *Course) Clamp() {
	if c.Title == "" {
		c.Title = "Untitled"
	}
	if c.Category == "" {
		c.Category = "General"
	}
	if c.Duration == "" {
		c.Duration = "Self-paced"
	}
	if c.Rating == "" {
		c.Rating = "4.5"
	}
	if c.Site == "" {
		c.Site = "Online"
	}
	if c.URL == "" {
		c.URL = "https://www.google.com/"
	}
	c.Title = truncate(c.Title, MaxCourseTitleLen)
	c.Skills = truncate(c.Skills, MaxCourseSkillsLen)
	c.Category = truncate(c.Category, MaxCourseCategoryLen)
	c.Duration = truncate(c.Duration, MaxCourseDurationLen)
	c.Rating = truncate(c.Rating, MaxCourseRatingLen)
	c.Site = truncate(c.Site, MaxCourseSiteLen)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
