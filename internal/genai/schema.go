package genai

// Response schemas passed to the API so generated output decodes cleanly
// into domain types.

var courseListSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"courses": map[string]any{
			"type":        "array",
			"description": "List of recommended courses",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":       map[string]any{"type": "string", "description": "Course name"},
					"short_intro": map[string]any{"type": "string", "description": "One-sentence course description"},
					"skills":      map[string]any{"type": "string", "description": "Comma-separated skill tags"},
					"category":    map[string]any{"type": "string", "description": "Broad category like Programming, Data, Web Development"},
					"duration":    map[string]any{"type": "string", "description": "Estimated duration, e.g. '6 weeks'"},
					"rating":      map[string]any{"type": "string", "description": "Realistic rating like '4.7'"},
					"site":        map[string]any{"type": "string", "description": "Platform name, e.g. Coursera, Udemy, edX"},
					"url":         map[string]any{"type": "string", "description": "Valid URL to the course or platform"},
				},
				"required": []string{"title", "short_intro", "skills", "category", "duration", "rating", "site", "url"},
			},
		},
	},
	"required": []string{"courses"},
}

var certificationListSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"certifications": map[string]any{
			"type":        "array",
			"description": "List of recommended certifications",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]any{"type": "string", "description": "Certification name"},
					"difficulty":  map[string]any{"type": "string", "description": "Beginner, Intermediate, or Advanced"},
					"description": map[string]any{"type": "string", "description": "One-sentence description"},
					"link":        map[string]any{"type": "string", "description": "URL to the official certification page"},
				},
				"required": []string{"name", "difficulty", "description", "link"},
			},
		},
	},
	"required": []string{"certifications"},
}

var quizSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"topic": map[string]any{"type": "string", "description": "The quiz topic"},
		"questions": map[string]any{
			"type":        "array",
			"description": "List of multiple-choice questions",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question": map[string]any{"type": "string", "description": "The question text"},
					"options": map[string]any{
						"type":        "array",
						"description": "Exactly 4 answer choices",
						"items":       map[string]any{"type": "string"},
					},
					"correct_answer": map[string]any{"type": "string", "description": "The correct option, must match one of the options exactly"},
				},
				"required": []string{"question", "options", "correct_answer"},
			},
		},
	},
	"required": []string{"topic", "questions"},
}
