package question

// DefaultBank returns the built-in general practice set, used when no
// question file is configured.
func DefaultBank() *Bank {
	qs := make([]Question, len(practiceSet))
	for i, q := range practiceSet {
		qs[i] = Question{
			Text:       q.Text,
			Tip:        q.Tip,
			KeyPhrases: append([]string(nil), q.KeyPhrases...),
		}
	}
	return &Bank{
		Company:   "Practice Co.",
		JobTitle:  "General",
		Questions: qs,
	}
}

var practiceSet = []Question{
	{
		Text:       "Tell me about yourself and why you're interested in this role.",
		Tip:        "Keep it under 2 minutes. Focus on relevant experience, key achievements, and why this specific role excites you.",
		KeyPhrases: []string{"experience", "background", "passionate", "career growth", "skills", "team"},
	},
	{
		Text:       "Describe a time you had to learn a new technology or tool quickly to deliver on a project.",
		Tip:        "Use the STAR method: Situation, Task, Action, Result. Emphasize your learning process and the outcome.",
		KeyPhrases: []string{"learned quickly", "deadline", "documentation", "hands-on", "delivered", "outcome"},
	},
	{
		Text:       "Tell me about a time you disagreed with a teammate or manager. How did you handle it?",
		Tip:        "Show emotional intelligence. Focus on listening, finding common ground, and reaching a productive resolution.",
		KeyPhrases: []string{"disagreement", "listened", "perspective", "compromise", "resolved", "professional"},
	},
	{
		Text:       "Walk me through how you would design and implement a REST API for a new feature.",
		Tip:        "Discuss endpoints, HTTP methods, data models, authentication, error handling, and testing strategy.",
		KeyPhrases: []string{"endpoints", "authentication", "error handling", "database", "testing", "documentation"},
	},
	{
		Text:       "How do you approach debugging a complex issue in production?",
		Tip:        "Describe your systematic process: logs, reproduction steps, isolating variables, and preventing recurrence.",
		KeyPhrases: []string{"logs", "reproduce", "isolate", "root cause", "monitoring", "prevention"},
	},
	{
		Text:       "What interests you about our company and our mission?",
		Tip:        "Show you've done your research. Connect their mission to your personal values and career goals.",
		KeyPhrases: []string{"mission", "product", "culture", "growth", "impact", "values"},
	},
	{
		Text:       "Imagine you're given a project with unclear requirements and a tight deadline. How would you proceed?",
		Tip:        "Show you can handle ambiguity. Talk about clarifying priorities, communicating with stakeholders, and iterating.",
		KeyPhrases: []string{"clarify requirements", "stakeholders", "prioritize", "iterate", "communicate", "MVP"},
	},
	{
		Text:       "What questions do you have for us about the team or the role?",
		Tip:        "Ask thoughtful questions about team culture, growth opportunities, tech stack decisions, or current challenges.",
		KeyPhrases: []string{"team structure", "growth", "challenges", "tech stack", "mentorship", "roadmap"},
	},
}
