package config

import "time"

const (
	// Rate limit window
	RateLimitWindow = time.Minute

	// Idle widget sweep interval
	WidgetSweepInterval = 60 * time.Second

	// Stale rate limit rows older than this are pruned
	RateLimitRetention = 10 * time.Minute

	// Greeting prompt sent on every session start
	GreetingPrompt = "Hello, introduce yourself based on your system instructions."

	// Shown under the greeting
	Disclaimer = "This AI chatbot is for informational purposes and does not provide medical advice."
)

// SuggestedQuestions offered alongside the transcript.
var SuggestedQuestions = []string{
	"Can I listen to a summary of the book?",
	"What is 'endo violence'?",
	"Learn about the collective's founders",
	"How can I use 'endo violence' in my work?",
	"Explain the link between racism and endo violence (Thinking Mode)",
	"How do AI & digital systems create 'endo violence'? (Thinking Mode)",
	"How is 'medical gaslighting' different from the book's concept of 'endo violence'?",
	"Critique the 'Endo Warrior' narrative. Who benefits from this concept?",
	"What does 'healing justice' mean in the context of endometriosis?",
}
