package task

import (
	"fmt"
	"math/rand"
)

// Greeting returns a time-of-day salutation for the home view.
func (l *List) Greeting(name string) (icon, message, subtitle string) {
	hour := l.now().Hour()
	switch {
	case hour >= 5 && hour < 12:
		return "☀", fmt.Sprintf("Good morning, %s", name), "Ease into the day"
	case hour >= 12 && hour < 17:
		return "🌤", fmt.Sprintf("Good afternoon, %s", name), "How is the day going?"
	case hour >= 17 && hour < 21:
		return "🌆", fmt.Sprintf("Good evening, %s", name), "Wrapping up nicely?"
	default:
		return "🌙", fmt.Sprintf("Good night, %s", name), "You did plenty today"
	}
}

// Encouragement returns a short nudge matching today's progress.
func (l *List) Encouragement() string {
	switch l.CompletedCount() {
	case 0:
		if l.Len() == 0 {
			return "What shall we do today?"
		}
		return "Even one is enough"
	case 1:
		return "One down already. Off to a good start!"
	case 2:
		return "Two done. Seriously impressive!"
	case 3:
		return "Perfect. All three, done!"
	default:
		return "You're doing great today!"
	}
}

var completionMessages = []string{
	"You did it! Nicely done!",
	"Starting is half the battle!",
	"Today you, not yesterday you!",
	"Keep going exactly like this!",
	"You've got this!",
}

// CompletionMessage picks a celebratory line for a just-finished task.
func CompletionMessage() string {
	return completionMessages[rand.Intn(len(completionMessages))]
}
