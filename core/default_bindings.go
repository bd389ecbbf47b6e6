package core

const ScopeOnboarding = "screen:onboarding"

const (
	ActionQuit       = "quit"
	ActionNext       = "next"
	ActionPrevious   = "previous"
	ActionSkip       = "skip"
	ActionGetStarted = "get-started"
)

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"left", "h"}, Action: ActionPrevious, Description: "back", Scopes: []string{ScopeOnboarding}},
		{Keys: []string{"right", "l"}, Action: ActionNext, Description: "next", Scopes: []string{ScopeOnboarding}},
		{Keys: []string{"s"}, Action: ActionSkip, Description: "skip", Scopes: []string{ScopeOnboarding}},
		{Keys: []string{"enter"}, Action: ActionGetStarted, Description: "get started", Scopes: []string{ScopeOnboarding}},
		{Keys: []string{"q"}, Action: ActionQuit, Description: "quit", Scopes: []string{"*"}},
	}
}
