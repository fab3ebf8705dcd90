package persona

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahanamn290/github-analysis/internal/constants"
	"github.com/sahanamn290/github-analysis/internal/log"
	"github.com/sahanamn290/github-analysis/internal/model"
)

// FailureMessage replaces the narrative whenever generation fails.
const FailureMessage = constants.PersonaFailureMessage

// EmptyMessage replaces a blank model response.
const EmptyMessage = constants.PersonaEmptyMessage

// Narrator turns a profile into a persona narrative. It never fails:
// errors are logged and replaced with FailureMessage.
type Narrator struct {
	gen      Generator
	maxRepos int
}

// Option is a functional option for NewNarrator.
type Option func(*Narrator)

// WithMaxRepos limits how many repositories are included in the prompt.
// Values outside 1..constants.PersonaMaxRepos are ignored.
func WithMaxRepos(n int) Option {
	return func(nr *Narrator) {
		if n > 0 && n <= constants.PersonaMaxRepos {
			nr.maxRepos = n
		}
	}
}

// NewNarrator creates a Narrator backed by gen.
func NewNarrator(gen Generator, opts ...Option) *Narrator {
	n := &Narrator{
		gen:      gen,
		maxRepos: constants.PersonaMaxRepos,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// MaxRepos returns the repository limit applied to prompts.
func (n *Narrator) MaxRepos() int {
	return n.maxRepos
}

// Narrate returns the persona narrative for user, built from at most
// MaxRepos repositories in the given order.
func (n *Narrator) Narrate(ctx context.Context, user *model.User, repos []model.Repository) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("persona generation panicked", "panic", fmt.Sprint(r))
			text = FailureMessage
		}
	}()

	if n.gen == nil {
		log.Debug("persona generation skipped", "error", "no generator")
		return FailureMessage
	}

	if len(repos) > n.maxRepos {
		repos = repos[:n.maxRepos]
	}

	out, err := n.gen.Generate(ctx, BuildPrompt(user, repos))
	if err != nil {
		log.Debug("persona generation failed", "error", err)
		return FailureMessage
	}
	if strings.TrimSpace(out) == "" {
		log.Debug("persona generation returned no text")
		return EmptyMessage
	}

	log.Info("persona generated", "repos", len(repos), "chars", len(out))
	return out
}
