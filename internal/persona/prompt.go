// Package persona generates a short natural-language developer persona
// from a GitHub profile and its repositories.
package persona

import (
	"fmt"
	"strings"

	"github.com/sahanamn290/github-analysis/internal/model"
)

// BuildPrompt builds the generation prompt for a user and their repositories.
// The output is deterministic for a given input.
func BuildPrompt(user *model.User, repos []model.Repository) string {
	var sb strings.Builder

	sb.WriteString("Analyze this GitHub developer profile and write a short developer persona.\n\n")
	if user != nil {
		sb.WriteString(fmt.Sprintf("Name: %s\n", user.DisplayName()))
		sb.WriteString(fmt.Sprintf("Username: %s\n", user.Login))
		if bio := strings.TrimSpace(user.Bio); bio != "" {
			sb.WriteString(fmt.Sprintf("Bio: %s\n", bio))
		}
		sb.WriteString(fmt.Sprintf("Public repositories: %d\n", user.PublicRepos))
		sb.WriteString(fmt.Sprintf("Followers: %d\n", user.Followers))
	}

	sb.WriteString("\nRepositories:\n")
	for _, r := range repos {
		sb.WriteString(repoLine(r))
		sb.WriteString("\n")
	}

	sb.WriteString(`
Respond in Markdown with:
- A one-line headline describing the developer
- Their likely specialization
- Two or three key strengths, as a bulleted list
- A sentence about their coding style

Keep it under 200 words.`)

	return sb.String()
}

func repoLine(r model.Repository) string {
	lang := r.Language
	if lang == "" {
		lang = "Unknown"
	}
	desc := r.Description
	if desc == "" {
		desc = "No description"
	}
	return fmt.Sprintf("- %s (%s): %s", r.Name, lang, desc)
}
