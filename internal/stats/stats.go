// Package stats computes aggregate figures over a user's repositories.
package stats

import (
	"sort"

	"github.com/sahanamn290/github-analysis/internal/model"
)

// UnknownLanguage labels repositories with no detected language.
const UnknownLanguage = "Unknown"

// Summary captures aggregate statistics for one set of repositories.
type Summary struct {
	Repositories int `json:"repositories"`
	Stars        int `json:"stars"`
	Forks        int `json:"forks"`
	Languages    int `json:"languages"`
}

// Languages returns the language distribution of repos, most used first.
// Ties are ordered by name. Percentages sum to 100 for a non-empty input.
func Languages(repos []model.Repository) []model.LanguageStat {
	if len(repos) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, r := range repos {
		lang := r.Language
		if lang == "" {
			lang = UnknownLanguage
		}
		counts[lang]++
	}

	result := make([]model.LanguageStat, 0, len(counts))
	for name, count := range counts {
		result = append(result, model.LanguageStat{
			Name:       name,
			Count:      count,
			Percentage: float64(count) / float64(len(repos)) * 100,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// TopLanguages returns at most n languages, folding the remainder into
// a trailing "Other" entry.
func TopLanguages(langs []model.LanguageStat, n int) []model.LanguageStat {
	if n <= 0 || len(langs) <= n {
		return langs
	}

	top := make([]model.LanguageStat, n, n+1)
	copy(top, langs[:n])

	other := model.LanguageStat{Name: "Other"}
	for _, l := range langs[n:] {
		other.Count += l.Count
		other.Percentage += l.Percentage
	}
	return append(top, other)
}

// Summarize totals stars and forks across repos.
func Summarize(repos []model.Repository) Summary {
	s := Summary{Repositories: len(repos)}
	seen := make(map[string]bool)
	for _, r := range repos {
		s.Stars += r.Stars
		s.Forks += r.Forks
		lang := r.Language
		if lang == "" {
			lang = UnknownLanguage
		}
		seen[lang] = true
	}
	s.Languages = len(seen)
	return s
}

// TopStarred returns up to n repositories ordered by stars, then name.
// The input slice is not modified.
func TopStarred(repos []model.Repository, n int) []model.Repository {
	sorted := make([]model.Repository, len(repos))
	copy(sorted, repos)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Stars != sorted[j].Stars {
			return sorted[i].Stars > sorted[j].Stars
		}
		return sorted[i].Name < sorted[j].Name
	})

	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
