package ai

// SystemPrompt fixes the tone and shape of generated messages: a single
// Conventional Commits line with nothing around it.
const SystemPrompt = `You are a git commit message generator.

Given a diff of staged changes, respond with exactly one commit message line
in Conventional Commits format: <type>: <subject> or <type>(<scope>): <subject>.
Types: feat, fix, docs, style, refactor, test, chore, perf, ci, build, revert.

Rules:
1. One line only, no body, no explanations
2. Imperative mood, present tense ("add" not "added")
3. No surrounding quotes or code fences`

// UserPrompt wraps the cleaned diff as the user message content.
func UserPrompt(diff string) string {
	return "Changes:\n" + diff
}
