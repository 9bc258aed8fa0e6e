package entity

// MatchResult pairs one extracted line with its presence verdict. Results are
// transient; they keep the top-to-bottom order the lines had in the image.
type MatchResult struct {
	Name      string
	IsPresent bool
}
