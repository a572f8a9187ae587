package content

// LearningPackage is the full generated study bundle for one topic query.
// It is only ever built from a provider payload that passed schema
// validation — there is no partially filled package.
type LearningPackage struct {
	// Explanation is the main body text. Markdown and LaTeX allowed.
	Explanation string `json:"explanation"`

	// Examples is an ordered list of worked examples.
	Examples []string `json:"examples"`

	// Videos are external video recommendations.
	Videos []Video `json:"videos"`

	// Quiz is an ordered list of multiple-choice questions.
	Quiz []QuizQuestion `json:"quiz"`
}

// Video is a single video recommendation with an https link.
type Video struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// QuizQuestion is one multiple-choice question. CorrectAnswer always equals
// one of Options.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}
