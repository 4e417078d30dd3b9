package aigen

// GeneratedQuestion is the wire shape the model is instructed to produce
// for each multiple-choice question.
type GeneratedQuestion struct {
	QuestionText  string            `json:"question_text"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
}

type topicsPayload struct {
	Topics []string `json:"topics"`
}
