package model

// Question une question de quiz générée par l'IA. CorrectAnswer est l'index
// de la bonne option dans Options.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type Quiz struct {
	Questions []Question `json:"questions"`
}
