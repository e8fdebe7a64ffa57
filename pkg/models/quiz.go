package models

// Mesh preference answers from the quiz.
const (
	MeshYes = "yes"
	MeshNo  = "no"
)

// QuizAnswers holds a shopper's questionnaire result. Coverage, Devices and
// Use are required by the quiz form; everything else may be empty. Answers
// seed facet selections and constrain the recommendation scorer.
type QuizAnswers struct {
	Coverage     string `json:"coverage"`
	Devices      string `json:"devices"`
	Use          string `json:"use"`
	Access       string `json:"access"`
	WanTierLabel string `json:"wanTierLabel"`
	Mesh         string `json:"mesh"`
	MeshAuto     bool   `json:"meshAuto"`
	Price        string `json:"price"`
}
