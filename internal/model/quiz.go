// internal/model/quiz.go
package model

// QuizQuestion は4択問題1問を表します。
// Answerは選択肢の添字（0〜3）で、必ず実在する選択肢を指します。
type QuizQuestion struct {
	Question string   `bson:"question" json:"question" validate:"required"`
	Options  []string `bson:"options" json:"options" validate:"len=4,dive,required"`
	Answer   int      `bson:"answer" json:"answer" validate:"min=0,max=3"`
}

// Quiz は4択クイズのドキュメントです
type Quiz struct {
	ID        string         `bson:"-" json:"id,omitempty"`
	Name      string         `bson:"name" json:"name" validate:"required"`
	Questions []QuizQuestion `bson:"questions" json:"questions" validate:"min=1,dive"`
}

func (q *Quiz) GetID() string   { return q.ID }
func (q *Quiz) SetID(id string) { q.ID = id }
