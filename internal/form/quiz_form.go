package form

import (
	"strconv"

	"go_5_teach_board/internal/model"
)

// QuizQuestionDraft は編集中のクイズ1問です。
// 正解の添字は編集中は文字列（"0"〜"3"）として扱い、保存時に数値へ
// 変換します。
type QuizQuestionDraft struct {
	Question string   `json:"question" validate:"required"`
	Options  []string `json:"options" validate:"len=4,dive,required"`
	Answer   string   `json:"answer" validate:"required,oneof=0 1 2 3"`
}

// QuizHeader はクイズフォームのヘッダ項目です
type QuizHeader struct {
	Name string `json:"name"`
}

// QuizDraft はクイズフォームの検証単位です
type QuizDraft struct {
	Name      string              `json:"name" validate:"required"`
	Questions []QuizQuestionDraft `json:"questions" validate:"min=1,dive"`
}

// QuizController はクイズ編集フォームのコントローラです
type QuizController = Controller[QuizHeader, QuizQuestionDraft, QuizDraft]

// NewQuizController はクイズフォームを生成します。
// existingがnilの場合は新規作成フォームとして既定値で初期化します。
func NewQuizController(existing *model.Quiz) *QuizController {
	cfg := Config[QuizHeader, QuizQuestionDraft, QuizDraft]{
		NewRow: func() QuizQuestionDraft {
			return QuizQuestionDraft{
				Options: make([]string, 4),
				Answer:  "0",
			}
		},
		Assemble: func(header QuizHeader, rows []QuizQuestionDraft) QuizDraft {
			return QuizDraft{
				Name:      header.Name,
				Questions: rows,
			}
		},
	}
	if existing != nil {
		cfg.Header = QuizHeader{Name: existing.Name}
		for _, q := range existing.Questions {
			cfg.Rows = append(cfg.Rows, QuizQuestionDraft{
				Question: q.Question,
				Options:  q.Options,
				Answer:   strconv.Itoa(q.Answer),
			})
		}
	}
	return New(cfg)
}

// QuizFromDraft はドラフトから保存用のクイズドキュメントを作ります。
// 正解の添字を数値に戻します。
func QuizFromDraft(draft QuizDraft) (*model.Quiz, error) {
	quiz := &model.Quiz{Name: draft.Name}
	for _, q := range draft.Questions {
		answer, err := strconv.Atoi(q.Answer)
		if err != nil || answer < 0 || answer > 3 {
			return nil, model.NewAppError("INVALID_ANSWER_INDEX", "答えに指定できない値が入力されています。", "answer", model.ErrInvalidInput)
		}
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			Question: q.Question,
			Options:  q.Options,
			Answer:   answer,
		})
	}
	return quiz, nil
}
