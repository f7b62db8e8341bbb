package form_test

import (
	"context"
	"errors"
	"testing"

	"go_5_teach_board/internal/form"
	"go_5_teach_board/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuizController_Defaults(t *testing.T) {
	ctrl := form.NewQuizController(nil)

	rows := ctrl.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "0", rows[0].Value.Answer)
	require.Len(t, rows[0].Value.Options, 4)
	for _, opt := range rows[0].Value.Options {
		assert.Empty(t, opt)
	}

	added := ctrl.Append()
	assert.Equal(t, "0", added.Value.Answer)
	assert.Len(t, added.Value.Options, 4)
}

func TestNewQuizController_LoadsExistingAnswerAsString(t *testing.T) {
	ctrl := form.NewQuizController(&model.Quiz{
		ID:   "quiz-1",
		Name: "Chapter 3",
		Questions: []model.QuizQuestion{
			{
				Question: "2+2は?",
				Options:  []string{"3", "4", "5", "6"},
				Answer:   1,
			},
			{
				Question: "3+3は?",
				Options:  []string{"5", "6", "7", "8"},
				Answer:   3,
			},
		},
	})

	rows := ctrl.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].Value.Answer)
	assert.Equal(t, "3", rows[1].Value.Answer)
	assert.True(t, ctrl.Valid())
}

func TestQuizFromDraft(t *testing.T) {
	tests := []struct {
		name       string
		draft      form.QuizDraft
		wantErr    bool
		wantAnswer int
	}{
		{
			name: "正常系: 答えの添字が数値に戻る",
			draft: form.QuizDraft{
				Name: "Chapter 3",
				Questions: []form.QuizQuestionDraft{
					{Question: "2+2は?", Options: []string{"3", "4", "5", "6"}, Answer: "2"},
				},
			},
			wantErr:    false,
			wantAnswer: 2,
		},
		{
			name: "異常系: 数値でない答えはエラー",
			draft: form.QuizDraft{
				Name: "Chapter 3",
				Questions: []form.QuizQuestionDraft{
					{Question: "q", Options: []string{"a", "b", "c", "d"}, Answer: "two"},
				},
			},
			wantErr: true,
		},
		{
			name: "異常系: 範囲外の添字はエラー",
			draft: form.QuizDraft{
				Name: "Chapter 3",
				Questions: []form.QuizQuestionDraft{
					{Question: "q", Options: []string{"a", "b", "c", "d"}, Answer: "4"},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz, err := form.QuizFromDraft(tt.draft)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			require.Len(t, quiz.Questions, 1)
			assert.Equal(t, tt.wantAnswer, quiz.Questions[0].Answer)
		})
	}
}

// 既存クイズを読み込んでそのまま送信しても答えの添字が変化しないこと
func TestQuizController_AnswerRoundTrip(t *testing.T) {
	original := &model.Quiz{
		ID:   "quiz-1",
		Name: "Chapter 3",
		Questions: []model.QuizQuestion{
			{Question: "2+2は?", Options: []string{"3", "4", "5", "6"}, Answer: 1},
		},
	}

	ctrl := form.NewQuizController(original)

	var saved *model.Quiz
	errMap, err := ctrl.Submit(context.Background(), func(ctx context.Context, draft form.QuizDraft) error {
		quiz, err := form.QuizFromDraft(draft)
		if err != nil {
			return err
		}
		saved = quiz
		return nil
	})

	require.NoError(t, err)
	assert.Empty(t, errMap)
	require.NotNil(t, saved)
	require.Len(t, saved.Questions, 1)
	assert.Equal(t, original.Questions[0].Answer, saved.Questions[0].Answer)
	assert.Equal(t, original.Questions[0].Options, saved.Questions[0].Options)
}

func TestQuizController_ValidationErrorPaths(t *testing.T) {
	ctrl := form.NewQuizController(nil)
	ctrl.SetHeader(form.QuizHeader{Name: "Chapter 3"})

	// 選択肢が1つ空のまま
	require.NoError(t, ctrl.SetRow(0, form.QuizQuestionDraft{
		Question: "2+2は?",
		Options:  []string{"3", "4", "5", ""},
		Answer:   "1",
	}))

	errs := ctrl.Errors()
	assert.False(t, ctrl.Valid())
	require.Contains(t, errs, "questions[0].options[3]")
	assert.Equal(t, "選択肢は必須項目です。", errs["questions[0].options[3]"])

	// 答えの添字が選択肢の範囲外
	require.NoError(t, ctrl.SetRow(0, form.QuizQuestionDraft{
		Question: "2+2は?",
		Options:  []string{"3", "4", "5", "6"},
		Answer:   "5",
	}))
	errs = ctrl.Errors()
	require.Contains(t, errs, "questions[0].answer")
}
