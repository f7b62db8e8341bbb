package form

import "go_5_teach_board/internal/model"

// DeckHeader はデッキフォームのヘッダ項目です
type DeckHeader struct {
	Name string             `json:"name"`
	Type model.DeckCategory `json:"type"`
}

// DeckDraft はデッキフォームの検証・保存単位です
type DeckDraft struct {
	Name      string               `json:"name" validate:"required"`
	Type      model.DeckCategory   `json:"type" validate:"omitempty,oneof=english math science socialScience filipino professionalEducation"`
	Questions []model.DeckQuestion `json:"questions" validate:"min=1,dive"`
}

// DeckController はデッキ編集フォームのコントローラです
type DeckController = Controller[DeckHeader, model.DeckQuestion, DeckDraft]

// NewDeckController はデッキフォームを生成します。
// existingがnilの場合は新規作成フォームとして既定値で初期化します。
func NewDeckController(existing *model.FlashcardDeck) *DeckController {
	cfg := Config[DeckHeader, model.DeckQuestion, DeckDraft]{
		NewRow: func() model.DeckQuestion {
			return model.DeckQuestion{Difficulty: model.DifficultyEasy}
		},
		Assemble: func(header DeckHeader, rows []model.DeckQuestion) DeckDraft {
			return DeckDraft{
				Name:      header.Name,
				Type:      header.Type,
				Questions: rows,
			}
		},
	}
	if existing != nil {
		cfg.Header = DeckHeader{Name: existing.Name, Type: existing.Type}
		cfg.Rows = append(cfg.Rows, existing.Questions...)
	}
	return New(cfg)
}

// DeckFromDraft はドラフトから保存用のデッキドキュメントを作ります
func DeckFromDraft(draft DeckDraft) *model.FlashcardDeck {
	return &model.FlashcardDeck{
		Name:      draft.Name,
		Type:      draft.Type,
		Questions: draft.Questions,
	}
}
