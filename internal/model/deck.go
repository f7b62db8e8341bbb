// internal/model/deck.go
package model

// Difficulty はデッキ設問の難易度です
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DeckCategory はデッキの教科カテゴリです
type DeckCategory string

const (
	CategoryEnglish               DeckCategory = "english"
	CategoryMath                  DeckCategory = "math"
	CategoryScience               DeckCategory = "science"
	CategorySocialScience         DeckCategory = "socialScience"
	CategoryFilipino              DeckCategory = "filipino"
	CategoryProfessionalEducation DeckCategory = "professionalEducation"
)

// DeckQuestion はフラッシュカード1枚（設問と答えの組）を表します
type DeckQuestion struct {
	Question   string     `bson:"question" json:"question" validate:"required"`
	Answer     string     `bson:"answer" json:"answer" validate:"required"`
	Difficulty Difficulty `bson:"difficulty,omitempty" json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

// FlashcardDeck はフラッシュカードのデッキドキュメントです。
// IDはストアが採番するため、初回保存までは空文字列です。
// Typeは任意項目です（未設定のデッキも有効として扱う）。
type FlashcardDeck struct {
	ID        string         `bson:"-" json:"id,omitempty"`
	Name      string         `bson:"name" json:"name" validate:"required"`
	Type      DeckCategory   `bson:"type,omitempty" json:"type,omitempty" validate:"omitempty,oneof=english math science socialScience filipino professionalEducation"`
	Questions []DeckQuestion `bson:"questions" json:"questions" validate:"min=1,dive"`
}

func (d *FlashcardDeck) GetID() string   { return d.ID }
func (d *FlashcardDeck) SetID(id string) { d.ID = id }
