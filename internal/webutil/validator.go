package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/ja" // 日本語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja" // 日本語翻訳
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"name":       "名前",
	"type":       "カテゴリ",
	"question":   "問題文",
	"answer":     "答え",
	"difficulty": "難易度",
	"options":    "選択肢",
	"questions":  "質問リスト",
	"email":      "メールアドレス",
	"password":   "パスワード",
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// 日本語のロケールとトランスレータを設定
	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}

	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// 個別のエラーメッセージを上書き・カスタマイズ
	registerTranslation := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, translateFieldName(fe.Field()))
			return t
		})
	}

	registerTranslation("required", "{0}は必須項目です。")
	registerTranslation("email", "{0}は有効なメールアドレス形式ではありません。")
	registerTranslation("oneof", "{0}に指定できない値が入力されています。")

	// min / len はパラメータ付きメッセージのため個別登録
	Validator.RegisterTranslation("min", Trans, func(ut ut.Translator) error {
		return ut.Add("min", "{0}は{1}件以上必要です。", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("min", translateFieldName(fe.Field()), fe.Param())
		return t
	})
	Validator.RegisterTranslation("len", Trans, func(ut ut.Translator) error {
		return ut.Add("len", "{0}は{1}件である必要があります。", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("len", translateFieldName(fe.Field()), fe.Param())
		return t
	})
}

// translateFieldName はjsonタグ名を日本語フィールド名に変換します。
// マップにない場合は元の名前をそのまま使います。
func translateFieldName(field string) string {
	// 添字付きのフィールド (例: "options[2]") は基底名で引く
	base := field
	if i := strings.IndexByte(base, '['); i >= 0 {
		base = base[:i]
	}
	if translated, ok := fieldNameTranslations[base]; ok {
		return translated
	}
	return field
}
