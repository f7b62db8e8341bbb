// Package form は繰り返しサブレコードを持つフォームの状態管理を提供します。
// ヘッダ項目と可変個の行を保持し、変更のたびに同期的に検証して
// フィールドパス単位のエラーマップを更新します。
package form

import (
	"context"
	"strings"
	"sync"

	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/webutil"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/go-playground/validator/v10"
)

// ErrorMap はフィールドパス（例: "questions[2].answer"）をキーに
// 翻訳済みエラーメッセージを持ちます。
type ErrorMap map[string]string

// Row はフォーム内の1行です。Keyは行の並べ替え・削除をまたいで安定な
// 合成キーで、ドキュメント保存時には含まれません。
type Row[Q any] struct {
	Key   string `json:"key"`
	Value Q      `json:"value"`
}

// Config はコントローラの構成です。
// NewRowは行追加時の既定値を、AssembleはヘッダとHTTP行から検証・保存用の
// ドラフト全体を組み立てます。
type Config[H any, Q any, F any] struct {
	Header   H
	Rows     []Q
	NewRow   func() Q
	Assemble func(header H, rows []Q) F
}

// Controller は1フォーム分の編集状態です。全メソッドはゴルーチン安全です。
type Controller[H any, Q any, F any] struct {
	mu       sync.Mutex
	header   H
	rows     []Row[Q]
	errs     ErrorMap
	newRow   func() Q
	assemble func(header H, rows []Q) F
	inFlight bool
}

// New はコントローラを生成します。行が空の場合は既定値の行を1件
// 用意します。生成直後に初回検証を行います。
func New[H any, Q any, F any](cfg Config[H, Q, F]) *Controller[H, Q, F] {
	c := &Controller[H, Q, F]{
		header:   cfg.Header,
		newRow:   cfg.NewRow,
		assemble: cfg.Assemble,
	}
	for _, v := range cfg.Rows {
		c.rows = append(c.rows, Row[Q]{Key: newRowKey(), Value: v})
	}
	if len(c.rows) == 0 {
		c.rows = append(c.rows, Row[Q]{Key: newRowKey(), Value: c.newRow()})
	}
	c.validateLocked()
	return c
}

func newRowKey() string {
	return gonanoid.Must(12)
}

// Header は現在のヘッダ項目を返します
func (c *Controller[H, Q, F]) Header() H {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.header
}

// Rows は現在の行一覧のコピーを返します
func (c *Controller[H, Q, F]) Rows() []Row[Q] {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Row[Q], len(c.rows))
	copy(out, c.rows)
	return out
}

// Errors は直近の検証結果のコピーを返します
func (c *Controller[H, Q, F]) Errors() ErrorMap {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(ErrorMap, len(c.errs))
	for k, v := range c.errs {
		out[k] = v
	}
	return out
}

// Valid は直近の検証でエラーがなかったかを返します
func (c *Controller[H, Q, F]) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errs) == 0
}

// CanRemove は行削除が可能かを返します。行は最低1件を維持します。
func (c *Controller[H, Q, F]) CanRemove() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rows) > 1
}

// SetHeader はヘッダ項目を更新し再検証します
func (c *Controller[H, Q, F]) SetHeader(header H) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.header = header
	c.validateLocked()
}

// SetRow は指定位置の行の値を更新し再検証します。行キーは変わりません。
func (c *Controller[H, Q, F]) SetRow(index int, value Q) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.rows) {
		return model.NewAppError("ROW_OUT_OF_RANGE", "指定された質問が見つかりません。", "", model.ErrNotFound)
	}
	c.rows[index].Value = value
	c.validateLocked()
	return nil
}

// Append は既定値の行を末尾に追加し、追加した行を返します
func (c *Controller[H, Q, F]) Append() Row[Q] {
	c.mu.Lock()
	defer c.mu.Unlock()
	row := Row[Q]{Key: newRowKey(), Value: c.newRow()}
	c.rows = append(c.rows, row)
	c.validateLocked()
	return row
}

// Remove は指定位置の行を削除します。残り1件のときは削除できません。
// 残った行の相対順序は維持されます。
func (c *Controller[H, Q, F]) Remove(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.rows) {
		return model.NewAppError("ROW_OUT_OF_RANGE", "指定された質問が見つかりません。", "", model.ErrNotFound)
	}
	if len(c.rows) == 1 {
		return model.NewAppError("LAST_ROW", "質問は最低1件必要です。", "", model.ErrInvalidInput)
	}
	c.rows = append(c.rows[:index], c.rows[index+1:]...)
	c.validateLocked()
	return nil
}

// Validate は現在の状態を再検証しエラーマップを返します
func (c *Controller[H, Q, F]) Validate() ErrorMap {
	c.mu.Lock()
	c.validateLocked()
	c.mu.Unlock()
	return c.Errors()
}

// Submit は検証に通った場合のみドラフト全体を組み立ててfnを呼びます。
// 検証エラーがある場合はエラーマップと入力エラーを返します。
// 実行中の多重送信は拒否します。
func (c *Controller[H, Q, F]) Submit(ctx context.Context, fn func(ctx context.Context, draft F) error) (ErrorMap, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, model.NewAppError("SUBMIT_IN_FLIGHT", "送信処理中です。しばらくお待ちください。", "", model.ErrConflict)
	}
	c.validateLocked()
	if len(c.errs) > 0 {
		errs := make(ErrorMap, len(c.errs))
		for k, v := range c.errs {
			errs[k] = v
		}
		c.mu.Unlock()
		return errs, model.NewAppError("VALIDATION_FAILED", "入力内容に誤りがあります。", "", model.ErrInvalidInput)
	}
	c.inFlight = true
	draft := c.assembleLocked()
	c.mu.Unlock()

	// 保存処理はロック外で実行する
	err := fn(ctx, draft)

	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()

	return nil, err
}

// Draft は現在の状態から組み立てたドラフト全体を返します
func (c *Controller[H, Q, F]) Draft() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.assembleLocked()
}

func (c *Controller[H, Q, F]) assembleLocked() F {
	values := make([]Q, len(c.rows))
	for i, row := range c.rows {
		values[i] = row.Value
	}
	return c.assemble(c.header, values)
}

// validateLocked はドラフト全体を検証しエラーマップを作り直します。要ロック。
func (c *Controller[H, Q, F]) validateLocked() {
	c.errs = ErrorMap{}
	draft := c.assembleLocked()
	err := webutil.Validator.Struct(draft)
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		c.errs[""] = "入力内容を検証できませんでした。"
		return
	}
	for _, fe := range verrs {
		c.errs[fieldPath(fe)] = fe.Translate(webutil.Trans)
	}
}

// fieldPath はバリデータのNamespaceからルート構造体名を取り除き、
// JSONタグベースのパス（例: "questions[2].answer"）を返します。
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
