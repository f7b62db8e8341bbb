// Package store はリモートドキュメントストアへの薄いクライアントを提供します。
// コレクション単位のCRUDと、変更のたびに最新スナップショット全体を購読者へ
// プッシュするライブ購読を扱います。
package store

import "context"

// Document はストアが採番するIDを持てるドキュメントです。
// IDは初回保存までは空文字列です。
type Document interface {
	GetID() string
	SetID(id string)
}

// Collection は1つの名前付きコレクションに対するドキュメントストア操作です。
// UpdateはドキュメントID以外の差分更新を行わず、常に全体を上書きします。
type Collection[T Document] interface {
	Create(ctx context.Context, doc T) (string, error)
	Get(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, id string, doc T) error
	Delete(ctx context.Context, id string) error
	Snapshot(ctx context.Context) ([]T, error)

	// Subscribe はライブ購読を開始します。購読中はコレクションに変更が
	// あるたびに最新スナップショット全体でfnが呼ばれます。返された関数で
	// 購読を解除します（冪等）。
	Subscribe(fn func(docs []T)) (unsubscribe func())

	// Refresh は最新スナップショットを取得し全購読者に通知します。
	// 他インスタンスからの変更通知を受けた際に呼び出します。
	Refresh(ctx context.Context) error
}

// Refresher はコレクション名に依らない更新通知の受け口です
type Refresher interface {
	Refresh(ctx context.Context) error
}

// ChangePublisher は他インスタンスへコレクションの変更を通知します
type ChangePublisher interface {
	PublishChange(ctx context.Context, collection string)
}
