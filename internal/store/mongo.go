package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go_5_teach_board/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection はMongoDBを使ったCollection実装です。
// ドキュメントIDにはObjectIDの16進表現を使います。
type MongoCollection[T Document] struct {
	col    *mongo.Collection
	newDoc func() T
	valid  func(doc T) bool
	hub    *hub[T]
	pub    ChangePublisher
	logger *slog.Logger
}

// NewMongoCollection はMongoDBコレクションのクライアントを生成します。
// newDocはデコード先のゼロ値ドキュメントを、validは読み取り境界の
// スキーマ検証を与えます。検証に通らないドキュメントは一覧から除外し、
// 単体取得では未検出として扱います。
func NewMongoCollection[T Document](col *mongo.Collection, newDoc func() T, valid func(doc T) bool, logger *slog.Logger) *MongoCollection[T] {
	if valid == nil {
		valid = func(T) bool { return true }
	}
	return &MongoCollection[T]{
		col:    col,
		newDoc: newDoc,
		valid:  valid,
		hub:    newHub[T](),
		logger: logger,
	}
}

// SetPublisher は他インスタンスへの変更通知先を設定します（任意）
func (c *MongoCollection[T]) SetPublisher(pub ChangePublisher) {
	c.pub = pub
}

func (c *MongoCollection[T]) Create(ctx context.Context, doc T) (string, error) {
	res, err := c.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert document into %s: %w", c.col.Name(), err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	id := oid.Hex()
	doc.SetID(id)

	c.changed(ctx)
	return id, nil
}

func (c *MongoCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return zero, model.ErrNotFound
	}

	doc := c.newDoc()
	err = c.col.FindOne(ctx, bson.M{"_id": oid}).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return zero, model.ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("failed to find document in %s: %w", c.col.Name(), err)
	}
	doc.SetID(id)

	if !c.valid(doc) {
		c.logger.Warn("Skipping document that failed schema validation", "collection", c.col.Name(), "id", id)
		return zero, model.ErrNotFound
	}
	return doc, nil
}

func (c *MongoCollection[T]) Update(ctx context.Context, id string, doc T) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrNotFound
	}

	res, err := c.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("failed to replace document in %s: %w", c.col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	doc.SetID(id)

	c.changed(ctx)
	return nil
}

func (c *MongoCollection[T]) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrNotFound
	}

	res, err := c.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete document from %s: %w", c.col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}

	c.changed(ctx)
	return nil
}

func (c *MongoCollection[T]) Snapshot(ctx context.Context) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := c.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents in %s: %w", c.col.Name(), err)
	}
	defer cur.Close(ctx)

	var out []T
	for cur.Next(ctx) {
		var idHolder struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := bson.Unmarshal(cur.Current, &idHolder); err != nil {
			c.logger.Warn("Skipping document with unreadable id", "collection", c.col.Name(), "error", err)
			continue
		}

		doc := c.newDoc()
		if err := cur.Decode(doc); err != nil {
			c.logger.Warn("Skipping undecodable document", "collection", c.col.Name(), "id", idHolder.ID.Hex(), "error", err)
			continue
		}
		doc.SetID(idHolder.ID.Hex())

		if !c.valid(doc) {
			c.logger.Warn("Skipping document that failed schema validation", "collection", c.col.Name(), "id", idHolder.ID.Hex())
			continue
		}
		out = append(out, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents in %s: %w", c.col.Name(), err)
	}
	return out, nil
}

func (c *MongoCollection[T]) Subscribe(fn func(docs []T)) (unsubscribe func()) {
	return c.hub.subscribe(fn)
}

func (c *MongoCollection[T]) Refresh(ctx context.Context) error {
	snapshot, err := c.Snapshot(ctx)
	if err != nil {
		return err
	}
	c.hub.notify(snapshot)
	return nil
}

// changed は書き込み後にローカル購読者へ最新スナップショットを配り、
// 設定されていれば他インスタンスへも変更を伝搬します。
func (c *MongoCollection[T]) changed(ctx context.Context) {
	snapshot, err := c.Snapshot(ctx)
	if err != nil {
		c.logger.Error("Failed to take snapshot for subscribers", "collection", c.col.Name(), "error", err)
		return
	}
	c.hub.notify(snapshot)
	if c.pub != nil {
		c.pub.PublishChange(ctx, c.col.Name())
	}
}
