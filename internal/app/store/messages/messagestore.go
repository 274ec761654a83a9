// Package messagestore is the message ledger: it appends messages to a
// member's box under a per-member sequence number, attaches the one
// allowed reply, and serves the feed whole or in counter-anchored pages.
package messagestore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/askbox/internal/app/system/fault"
	"github.com/dalemusser/askbox/internal/app/system/txn"
	"github.com/dalemusser/askbox/internal/domain/models"
)

// Config carries the ledger's settings.
type Config struct {
	// Txn bounds the post/reply transactions' retry loops.
	Txn txn.Options
}

type Store struct {
	client   *mongo.Client
	members  *mongo.Collection
	messages *mongo.Collection
	cfg      Config
}

func New(db *mongo.Database, cfg Config) *Store {
	return &Store{
		client:   db.Client(),
		members:  db.Collection("members"),
		messages: db.Collection("messages"),
		cfg:      cfg,
	}
}

// Get fetches one message from a member's box. Member and message absence
// are distinct not-found outcomes.
func (s *Store) Get(ctx context.Context, uid, messageID string) (models.MessageView, error) {
	if uid == "" {
		return models.MessageView{}, fault.Invalid("uid is required")
	}
	if messageID == "" {
		return models.MessageView{}, fault.Invalid("messageId is required")
	}

	if err := s.requireMember(ctx, uid); err != nil {
		return models.MessageView{}, err
	}

	var m models.Message
	err := s.messages.FindOne(ctx, bson.M{"_id": messageID, "member_uid": uid}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.MessageView{}, fault.NotFound("message", fmt.Sprintf("no message %q for member %q", messageID, uid))
		}
		return models.MessageView{}, fmt.Errorf("reading message %q: %w", messageID, err)
	}
	return m.View(), nil
}

// List returns the member's whole feed, newest first by creation time.
// The paged form supersedes this operationally but the full scan remains
// part of the contract.
func (s *Store) List(ctx context.Context, uid string) ([]models.MessageView, error) {
	if uid == "" {
		return nil, fault.Invalid("uid is required")
	}
	if err := s.requireMember(ctx, uid); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "create_at", Value: -1}})
	cur, err := s.messages.Find(ctx, bson.M{"member_uid": uid}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing messages for %q: %w", uid, err)
	}
	defer cur.Close(ctx)

	views := make([]models.MessageView, 0)
	for cur.Next(ctx) {
		var m models.Message
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decoding message: %w", err)
		}
		views = append(views, m.View())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("listing messages for %q: %w", uid, err)
	}
	return views, nil
}

// requireMember turns an absent member into the not-found fault every
// ledger operation reports for unknown uids.
func (s *Store) requireMember(ctx context.Context, uid string) error {
	err := s.members.FindOne(ctx, bson.M{"_id": uid}).Err()
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fault.NotFound("member", fmt.Sprintf("no member with uid %q", uid))
	}
	return fmt.Errorf("reading member %q: %w", uid, err)
}
