package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/askbox/internal/domain/models"
)

// Fixtures provides helper methods for creating test data directly in the
// collections, bypassing the stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateMember inserts a member and its screen-name reservation the way a
// completed registration would have left them. The screen name is the
// email's gmail local part, mirroring the production derivation.
func (f *Fixtures) CreateMember(ctx context.Context, uid, email string) models.Member {
	f.t.Helper()

	now := time.Now().UTC()
	name := email
	if len(email) > len("@gmail.com") && email[len(email)-len("@gmail.com"):] == "@gmail.com" {
		name = email[:len(email)-len("@gmail.com")]
	}

	member := models.Member{
		UID:         uid,
		Email:       email,
		DisplayName: "Test Member",
		ScreenName:  name,
		CreatedAt:   now,
	}
	if _, err := f.db.Collection("members").InsertOne(ctx, member); err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}

	reservation := models.ScreenName{
		Name:        name,
		UID:         uid,
		Email:       email,
		DisplayName: member.DisplayName,
		CreatedAt:   now,
	}
	if _, err := f.db.Collection("screen_names").InsertOne(ctx, reservation); err != nil {
		f.t.Fatalf("failed to create test screen name: %v", err)
	}

	return member
}

// CreateMessage inserts a message with the given sequence number and bumps
// the member's counter to no+1 if that is higher than its current value.
func (f *Fixtures) CreateMessage(ctx context.Context, uid string, no int64, text string) models.Message {
	f.t.Helper()

	msg := models.Message{
		ID:        uuid.NewString(),
		MemberUID: uid,
		MessageNo: no,
		Message:   text,
		CreateAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("messages").InsertOne(ctx, msg); err != nil {
		f.t.Fatalf("failed to create test message: %v", err)
	}

	_, err := f.db.Collection("members").UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$max": bson.M{"message_count": no + 1}})
	if err != nil {
		f.t.Fatalf("failed to bump test member counter: %v", err)
	}

	return msg
}
