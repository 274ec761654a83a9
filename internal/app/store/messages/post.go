package messagestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/askbox/internal/app/system/fault"
	"github.com/dalemusser/askbox/internal/app/system/txn"
	"github.com/dalemusser/askbox/internal/domain/models"
)

// Post appends a message to the member's box.
//
// The whole append is one transaction: read the member, assign the next
// sequence number from the member's counter, insert the message, advance
// the counter. The counter runs one ahead of the highest assigned number:
// the first message gets message_no 1 and leaves the counter at 2, and
// after N posts the counter is N+1. No two messages of one member can end
// up with the same number; a concurrent post makes one transaction retry.
//
// author may be nil for an anonymous post.
func (s *Store) Post(ctx context.Context, uid, text string, author *models.Author) error {
	if uid == "" {
		return fault.Invalid("uid is required")
	}
	if text == "" {
		return fault.Invalid("message is required")
	}
	if author != nil && author.DisplayName == "" {
		return fault.Invalid("author requires a displayName")
	}

	return txn.Run(ctx, s.client, s.cfg.Txn, func(ctx context.Context) error {
		var member models.Member
		err := s.members.FindOne(ctx, bson.M{"_id": uid}).Decode(&member)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return fault.NotFound("member", fmt.Sprintf("no member with uid %q", uid))
			}
			return fmt.Errorf("reading member %q: %w", uid, err)
		}

		nextNo := member.MessageCount
		if nextNo < 1 {
			nextNo = 1
		}

		msg := models.Message{
			ID:        uuid.NewString(),
			MemberUID: uid,
			MessageNo: nextNo,
			Message:   text,
			Author:    author,
			CreateAt:  time.Now().UTC(),
		}
		if _, err := s.messages.InsertOne(ctx, msg); err != nil {
			if wafflemongo.IsDup(err) {
				// The unique (member_uid, message_no) index caught a
				// concurrent append that claimed this number first.
				return fmt.Errorf("message_no %d already assigned for %q: %w", nextNo, uid, txn.ErrConflict)
			}
			return fmt.Errorf("inserting message for %q: %w", uid, err)
		}

		// Inside a transaction this is exactly "set to nextNo+1". $max keeps
		// the counter monotonic on servers running the no-session fallback,
		// where a delayed writer could otherwise regress it.
		_, err = s.members.UpdateOne(ctx,
			bson.M{"_id": uid},
			bson.M{"$max": bson.M{"message_count": nextNo + 1}})
		if err != nil {
			return fmt.Errorf("advancing counter for %q: %w", uid, err)
		}
		return nil
	})
}
