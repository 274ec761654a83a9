package messagestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/askbox/internal/app/system/fault"
	"github.com/dalemusser/askbox/internal/app/system/txn"
	"github.com/dalemusser/askbox/internal/domain/models"
)

// Reply attaches the member's one reply to a message.
//
// Replies are write-once: a message that already carries one fails with a
// conflict and is left untouched. The check and the write run in one
// transaction, and the update filter re-asserts the absence of reply_at so
// even the no-session fallback cannot attach two replies.
func (s *Store) Reply(ctx context.Context, uid, messageID, reply string) error {
	if uid == "" {
		return fault.Invalid("uid is required")
	}
	if messageID == "" {
		return fault.Invalid("messageId is required")
	}
	if reply == "" {
		return fault.Invalid("reply is required")
	}

	return txn.Run(ctx, s.client, s.cfg.Txn, func(ctx context.Context) error {
		if err := s.requireMember(ctx, uid); err != nil {
			return err
		}

		var m models.Message
		err := s.messages.FindOne(ctx, bson.M{"_id": messageID, "member_uid": uid}).Decode(&m)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return fault.NotFound("message", fmt.Sprintf("no message %q for member %q", messageID, uid))
			}
			return fmt.Errorf("reading message %q: %w", messageID, err)
		}
		if m.HasReply() {
			return fault.Conflict("message", fmt.Sprintf("message %q already has a reply", messageID))
		}

		res, err := s.messages.UpdateOne(ctx,
			bson.M{
				"_id":        messageID,
				"member_uid": uid,
				"reply_at":   bson.M{"$exists": false},
			},
			bson.M{"$set": bson.M{
				"reply":    reply,
				"reply_at": time.Now().UTC(),
			}})
		if err != nil {
			return fmt.Errorf("attaching reply to %q: %w", messageID, err)
		}
		if res.ModifiedCount == 0 {
			return fault.Conflict("message", fmt.Sprintf("message %q already has a reply", messageID))
		}
		return nil
	})
}
