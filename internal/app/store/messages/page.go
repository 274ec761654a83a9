package messagestore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/askbox/internal/app/system/fault"
	"github.com/dalemusser/askbox/internal/app/system/paging"
	"github.com/dalemusser/askbox/internal/domain/models"
)

// Page is one page of a member's feed in the envelope the API serves.
type Page struct {
	TotalElements int64                `json:"totalElements"`
	TotalPages    int64                `json:"totalPages"`
	Page          int64                `json:"page"`
	Size          int64                `json:"size"`
	Content       []models.MessageView `json:"content"`
}

// ListPage returns one counter-anchored page of the feed, newest first by
// message_no.
//
// The window is pure arithmetic on the member's counter (paging.Compute),
// so a page is anchored to absolute sequence numbers: messages appended
// after the window was computed enlarge the total for the next request but
// never shift this page's content. A page beyond the end of the feed is a
// valid empty result with totalPages zeroed, not an error.
func (s *Store) ListPage(ctx context.Context, uid string, page, size int64) (Page, error) {
	if uid == "" {
		return Page{}, fault.Invalid("uid is required")
	}

	var member models.Member
	err := s.members.FindOne(ctx, bson.M{"_id": uid}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Page{}, fault.NotFound("member", fmt.Sprintf("no member with uid %q", uid))
		}
		return Page{}, fmt.Errorf("reading member %q: %w", uid, err)
	}

	window, err := paging.Compute(member.MessageCount, page, size)
	if err != nil {
		return Page{}, err
	}

	result := Page{
		TotalElements: window.TotalElements,
		TotalPages:    window.TotalPages,
		Page:          page,
		Size:          size,
		Content:       make([]models.MessageView, 0, size),
	}
	if window.OutOfRange || window.TotalElements == 0 {
		return result, nil
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "message_no", Value: -1}}).
		SetLimit(size)
	filter := bson.M{
		"member_uid": uid,
		"message_no": bson.M{"$lte": window.StartAt},
	}
	cur, err := s.messages.Find(ctx, filter, findOpts)
	if err != nil {
		return Page{}, fmt.Errorf("paging messages for %q: %w", uid, err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var m models.Message
		if err := cur.Decode(&m); err != nil {
			return Page{}, fmt.Errorf("decoding message: %w", err)
		}
		result.Content = append(result.Content, m.View())
	}
	if err := cur.Err(); err != nil {
		return Page{}, fmt.Errorf("paging messages for %q: %w", uid, err)
	}
	return result, nil
}
