// Package memberstore is the member registry: it creates member records,
// reserves screen names, and looks members up for the rest of the system.
package memberstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/askbox/internal/app/system/fault"
	"github.com/dalemusser/askbox/internal/app/system/screenname"
	"github.com/dalemusser/askbox/internal/app/system/txn"
	"github.com/dalemusser/askbox/internal/domain/models"
)

// Config carries the registry's business settings.
type Config struct {
	// ScreenNameSuffix is the fixed email suffix stripped to derive screen
	// names. Empty means screenname.DefaultSuffix.
	ScreenNameSuffix string
	// Txn bounds the registration transaction's retry loop.
	Txn txn.Options
}

type Store struct {
	client      *mongo.Client
	members     *mongo.Collection
	screenNames *mongo.Collection
	cfg         Config
}

func New(db *mongo.Database, cfg Config) *Store {
	if cfg.ScreenNameSuffix == "" {
		cfg.ScreenNameSuffix = screenname.DefaultSuffix
	}
	return &Store{
		client:      db.Client(),
		members:     db.Collection("members"),
		screenNames: db.Collection("screen_names"),
		cfg:         cfg,
	}
}

// RegisterInput is the identity payload handed over by the auth
// collaborator. UID and Email are required; the display attributes may be
// empty.
type RegisterInput struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// Register creates the member and its screen-name reservation in one
// transaction. Registration is create-once and idempotent: if the member
// already exists the call succeeds without touching anything, and in
// particular without re-deriving or overwriting the screen name.
//
// Returns created=true only when this call wrote the two records.
func (s *Store) Register(ctx context.Context, in RegisterInput) (created bool, err error) {
	if in.UID == "" {
		return false, fault.Invalid("uid is required")
	}
	if in.Email == "" {
		return false, fault.Invalid("email is required")
	}

	name := screenname.Derive(in.Email, s.cfg.ScreenNameSuffix)

	err = txn.Run(ctx, s.client, s.cfg.Txn, func(ctx context.Context) error {
		created = false

		findErr := s.members.FindOne(ctx, bson.M{"_id": in.UID}).Err()
		if findErr == nil {
			// Idempotent replay: the member exists, nothing to write.
			return nil
		}
		if !errors.Is(findErr, mongo.ErrNoDocuments) {
			return fmt.Errorf("reading member %q: %w", in.UID, findErr)
		}

		now := time.Now().UTC()
		member := models.Member{
			UID:         in.UID,
			Email:       in.Email,
			DisplayName: in.DisplayName,
			PhotoURL:    in.PhotoURL,
			ScreenName:  name,
			CreatedAt:   now,
		}
		if _, err := s.members.InsertOne(ctx, member); err != nil {
			if wafflemongo.IsDup(err) {
				// Concurrent registration of the same uid won the race;
				// treat this attempt as the replay it effectively is.
				return fmt.Errorf("member %q created concurrently: %w", in.UID, txn.ErrConflict)
			}
			return fmt.Errorf("inserting member %q: %w", in.UID, err)
		}

		reservation := models.ScreenName{
			Name:        name,
			UID:         in.UID,
			Email:       in.Email,
			DisplayName: in.DisplayName,
			PhotoURL:    in.PhotoURL,
			CreatedAt:   now,
		}
		if _, err := s.screenNames.InsertOne(ctx, reservation); err != nil {
			if wafflemongo.IsDup(err) {
				// Remove the member we just wrote. Under a real transaction
				// the abort would do this anyway; on the no-session fallback
				// it is the only thing keeping the two records co-created.
				_, _ = s.members.DeleteOne(ctx, bson.M{"_id": in.UID})
				return fault.Conflict("member", fmt.Sprintf("screen name %q is already taken", name))
			}
			return fmt.Errorf("reserving screen name %q: %w", name, err)
		}

		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// GetByUID loads a member by its uid.
func (s *Store) GetByUID(ctx context.Context, uid string) (*models.Member, error) {
	if uid == "" {
		return nil, fault.Invalid("uid is required")
	}
	var m models.Member
	if err := s.members.FindOne(ctx, bson.M{"_id": uid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fault.NotFound("member", fmt.Sprintf("no member with uid %q", uid))
		}
		return nil, fmt.Errorf("reading member %q: %w", uid, err)
	}
	return &m, nil
}

// GetByScreenName resolves a screen name to its member. Absence of the
// reservation is a not-found outcome, not a failure.
func (s *Store) GetByScreenName(ctx context.Context, name string) (*models.Member, error) {
	if name == "" {
		return nil, fault.Invalid("screen name is required")
	}
	var reservation models.ScreenName
	if err := s.screenNames.FindOne(ctx, bson.M{"_id": name}).Decode(&reservation); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fault.NotFound("member", fmt.Sprintf("no member with screen name %q", name))
		}
		return nil, fmt.Errorf("reading screen name %q: %w", name, err)
	}
	return s.GetByUID(ctx, reservation.UID)
}
