package models

import "time"

// Member is a registered account that owns a message box.
//
// The uid is issued by the external identity collaborator and is the
// document key. MessageCount is the ledger's sequence counter: it runs one
// ahead of the highest assigned message number, so after N posts it holds
// N+1. It only ever grows, and only inside the post transaction.
type Member struct {
	UID          string    `bson:"_id" json:"uid"`
	Email        string    `bson:"email" json:"email"`
	DisplayName  string    `bson:"display_name" json:"displayName"`
	PhotoURL     string    `bson:"photo_url" json:"photoURL"`
	ScreenName   string    `bson:"screen_name" json:"screenName"`
	MessageCount int64     `bson:"message_count,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"-"`
}

// ScreenName reserves a member's screen name in its own collection, keyed
// by the name itself so uniqueness is the document key's uniqueness. It is
// written only inside the registration transaction, together with the
// Member document, and never mutated afterwards.
type ScreenName struct {
	Name        string    `bson:"_id" json:"screenName"`
	UID         string    `bson:"uid" json:"uid"`
	Email       string    `bson:"email" json:"email"`
	DisplayName string    `bson:"display_name" json:"displayName"`
	PhotoURL    string    `bson:"photo_url" json:"photoURL"`
	CreatedAt   time.Time `bson:"created_at" json:"-"`
}
