package model

import "time"

// Profile is the user-facing document mirrored into MongoDB. One document
// exists per account, keyed by the account ID (stored as Mongo's _id), and
// is created lazily on the first successful registration or federated login.
//
// The collection fields (Skills, Hackathons, Teams, Badges) are append-style
// reference lists owned by other parts of the platform — this module only
// initializes them empty and never mutates them.
//
// ZERO VALUES OVER POINTERS:
// All the optional text fields use "" as absent rather than *string. The
// bson omitempty tags keep absent fields out of the stored document, and
// merge updates only touch fields the caller supplied (see
// ProfileUpdate), so "" never clobbers a previously set value.
type Profile struct {
	UID         string    `json:"uid"                   bson:"_id"`
	Email       string    `json:"email"                 bson:"email"`
	DisplayName string    `json:"displayName"           bson:"displayName"`
	PhotoURL    string    `json:"photoUrl,omitempty"    bson:"photoURL,omitempty"`
	Bio         string    `json:"bio,omitempty"         bson:"bio,omitempty"`
	Location    string    `json:"location,omitempty"    bson:"location,omitempty"`
	Website     string    `json:"website,omitempty"     bson:"website,omitempty"`
	Github      string    `json:"github,omitempty"      bson:"github,omitempty"`
	Linkedin    string    `json:"linkedin,omitempty"    bson:"linkedin,omitempty"`
	Twitter     string    `json:"twitter,omitempty"     bson:"twitter,omitempty"`
	Skills      []string  `json:"skills"                bson:"skills"`
	Hackathons  []string  `json:"hackathons"            bson:"hackathons"`
	Teams       []string  `json:"teams"                 bson:"teams"`
	Badges      []string  `json:"badges"                bson:"badges"`
	CreatedAt   time.Time `json:"createdAt"             bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"   bson:"updatedAt,omitempty"`
}

// ProfileUpdate is the restricted set of fields a user may change through
// the profile endpoint. nil means "leave untouched" — this is what gives
// updates their merge semantics all the way down to the $set document.
type ProfileUpdate struct {
	DisplayName *string `json:"displayName,omitempty"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
}

// Empty reports whether the update would change nothing.
func (u ProfileUpdate) Empty() bool {
	return u.DisplayName == nil && u.PhotoURL == nil
}

// NewProfile builds the initial document for an account with all collection
// fields present and empty. Explicit empty slices (not nil) so the stored
// document — and every JSON response — has skills/hackathons/teams/badges as
// [] rather than null from day one.
func NewProfile(account *Account) *Profile {
	return &Profile{
		UID:         account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		PhotoURL:    account.PhotoURL,
		Skills:      []string{},
		Hackathons:  []string{},
		Teams:       []string{},
		Badges:      []string{},
	}
}
