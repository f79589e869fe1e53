package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/hackhub/internal/apperror"
	"github.com/sakif/hackhub/internal/model"
	"github.com/sakif/hackhub/internal/repository"
)

// compile-time check that *ProfileStore implements repository.ProfileRepository
var _ repository.ProfileRepository = (*ProfileStore)(nil)

// ProfileStore stores one document per account in the profiles collection,
// keyed by the account ID as _id.
type ProfileStore struct {
	collection *mongo.Collection
}

func NewProfileStore(collection *mongo.Collection) *ProfileStore {
	return &ProfileStore{collection: collection}
}

// EnsureExists creates the profile document if no document with its UID
// exists yet, in a single upsert.
//
// $setOnInsert applies the document only on the insert path: a returning
// user's document is matched by _id and left byte-for-byte untouched, and
// two concurrent first logins race into the same upsert where Mongo's
// unique _id guarantees exactly one insert wins. This replaces a
// read-then-write ("check existence, then create") sequence that had a
// window where both callers observe "absent".
func (s *ProfileStore) EnsureExists(ctx context.Context, profile *model.Profile) error {
	doc := newProfileDoc(profile, time.Now().UTC())

	_, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": profile.UID},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongodb: ensuring profile %s: %w", profile.UID, err)
	}
	return nil
}

// Get reads the document for uid. apperror.ErrNotFound when absent; any
// other failure is returned as-is so the service layer can report the read
// itself failed rather than pretending the profile does not exist.
func (s *ProfileStore) Get(ctx context.Context, uid string) (*model.Profile, error) {
	var p model.Profile
	err := s.collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("profile", uid)
		}
		return nil, fmt.Errorf("mongodb: reading profile %s: %w", uid, err)
	}
	return &p, nil
}

// Merge applies a partial update: $set touches exactly the supplied fields,
// $currentDate stamps updatedAt server-side, everything else keeps its
// stored value.
func (s *ProfileStore) Merge(ctx context.Context, uid string, update model.ProfileUpdate) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": uid},
		buildMergeUpdate(update),
	)
	if err != nil {
		return fmt.Errorf("mongodb: updating profile %s: %w", uid, err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("profile", uid)
	}
	return nil
}

// newProfileDoc builds the stored shape of a fresh profile. Collections are
// stored as empty arrays (never null), and createdAt is stamped once here —
// it is immutable afterwards because no update path ever $sets it.
func newProfileDoc(p *model.Profile, createdAt time.Time) bson.M {
	return bson.M{
		"_id":         p.UID,
		"email":       p.Email,
		"displayName": p.DisplayName,
		"photoURL":    p.PhotoURL,
		"skills":      []string{},
		"hackathons":  []string{},
		"teams":       []string{},
		"badges":      []string{},
		"createdAt":   createdAt,
	}
}

// buildMergeUpdate translates a ProfileUpdate into the update document.
// nil fields never appear in $set — that is the merge guarantee.
func buildMergeUpdate(update model.ProfileUpdate) bson.M {
	set := bson.M{}
	if update.DisplayName != nil {
		set["displayName"] = *update.DisplayName
	}
	if update.PhotoURL != nil {
		set["photoURL"] = *update.PhotoURL
	}

	return bson.M{
		"$set":         set,
		"$currentDate": bson.M{"updatedAt": true},
	}
}
