package mongodb

// The live-cluster behavior of ProfileStore (upsert atomicity, merge
// semantics) is Mongo's contract; what we can and do verify here is the
// update documents we hand it — the part that encodes OUR merge and
// bootstrap rules.

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/sakif/hackhub/internal/model"
)

func TestNewProfileDoc_EmptyCollections(t *testing.T) {
	account := &model.Account{ID: "acc-1", Email: "ann@example.com", DisplayName: "Ann"}
	created := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

	doc := newProfileDoc(model.NewProfile(account), created)

	if doc["_id"] != "acc-1" {
		t.Errorf("_id = %v, want account ID", doc["_id"])
	}
	for _, field := range []string{"skills", "hackathons", "teams", "badges"} {
		v, ok := doc[field].([]string)
		if !ok {
			t.Errorf("%s is %T, want []string", field, doc[field])
			continue
		}
		if len(v) != 0 {
			t.Errorf("%s has %d entries on creation, want 0", field, len(v))
		}
	}
	if doc["createdAt"] != created {
		t.Errorf("createdAt = %v, want %v", doc["createdAt"], created)
	}
	if _, ok := doc["updatedAt"]; ok {
		t.Error("a fresh document must not carry updatedAt")
	}
}

func TestBuildMergeUpdate_OnlySuppliedFields(t *testing.T) {
	photo := "https://cdn.example.com/new.png"
	update := buildMergeUpdate(model.ProfileUpdate{PhotoURL: &photo})

	set := update["$set"].(bson.M)
	if set["photoURL"] != photo {
		t.Errorf("$set.photoURL = %v, want %q", set["photoURL"], photo)
	}
	if _, ok := set["displayName"]; ok {
		t.Error("displayName was not supplied — it must not appear in $set")
	}
}

func TestBuildMergeUpdate_AlwaysStampsUpdatedAt(t *testing.T) {
	update := buildMergeUpdate(model.ProfileUpdate{})

	cd, ok := update["$currentDate"].(bson.M)
	if !ok || cd["updatedAt"] != true {
		t.Errorf("$currentDate = %v, want {updatedAt: true}", update["$currentDate"])
	}
	if _, ok := update["$set"].(bson.M)["createdAt"]; ok {
		t.Error("merge updates must never touch createdAt")
	}
}

func TestBuildMergeUpdate_EmptyStringIsAnExplicitValue(t *testing.T) {
	// Clearing a photo URL ("" supplied) is different from not supplying
	// one (nil) — the pointer distinguishes the two.
	empty := ""
	update := buildMergeUpdate(model.ProfileUpdate{PhotoURL: &empty})

	set := update["$set"].(bson.M)
	if v, ok := set["photoURL"]; !ok || v != "" {
		t.Errorf("$set.photoURL = %v, want explicit empty string", v)
	}
}
