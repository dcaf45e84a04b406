package mongo

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/csemotors/dealership/internal/core/domain"
)

func insertedDoc(mt *mtest.T) bson.Raw {
	mt.Helper()
	evt := mt.GetStartedEvent()
	if evt == nil || evt.CommandName != "insert" {
		mt.Fatalf("expected an insert command, got %+v", evt)
	}
	return evt.Command.Lookup("documents").Array().Index(0).Value().Document()
}

func TestActivityRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mt.Run("insert omits empty optional fields", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewActivityRepository(mt.DB)

		err := repo.InsertActivity(context.Background(), &domain.Activity{
			Kind:  domain.ActivityLoginFailed,
			Email: "ghost@x.com",
			At:    at,
		})
		if err != nil {
			mt.Fatalf("InsertActivity: %v", err)
		}

		doc := insertedDoc(mt)
		if got := doc.Lookup("kind").StringValue(); got != "login_failed" {
			mt.Fatalf("unexpected kind %q", got)
		}
		if got := doc.Lookup("email").StringValue(); got != "ghost@x.com" {
			mt.Fatalf("unexpected email %q", got)
		}
		for _, key := range []string{"account_id", "ip", "request_id"} {
			if _, err := doc.LookupErr(key); err == nil {
				mt.Fatalf("%s should be omitted when empty", key)
			}
		}
		if _, err := doc.LookupErr("recorded_at"); err != nil {
			mt.Fatalf("recorded_at missing")
		}
	})

	mt.Run("insert keeps populated fields", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewActivityRepository(mt.DB)

		err := repo.InsertActivity(context.Background(), &domain.Activity{
			Kind:      domain.ActivityLogin,
			AccountID: 7,
			Email:     "a@x.com",
			IP:        "203.0.113.9",
			RequestID: "req-1",
			At:        at,
		})
		if err != nil {
			mt.Fatalf("InsertActivity: %v", err)
		}

		doc := insertedDoc(mt)
		if got := doc.Lookup("account_id").AsInt64(); got != 7 {
			mt.Fatalf("unexpected account_id %d", got)
		}
		if doc.Lookup("ip").StringValue() != "203.0.113.9" || doc.Lookup("request_id").StringValue() != "req-1" {
			mt.Fatalf("unexpected document: %s", doc)
		}
		if got := doc.Lookup("at").Time(); !got.Equal(at) {
			mt.Fatalf("unexpected at %s", got)
		}
	})

	mt.Run("insert error is wrapped", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized",
		}))
		repo := NewActivityRepository(mt.DB)

		if err := repo.InsertActivity(context.Background(), &domain.Activity{Kind: domain.ActivityLogout, At: at}); err == nil {
			mt.Fatalf("expected error")
		}
	})

	mt.Run("recent filters by account newest first", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + activityCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "kind", Value: "login"},
				{Key: "account_id", Value: int64(7)},
				{Key: "email", Value: "a@x.com"},
				{Key: "ip", Value: "203.0.113.9"},
				{Key: "at", Value: at},
				{Key: "recorded_at", Value: at},
			},
			bson.D{
				{Key: "kind", Value: "register"},
				{Key: "account_id", Value: int64(7)},
				{Key: "email", Value: "a@x.com"},
				{Key: "at", Value: at.Add(-time.Hour)},
			},
		))
		repo := NewActivityRepository(mt.DB)

		got, err := repo.Recent(context.Background(), 7, 5)
		if err != nil {
			mt.Fatalf("Recent: %v", err)
		}
		if len(got) != 2 || got[0].Kind != domain.ActivityLogin || got[0].AccountID != 7 || got[0].IP != "203.0.113.9" {
			mt.Fatalf("unexpected activity: %+v", got)
		}
		if !got[0].At.Equal(at) || got[1].Kind != domain.ActivityRegister {
			mt.Fatalf("unexpected activity: %+v", got)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "find" {
			mt.Fatalf("expected a find command, got %+v", evt)
		}
		if id := evt.Command.Lookup("filter", "account_id").AsInt64(); id != 7 {
			mt.Fatalf("unexpected filter account_id %d", id)
		}
		if dir := evt.Command.Lookup("sort", "at").AsInt64(); dir != -1 {
			mt.Fatalf("expected descending sort, got %d", dir)
		}
		if limit := evt.Command.Lookup("limit").AsInt64(); limit != 5 {
			mt.Fatalf("unexpected limit %d", limit)
		}
	})
}
