package repository

import (
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func ns(mt *mtest.T) string {
	return fmt.Sprintf("%s.%s", mt.Coll.Database().Name(), mt.Coll.Name())
}

// toDoc round-trips v through BSON so it can be served by the mock deployment.
func toDoc(mt *mtest.T, v interface{}) bson.D {
	raw, err := bson.Marshal(v)
	if err != nil {
		mt.Fatalf("marshal %T: %v", v, err)
	}
	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		mt.Fatalf("unmarshal %T: %v", v, err)
	}
	return d
}

func found(mt *mtest.T, docs ...bson.D) bson.D {
	return mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, docs...)
}

func updated(matched int) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: matched},
		bson.E{Key: "nModified", Value: matched},
	)
}

func duplicateKey() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    11000,
		Message: "E11000 duplicate key error",
	})
}
