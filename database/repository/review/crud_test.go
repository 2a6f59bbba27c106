package reviewRepo

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestSummaryPipelineGroupsOneTutor(t *testing.T) {
	pipeline := summaryPipeline("tutor-1")
	if len(pipeline) != 2 {
		t.Fatalf("expected $match and $group, got %d stages", len(pipeline))
	}
	if pipeline[0][0].Key != "$match" || !reflect.DeepEqual(pipeline[0][0].Value, bson.M{"tutorId": "tutor-1"}) {
		t.Fatalf("unexpected match stage %v", pipeline[0])
	}
	want := bson.M{"_id": nil, "average": bson.M{"$avg": "$rating"}, "count": bson.M{"$sum": 1}}
	if pipeline[1][0].Key != "$group" || !reflect.DeepEqual(pipeline[1][0].Value, want) {
		t.Fatalf("unexpected group stage %v", pipeline[1])
	}
}
