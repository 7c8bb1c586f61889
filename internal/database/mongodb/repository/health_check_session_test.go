package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSessionFilterToBson(t *testing.T) {
	assert.Equal(t, bson.M{}, SessionFilter{}.toBson())

	team := primitive.NewObjectID()
	from := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	got := SessionFilter{TeamID: &team, Period: "2024 - 1st Half", From: &from}.toBson()

	assert.Equal(t, team, got["teamId"])
	assert.Equal(t, "2024 - 1st Half", got["assessmentPeriod"])
	assert.Equal(t, bson.M{"$gte": from}, got["date"])
	assert.NotContains(t, got, "userId")
}

func TestWithUpdatedAt(t *testing.T) {
	update := withUpdatedAt(bson.M{"$set": bson.M{"name": "alpha"}})
	assert.Equal(t, bson.M{"updatedAt": true}, update["$currentDate"])

	kept := withUpdatedAt(bson.M{"$currentDate": bson.M{"lastSeen": true}})
	assert.Equal(t, bson.M{"lastSeen": true, "updatedAt": true}, kept["$currentDate"])
}
