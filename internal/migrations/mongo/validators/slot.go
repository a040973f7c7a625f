package validators

import "go.mongodb.org/mongo-driver/bson"

var SlotValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"activity_id",
			"date",
			"time",
			"duration_min",
			"max_capacity",
			"current_bookings",
			"state",
			"pending_deletion",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"activity_id": bson.M{
				"bsonType": "string",
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"time": bson.M{
				"bsonType": "string",
				"pattern":  `^([01]\d|2[0-3]):[0-5]\d$`,
			},

			"duration_min": bson.M{
				"bsonType": "int",
				"minimum":  5,
				"maximum":  480,
			},

			"max_capacity": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  500,
			},

			"current_bookings": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"price": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"state": bson.M{
				"enum": []string{"draft", "published", "outside_hours"},
			},

			"pending_deletion": bson.M{
				"bsonType": "bool",
			},

			"published_snapshot": bson.M{
				"bsonType": "object",
				"required": []string{"date", "time", "duration_min"},
				"properties": bson.M{
					"date": bson.M{
						"bsonType": "string",
					},
					"time": bson.M{
						"bsonType": "string",
					},
					"duration_min": bson.M{
						"bsonType": "int",
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
