package validators

import "go.mongodb.org/mongo-driver/bson"

var SettingsValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"data_version",
			"working_hours",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"data_version": bson.M{
				"bsonType": []string{"long", "int"},
				"minimum":  0,
			},

			"working_hours": bson.M{
				"bsonType": "object",
				"additionalProperties": bson.M{
					"bsonType": "object",
					"required": []string{"enabled"},
					"properties": bson.M{
						"enabled": bson.M{
							"bsonType": "bool",
						},
						"start": bson.M{
							"bsonType": "string",
						},
						"end": bson.M{
							"bsonType": "string",
						},
					},
				},
			},

			"lunch_break": bson.M{
				"bsonType": "object",
				"required": []string{"start", "end"},
				"properties": bson.M{
					"start": bson.M{
						"bsonType": "string",
					},
					"end": bson.M{
						"bsonType": "string",
					},
				},
			},
		},
	},
}
