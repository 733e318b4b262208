package validation

// Closed enumerations; unrecognized values are rejected, never coerced.

const signupSchema = `{
	"type": "object",
	"required": ["name", "email", "password"],
	"properties": {
		"name": {"type": "string", "minLength": 1, "maxLength": 200},
		"email": {"type": "string", "pattern": "^[^@\\s]+@[^@\\s]+\\.[^@\\s]+$"},
		"password": {"type": "string", "minLength": 8, "maxLength": 200}
	}
}`

const signinSchema = `{
	"type": "object",
	"required": ["email", "password"],
	"properties": {
		"email": {"type": "string", "minLength": 1},
		"password": {"type": "string", "minLength": 1}
	}
}`

const compoundCreateSchema = `{
	"type": "object",
	"required": ["name", "category"],
	"properties": {
		"name": {"type": "string", "minLength": 1, "maxLength": 200},
		"category": {"enum": ["TRT", "ANABOLIC", "ANCILLARY", "OTHER"]},
		"notes": {"type": "string", "maxLength": 2000}
	}
}`

const compoundUpdateSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1, "maxLength": 200},
		"category": {"enum": ["TRT", "ANABOLIC", "ANCILLARY", "OTHER"]},
		"notes": {"type": "string", "maxLength": 2000},
		"isArchived": {"type": "boolean"}
	}
}`

const doseCreateSchema = `{
	"type": "object",
	"required": ["compoundId", "dateTime", "doseMg", "route"],
	"properties": {
		"compoundId": {"type": "string", "minLength": 1},
		"dateTime": {"type": "string", "minLength": 1},
		"doseMg": {"type": "number", "exclusiveMinimum": 0},
		"route": {"enum": ["IM", "SUBQ", "ORAL", "TRANSDERMAL", "OTHER"]},
		"site": {"enum": ["GLUTE", "QUAD", "DELT", "VG", "LAT", "PECT", "AB", "OTHER"]},
		"mood": {"type": "integer", "minimum": 1, "maximum": 10},
		"energy": {"type": "integer", "minimum": 1, "maximum": 10},
		"libido": {"type": "integer", "minimum": 1, "maximum": 10},
		"notes": {"type": "string", "maxLength": 2000}
	}
}`

const doseUpdateSchema = `{
	"type": "object",
	"properties": {
		"compoundId": {"type": "string", "minLength": 1},
		"dateTime": {"type": "string", "minLength": 1},
		"doseMg": {"type": "number", "exclusiveMinimum": 0},
		"route": {"enum": ["IM", "SUBQ", "ORAL", "TRANSDERMAL", "OTHER"]},
		"site": {"enum": ["GLUTE", "QUAD", "DELT", "VG", "LAT", "PECT", "AB", "OTHER"]},
		"mood": {"type": "integer", "minimum": 1, "maximum": 10},
		"energy": {"type": "integer", "minimum": 1, "maximum": 10},
		"libido": {"type": "integer", "minimum": 1, "maximum": 10},
		"notes": {"type": "string", "maxLength": 2000}
	}
}`
