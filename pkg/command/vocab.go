package command

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Per-domain action vocabularies. Structured domains (door, fan, rain)
// enumerate their legal actions and close the schema; free-form domains
// (garage, gas) constrain only the parameters they recognize.
const (
	doorVocab = `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"device_id": {"type": "string"},
			"action": {"enum": ["unlock", "lock"]},
			"access_code": {"type": "string"},
			"manual_override": {"type": "boolean"}
		},
		"required": ["device_id", "action"],
		"additionalProperties": false
	}`

	garageVocab = `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"device_id": {"type": "string"},
			"action": {"type": "string", "minLength": 1},
			"auto_mode": {"type": "boolean"},
			"manual_override": {"type": "boolean"}
		},
		"required": ["device_id", "action"]
	}`

	fanVocab = `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"device_id": {"type": "string"},
			"action": {"enum": ["set_speed", "set_auto", "set_manual"]},
			"speed": {"type": "number", "minimum": 0, "maximum": 255},
			"auto_mode": {"type": "boolean"},
			"target_temperature": {"type": "number"}
		},
		"required": ["device_id", "action"],
		"additionalProperties": false
	}`

	gasVocab = `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"device_id": {"type": "string"},
			"action": {"type": "string", "minLength": 1},
			"gas_threshold": {"type": "number"},
			"alarm_duration": {"type": "number"}
		},
		"required": ["device_id", "action"]
	}`

	rainVocab = `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"device_id": {"type": "string"},
			"action": {"enum": ["set_mode", "set_window_state", "emergency_close", "emergency_open"]},
			"mode": {"enum": ["AUTO", "MANUAL"]},
			"window_state": {"enum": ["OPEN", "CLOSED"]}
		},
		"required": ["device_id", "action"],
		"additionalProperties": false
	}`
)

var vocabularies = map[Domain]*jsonschema.Schema{
	DoorAccess:    mustCompile(doorVocab),
	GarageControl: mustCompile(garageVocab),
	FanControl:    mustCompile(fanVocab),
	GasAlarm:      mustCompile(gasVocab),
	RainControl:   mustCompile(rainVocab),
}

func mustCompile(doc string) *jsonschema.Schema {
	var schemaMap any
	if err := json.Unmarshal([]byte(doc), &schemaMap); err != nil {
		panic(fmt.Sprintf("invalid vocabulary document: %v", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("vocab.json", schemaMap); err != nil {
		panic(fmt.Sprintf("failed to add vocabulary resource: %v", err))
	}
	compiled, err := c.Compile("vocab.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile vocabulary: %v", err))
	}
	return compiled
}

// Validate checks a domain action request against the domain's vocabulary.
// Returns nil if valid, or an error describing the validation failures.
func Validate(d Domain, payload map[string]any) error {
	schema, ok := vocabularies[d]
	if !ok {
		return fmt.Errorf("unknown domain %q", d)
	}
	return schema.Validate(payload)
}
