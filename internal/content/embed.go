// Package content holds the embedded trail: scenes, random events, the phone
// call script, ending texts and role profiles.
package content

import _ "embed"

//go:embed trail.yaml
var trailYAML []byte
