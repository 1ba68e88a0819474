// Package maneuver maps the routing provider's numeric maneuver type codes
// to display labels and the signed turn indicator the map client uses for
// icon selection.
package maneuver

// Label is the human-readable maneuver category.
type Label string

const (
	None             Label = "none"
	Straight         Label = "straight"
	Start            Label = "start"
	StartRight       Label = "start_right"
	StartLeft        Label = "start_left"
	Destination      Label = "destination"
	DestinationRight Label = "destination_right"
	DestinationLeft  Label = "destination_left"
	SlightLeft       Label = "slight_left"
	Left             Label = "left"
	Right            Label = "right"
	SlightRight      Label = "slight_right"
	Continue         Label = "continue"
	SharpLeft        Label = "sharp_left"
	SharpRight       Label = "sharp_right"
	UturnLeft        Label = "uturn_left"
	UturnRight       Label = "uturn_right"
	Ferry            Label = "ferry"
	RoundaboutEnter  Label = "roundabout_enter"
	RoundaboutExit   Label = "roundabout_exit"
	StayLeft         Label = "stay_left"
	StayRight        Label = "stay_right"
	Merge            Label = "merge"
)

// Turn indicator values. The client only distinguishes these five.
const (
	SignLeft       = -2
	SignNone       = 0
	SignRight      = 2
	SignRoundabout = 4
	SignMerge      = 6
)

// Classification pairs a display label with its turn indicator.
type Classification struct {
	Label Label
	Sign  int
}

// byCode covers the provider's observed type code range 0-26. Codes 18, 25
// and 26 duplicate 11, 22 and 23 in the provider's own table.
var byCode = map[int]Classification{
	0:  {None, SignNone},
	1:  {Start, SignNone},
	2:  {StartRight, SignNone},
	3:  {StartLeft, SignNone},
	4:  {Destination, SignNone},
	5:  {DestinationRight, SignNone},
	6:  {DestinationLeft, SignNone},
	7:  {Straight, SignNone},
	8:  {Continue, SignNone},
	9:  {SlightRight, SignRight},
	10: {Right, SignRight},
	11: {SharpRight, SignRight},
	12: {UturnRight, SignRight},
	13: {UturnLeft, SignLeft},
	14: {SharpLeft, SignLeft},
	15: {Left, SignLeft},
	16: {SlightLeft, SignLeft},
	17: {Continue, SignNone},
	18: {SharpRight, SignRight},
	19: {StayLeft, SignNone},
	20: {StayRight, SignNone},
	21: {Ferry, SignNone},
	22: {RoundaboutEnter, SignRoundabout},
	23: {RoundaboutExit, SignRoundabout},
	24: {Merge, SignMerge},
	25: {RoundaboutEnter, SignRoundabout},
	26: {RoundaboutExit, SignRoundabout},
}

// Classify returns the label and turn indicator for a provider type code.
// Codes outside the known range fall back to continue with no turn.
func Classify(code int) Classification {
	if c, ok := byCode[code]; ok {
		return c
	}
	return Classification{Continue, SignNone}
}
