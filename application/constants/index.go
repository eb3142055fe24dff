package constants

// faceguard response codes
// these consist of 4 digit numbers
//
// the 1st 3 identify the scenario
// 4th indicates if the client should prompt the user. 0 means it does not. 1 means it should.

var SESSION_EXPIRED uint = 6170      // create a new session and restart capture
var SESSION_BUSY uint = 4290         // a frame for this session is still being processed, drop this one
var NO_FACE_DETECTED uint = 3101     // ask the user to face the camera
var DETECTOR_UNAVAILABLE uint = 5030 // frames cannot be analysed server side, submit scores instead

var AVAILABLE_POLICIES = []string{"strict", "balanced", "permissive"}

const DEFAULT_POLICY = "balanced"

// cache key prefix for session snapshots
const SESSION_SNAPSHOT_KEY_PREFIX = "liveness-session"
