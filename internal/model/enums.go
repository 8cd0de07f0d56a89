package model

// Role is the hidden role a player holds once the game has started.
// The empty value means the game has not assigned roles yet.
type Role string

const (
	RoleNone    Role = ""
	RoleCitizen Role = "citizen"
	RoleSpy     Role = "spy"
)

// SpyCount configures how many spies a started game gets.
type SpyCount string

const (
	SpyCountSingle SpyCount = "single"
	SpyCountDouble SpyCount = "double"
	SpyCountRandom SpyCount = "random"
)

func ParseSpyCount(s string) (SpyCount, bool) {
	switch SpyCount(s) {
	case SpyCountSingle, SpyCountDouble, SpyCountRandom:
		return SpyCount(s), true
	}
	return "", false
}
