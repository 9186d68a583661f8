package domain

// Avatars is the fixed palette, in picker order.
var Avatars = []string{"🐶", "🐱", "🦊", "🐻", "🐼", "🐸", "🐵", "🐯", "🐨", "🦁"}

func DefaultAvatar() string {
	return Avatars[0]
}

func IsAvatar(glyph string) bool {
	for _, a := range Avatars {
		if a == glyph {
			return true
		}
	}
	return false
}
