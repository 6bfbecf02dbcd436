package utils

// RewardTier returns the badge shown next to a member's eco-points.
func RewardTier(points int) (name string, icon string) {
	switch {
	case points >= 1000:
		return "Guardian", "🌳"
	case points >= 500:
		return "Champion", "🌿"
	case points >= 100:
		return "Cleaner", "🍃"
	case points >= 10:
		return "Spotter", "🌾"
	default:
		return "Seedling", "🌱"
	}
}
