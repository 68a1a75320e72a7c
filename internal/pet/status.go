package pet

// MoodEmoji returns the face shown for a mood
func MoodEmoji(m Mood) string {
	switch m {
	case MoodHappy:
		return StatusEmojiHappy
	case MoodOkay:
		return StatusEmojiOkay
	case MoodSad:
		return StatusEmojiSad
	case MoodSick:
		return StatusEmojiSick
	default:
		return StatusEmojiDepressed
	}
}

// GetStatus returns the status emoji(s) for the pet
func GetStatus(p *Pet) string {
	// Icon 1: Feeling
	status := MoodEmoji(p.Mood())

	// Icon 2: illness beats every want
	if p.IsSick() {
		return status + StatusEmojiSick
	}

	if want := GetWantEmoji(p); want != "" {
		return status + want
	}
	return status
}

// GetStatusWithLabel returns status with text labels for the UI
func GetStatusWithLabel(p *Pet) string {
	status := GetStatus(p)
	label := p.Mood().String()

	switch {
	case p.IsSick():
		label += " (sick)"
	case GetWantEmoji(p) != "":
		need, _ := p.Vitals.LowestNeed()
		label += " (wants " + wantLabel(need) + ")"
	}
	if p.Vitals.Night {
		status += StatusEmojiNight
	}
	return status + " " + label
}

// GetWantEmoji returns the item for the most depleted need, if it is low enough to matter
func GetWantEmoji(p *Pet) string {
	need, value := p.Vitals.LowestNeed()
	if value >= WantThreshold {
		return ""
	}
	for _, def := range GetItemDefinitions() {
		if def.Need == need {
			return def.Emoji
		}
	}
	return ""
}

func wantLabel(n Need) string {
	switch n {
	case NeedHunger:
		return "food"
	case NeedEnergy:
		return "rest"
	case NeedCleanliness:
		return "a shower"
	case NeedHealth:
		return "medicine"
	}
	return "care"
}
