// Package relaxation lists the audio sessions and self-help resources and
// keeps at most one session playing.
package relaxation

import "sync"

// All disables a filter.
const All = "all"

type Track struct {
	ID          string
	Title       string
	Description string
	Type        string
	Duration    string
	Instructor  string
	Language    string
	URL         string
}

type Resource struct {
	ID          string
	Title       string
	Description string
	Type        string
	Category    string
	Language    string
	URL         string
}

var TrackTypes = []string{"breathing", "meditation", "music", "nature"}

var ResourceTypes = []string{"article", "video", "pdf", "interactive"}

var ResourceCategories = []string{"anxiety", "depression", "stress", "relationships", "academics", "family"}

var tracks = []Track{
	{
		ID:          "1",
		Title:       "5-Minute Guided Breathing Meditation",
		Description: "A quick breathing exercise to help you relieve stress and find your center.",
		Type:        "breathing",
		Duration:    "5 min",
		Instructor:  "Great Meditation",
		Language:    "English",
		URL:         "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3",
	},
	{
		ID:          "2",
		Title:       "10-Minute Meditation For Anxiety",
		Description: "A guided session to calm anxiety and release nervous tension.",
		Type:        "meditation",
		Duration:    "10 min",
		Instructor:  "Goodful",
		Language:    "English",
		URL:         "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-2.mp3",
	},
	{
		ID:          "3",
		Title:       "Indian Flute Music for Studying",
		Description: "Calming instrumental music to help you focus during study sessions.",
		Type:        "music",
		Duration:    "3 hours",
		Language:    "Instrumental",
		URL:         "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-3.mp3",
	},
	{
		ID:          "4",
		Title:       "Relaxing Sounds of a Village in India",
		Description: "Ambient sounds of nature and village life to help you feel connected and at peace.",
		Type:        "nature",
		Duration:    "1 hour",
		Language:    "Natural sounds",
		URL:         "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-4.mp3",
	},
}

var resources = []Resource{
	{
		ID:          "1",
		Title:       "TED-Ed: What is depression?",
		Description: "Coping strategies for students transitioning from rural to urban academic settings.",
		Type:        "video",
		Category:    "depression",
		Language:    "en",
		URL:         "https://www.youtube.com/watch?v=XiCrniLQGYc",
	},
	{
		ID:          "2",
		Title:       "Building Better Mental Health - HelpGuide.org",
		Description: "Navigate friendships, romantic relationships, and family dynamics during college years.",
		Type:        "article",
		Category:    "relationships",
		Language:    "en",
		URL:         "https://www.helpguide.org/articles/mental-health/building-better-mental-health.htm",
	},
	{
		ID:          "3",
		Title:       "Tips to Manage Anxiety and Stress - ADAA",
		Description: "Understanding anxiety beyond cultural misconceptions and seeking help.",
		Type:        "article",
		Category:    "anxiety",
		Language:    "en",
		URL:         "https://adaa.org/tips",
	},
	{
		ID:          "4",
		Title:       "Guided Meditation for Stress Relief (Hindi)",
		Description: "10-minute guided relaxation in Hindi to reduce stress and anxiety.",
		Type:        "video",
		Category:    "stress",
		Language:    "hi",
		URL:         "https://www.youtube.com/watch?v=5ELrZ5QH8i4",
	},
	{
		ID:          "5",
		Title:       "Study Motivation - 1 Hour LoFi (Instrumental)",
		Description: "Ambient focus music to help you study.",
		Type:        "video",
		Category:    "academics",
		Language:    "en",
		URL:         "https://www.youtube.com/watch?v=5qap5aO4i9A",
	},
}

// Tracks filters sessions by type; All or empty keeps every session.
func Tracks(trackType string) []Track {
	out := []Track{}
	for _, track := range tracks {
		if trackType == "" || trackType == All || track.Type == trackType {
			out = append(out, track)
		}
	}
	return out
}

// Resources filters by category and format; All or empty skips a filter.
func Resources(category, resourceType string) []Resource {
	out := []Resource{}
	for _, resource := range resources {
		if category != "" && category != All && resource.Category != category {
			continue
		}
		if resourceType != "" && resourceType != All && resource.Type != resourceType {
			continue
		}
		out = append(out, resource)
	}
	return out
}

func FindTrack(id string) (Track, bool) {
	for _, track := range tracks {
		if track.ID == id {
			return track, true
		}
	}
	return Track{}, false
}

// Player tracks the one session that is playing.
type Player struct {
	mu     sync.Mutex
	active string
}

// Toggle plays id, stopping whatever else was playing, or stops id if it was
// already playing. It returns the id now playing, empty when none.
func (p *Player) Toggle(id string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == id {
		p.active = ""
	} else {
		p.active = id
	}
	return p.active
}

func (p *Player) Active() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

func (p *Player) Stop() {
	p.mu.Lock()
	p.active = ""
	p.mu.Unlock()
}
